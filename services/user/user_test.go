package user_test

import (
	"testing"
	"time"

	userRepo "smatching/database/repository/user"
	"smatching/models"
	"smatching/services/user"
	"smatching/utils"
)

type memUserRepo struct {
	users map[string]*models.User
}

func (m *memUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}
func (m *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memUserRepo) Create(u *models.User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}
func (m *memUserRepo) Update(*models.User) error { return nil }
func (m *memUserRepo) Delete(id string) error {
	if _, ok := m.users[id]; !ok {
		return userRepo.ErrNotFound
	}
	delete(m.users, id)
	return nil
}
func (m *memUserRepo) SetTalkAlert(string, bool) error { return nil }
func (m *memUserRepo) SetProfileURL(string, string) error {
	return nil
}
func (m *memUserRepo) SetFCMToken(id, token string) error {
	u, ok := m.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.FCMToken = token
	return nil
}

type memNotifRepo struct {
	notifs []*models.Notification
}

func (m *memNotifRepo) Create(n *models.Notification) error {
	cp := *n
	m.notifs = append(m.notifs, &cp)
	return nil
}
func (m *memNotifRepo) ListByUser(userID string) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(m.notifs) - 1; i >= 0; i-- {
		if m.notifs[i].UserID == userID {
			out = append(out, *m.notifs[i])
		}
	}
	return out, nil
}
func (m *memNotifRepo) CountUnchecked(userID string) (int, error) {
	cnt := 0
	for _, n := range m.notifs {
		if n.UserID == userID && !n.Checked {
			cnt++
		}
	}
	return cnt, nil
}
func (m *memNotifRepo) MarkAllChecked(userID string) error {
	for _, n := range m.notifs {
		if n.UserID == userID {
			n.Checked = true
		}
	}
	return nil
}

func newUserService() (*user.DefaultUserService, *memUserRepo, *memNotifRepo) {
	users := &memUserRepo{users: map[string]*models.User{
		"u-1": {ID: "u-1", Email: "jin@example.com", Nickname: "jin"},
	}}
	notifs := &memNotifRepo{}
	svc := &user.DefaultUserService{
		Repo:      users,
		NotifRepo: notifs,
	}
	return svc, users, notifs
}

func TestNotificationsMarksAllChecked(t *testing.T) {
	svc, _, notifs := newUserService()

	notifs.Create(&models.Notification{ID: "a", UserID: "u-1", Type: models.AlertNewNotice, CreatedAt: time.Now()})
	notifs.Create(&models.Notification{ID: "b", UserID: "u-1", Type: models.AlertThreeDaysLeft, CreatedAt: time.Now()})
	notifs.Create(&models.Notification{ID: "c", UserID: "u-2", Type: models.AlertNewNotice, CreatedAt: time.Now()})

	before, _ := svc.UncheckedCount("u-1")
	if before != 2 {
		t.Fatalf("unchecked = %d, want 2", before)
	}

	list, err := svc.Notifications("u-1")
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}

	after, _ := svc.UncheckedCount("u-1")
	if after != 0 {
		t.Errorf("unchecked after open = %d, want 0", after)
	}

	// Another user's badge is untouched.
	other, _ := svc.UncheckedCount("u-2")
	if other != 1 {
		t.Errorf("other user's unchecked = %d, want 1", other)
	}
}

func TestUpdateFCMToken(t *testing.T) {
	svc, users, _ := newUserService()

	if err := svc.UpdateFCMToken("u-1", "tok-123"); err != nil {
		t.Fatalf("UpdateFCMToken: %v", err)
	}
	if users.users["u-1"].FCMToken != "tok-123" {
		t.Error("token not stored")
	}

	if err := svc.UpdateFCMToken("missing", "tok"); utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("kind = %v, want NotFound", utils.KindOf(err))
	}
}

func TestGetByID(t *testing.T) {
	svc, _, _ := newUserService()

	usr, err := svc.GetByID("u-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if usr.Nickname != "jin" {
		t.Errorf("nickname = %q", usr.Nickname)
	}

	if _, err := svc.GetByID("missing"); utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("kind = %v, want NotFound", utils.KindOf(err))
	}
}
