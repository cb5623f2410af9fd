package alert_test

import (
	"testing"

	condRepo "smatching/database/repository/condition"
	"smatching/models"
	"smatching/services/alert"
	"smatching/utils"
)

// memCondRepo is an in-memory condition store preserving insertion
// order per user.
type memCondRepo struct {
	conds []*models.Condition
}

func (m *memCondRepo) GetByID(id string) (*models.Condition, error) {
	for _, c := range m.conds {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCondRepo) ListByUser(userID string) ([]models.Condition, error) {
	var out []models.Condition
	for _, c := range m.conds {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCondRepo) CountByUser(userID string) (int, error) {
	list, _ := m.ListByUser(userID)
	return len(list), nil
}

func (m *memCondRepo) Create(c *models.Condition) error {
	cp := *c
	m.conds = append(m.conds, &cp)
	return nil
}

func (m *memCondRepo) Update(userID, id string, c *models.Condition) error {
	for _, stored := range m.conds {
		if stored.ID == id && stored.UserID == userID {
			stored.Name = c.Name
			return nil
		}
	}
	return condRepo.ErrNotFound
}

func (m *memCondRepo) Delete(userID, id string) error {
	for i, stored := range m.conds {
		if stored.ID == id && stored.UserID == userID {
			m.conds = append(m.conds[:i], m.conds[i+1:]...)
			return nil
		}
	}
	return condRepo.ErrNotFound
}

func (m *memCondRepo) SetAlert(userID, id string, on bool) error {
	for _, stored := range m.conds {
		if stored.ID == id && stored.UserID == userID {
			stored.AlertOn = on
			return nil
		}
	}
	return condRepo.ErrNotFound
}

func (m *memCondRepo) SetAlertForAllOfUser(userID string, on bool) error {
	for _, stored := range m.conds {
		if stored.UserID == userID {
			stored.AlertOn = on
		}
	}
	return nil
}

func (m *memCondRepo) CountAlertOn(userID string) (int, error) {
	cnt := 0
	for _, stored := range m.conds {
		if stored.UserID == userID && stored.AlertOn {
			cnt++
		}
	}
	return cnt, nil
}

func (m *memCondRepo) ListAlertUsers(*models.Notice) ([]string, error) { return nil, nil }

// memUserRepo holds one user.
type memUserRepo struct {
	user *models.User
}

func (m *memUserRepo) GetByID(id string) (*models.User, error) {
	if m.user != nil && m.user.ID == id {
		cp := *m.user
		return &cp, nil
	}
	return nil, nil
}
func (m *memUserRepo) GetByEmail(string) (*models.User, error) { return nil, nil }
func (m *memUserRepo) Create(*models.User) error               { return nil }
func (m *memUserRepo) Update(*models.User) error               { return nil }
func (m *memUserRepo) Delete(string) error                     { return nil }
func (m *memUserRepo) SetTalkAlert(id string, on bool) error {
	if m.user != nil && m.user.ID == id {
		m.user.TalkAlert = on
	}
	return nil
}
func (m *memUserRepo) SetProfileURL(string, string) error { return nil }
func (m *memUserRepo) SetFCMToken(string, string) error   { return nil }

func newFixture(condIDs ...string) (*alert.DefaultAlertService, *memCondRepo) {
	repo := &memCondRepo{}
	for _, id := range condIDs {
		repo.Create(&models.Condition{ID: id, UserID: "u-1"})
	}
	users := &memUserRepo{user: &models.User{ID: "u-1", Nickname: "jin"}}
	return alert.NewDefaultAlertService(repo, users), repo
}

func assertAtMostOneAlert(t *testing.T, repo *memCondRepo) {
	t.Helper()
	cnt, _ := repo.CountAlertOn("u-1")
	if cnt > 1 {
		t.Fatalf("%d conditions alert-active, want at most 1", cnt)
	}
}

func TestToggleConditionAlertExclusive(t *testing.T) {
	svc, repo := newFixture("c-1", "c-2")

	on, err := svc.ToggleConditionAlert("u-1", "c-1")
	if err != nil || !on {
		t.Fatalf("first toggle: on=%v err=%v", on, err)
	}
	assertAtMostOneAlert(t, repo)

	// Enabling the second condition must displace the first.
	on, err = svc.ToggleConditionAlert("u-1", "c-2")
	if err != nil || !on {
		t.Fatalf("second toggle: on=%v err=%v", on, err)
	}
	assertAtMostOneAlert(t, repo)

	c1, _ := repo.GetByID("c-1")
	if c1.AlertOn {
		t.Error("enabling c-2 must disable c-1")
	}

	// Toggling the active condition turns it off, leaving none active.
	on, err = svc.ToggleConditionAlert("u-1", "c-2")
	if err != nil || on {
		t.Fatalf("third toggle: on=%v err=%v", on, err)
	}
	cnt, _ := repo.CountAlertOn("u-1")
	if cnt != 0 {
		t.Errorf("%d alerts active after disabling, want 0", cnt)
	}
}

func TestToggleConditionAlertWrongOwner(t *testing.T) {
	svc, _ := newFixture("c-1")

	if _, err := svc.ToggleConditionAlert("u-2", "c-1"); utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("kind = %v, want NotFound", utils.KindOf(err))
	}
	if _, err := svc.ToggleConditionAlert("u-1", "missing"); utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("kind = %v, want NotFound", utils.KindOf(err))
	}
}

func TestToggleUserCondAlert(t *testing.T) {
	svc, repo := newFixture("c-1", "c-2")

	// None active: the first stored condition goes on.
	result, err := svc.ToggleUserCondAlert("u-1")
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !result.Enabled || !result.HasCondition {
		t.Fatalf("result = %+v, want enabled with condition", result)
	}
	c1, _ := repo.GetByID("c-1")
	if !c1.AlertOn {
		t.Error("first condition should be alert-active")
	}
	assertAtMostOneAlert(t, repo)

	// Any active: all go off.
	result, err = svc.ToggleUserCondAlert("u-1")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if result.Enabled {
		t.Errorf("result = %+v, want disabled", result)
	}
	cnt, _ := repo.CountAlertOn("u-1")
	if cnt != 0 {
		t.Errorf("%d alerts active, want 0", cnt)
	}
}

func TestToggleUserCondAlertWithoutConditions(t *testing.T) {
	svc, _ := newFixture()

	result, err := svc.ToggleUserCondAlert("u-1")
	if err != nil {
		t.Fatalf("toggle with no conditions must not fail: %v", err)
	}
	if result.HasCondition || result.Enabled {
		t.Errorf("result = %+v, want no-op", result)
	}
}

func TestEnsureDefaultAlert(t *testing.T) {
	svc, repo := newFixture("c-1", "c-2")

	if err := svc.EnsureDefaultAlert("u-1", "c-1"); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	c1, _ := repo.GetByID("c-1")
	if !c1.AlertOn {
		t.Fatal("c-1 should be alert-active")
	}

	// With one alert already on, ensure is a no-op for another condition.
	if err := svc.EnsureDefaultAlert("u-1", "c-2"); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	c2, _ := repo.GetByID("c-2")
	if c2.AlertOn {
		t.Error("ensure must not steal the alert from c-1")
	}
	assertAtMostOneAlert(t, repo)
}

func TestToggleTalkAlert(t *testing.T) {
	svc, _ := newFixture()

	on, err := svc.ToggleTalkAlert("u-1")
	if err != nil || !on {
		t.Fatalf("first toggle: on=%v err=%v", on, err)
	}
	on, err = svc.ToggleTalkAlert("u-1")
	if err != nil || on {
		t.Fatalf("second toggle: on=%v err=%v", on, err)
	}
}

func TestGetSettings(t *testing.T) {
	svc, repo := newFixture("c-1")

	settings, err := svc.GetSettings("u-1")
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.CondAlert || settings.TalkAlert {
		t.Errorf("settings = %+v, want all off", settings)
	}

	repo.SetAlert("u-1", "c-1", true)
	settings, err = svc.GetSettings("u-1")
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if !settings.CondAlert {
		t.Error("CondAlert should reflect the active condition")
	}

	if _, err := svc.GetSettings("missing"); utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("kind = %v, want NotFound", utils.KindOf(err))
	}
}
