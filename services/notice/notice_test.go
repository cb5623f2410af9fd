package notice_test

import (
	"context"
	"sort"
	"testing"
	"time"

	noticeRepo "smatching/database/repository/notice"
	"smatching/models"
	"smatching/services/matching"
	"smatching/services/notice"
	"smatching/utils"
)

// memNoticeRepo is an in-memory notice store mirroring the date
// semantics of the Mongo queries.
type memNoticeRepo struct {
	notices map[string]*models.Notice
}

func newMemNoticeRepo(notices ...*models.Notice) *memNoticeRepo {
	m := &memNoticeRepo{notices: make(map[string]*models.Notice)}
	for _, n := range notices {
		cp := *n
		m.notices[n.ID] = &cp
	}
	return m
}

func (m *memNoticeRepo) GetByID(id string) (*models.Notice, error) {
	if n, ok := m.notices[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (m *memNoticeRepo) Create(n *models.Notice) error {
	cp := *n
	m.notices[n.ID] = &cp
	return nil
}

func (m *memNoticeRepo) valid() []models.Notice {
	var out []models.Notice
	for _, n := range m.notices {
		if n.Valid {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RegDate.Equal(out[j].RegDate) {
			return out[i].RegDate.After(out[j].RegDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func page(all []models.Notice, offset, limit int) []models.Notice {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func (m *memNoticeRepo) CountAll() (int, error) { return len(m.valid()), nil }

func (m *memNoticeRepo) ListAll(offset, limit int) ([]models.Notice, error) {
	return page(m.valid(), offset, limit), nil
}

func (m *memNoticeRepo) CountMatching(c *models.Condition) (int, error) {
	cnt := 0
	for _, n := range m.valid() {
		n := n
		if matching.Matches(c, &n) {
			cnt++
		}
	}
	return cnt, nil
}

func (m *memNoticeRepo) ListMatching(c *models.Condition, offset, limit int) ([]models.Notice, error) {
	var out []models.Notice
	for _, n := range m.valid() {
		n := n
		if matching.Matches(c, &n) {
			out = append(out, n)
		}
	}
	return page(out, offset, limit), nil
}

func (m *memNoticeRepo) ListByIDs(ids []string, offset, limit int) ([]models.Notice, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Notice
	for _, n := range m.valid() {
		if want[n.ID] {
			out = append(out, n)
		}
	}
	return page(out, offset, limit), nil
}

func (m *memNoticeRepo) Invalidate(id string) error {
	n, ok := m.notices[id]
	if !ok {
		return noticeRepo.ErrNotFound
	}
	n.Valid = false
	return nil
}

func (m *memNoticeRepo) ListExpirable(now time.Time) ([]string, error) {
	var out []string
	for _, n := range m.notices {
		if n.Valid && n.Expired(now) {
			out = append(out, n.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memNoticeRepo) ListWithDaysLeft(days int, now time.Time) ([]string, error) {
	var out []string
	for _, n := range m.notices {
		if n.Valid && n.DaysLeft(now) == days {
			out = append(out, n.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memNoticeRepo) IncrementReadCount(id string) error {
	n, ok := m.notices[id]
	if !ok {
		return noticeRepo.ErrNotFound
	}
	n.ReadCount++
	return nil
}

// memScrapRepo is an in-memory bookmark store.
type memScrapRepo struct {
	scraps map[string]map[string]bool // userID -> noticeID set
}

func newMemScrapRepo() *memScrapRepo {
	return &memScrapRepo{scraps: make(map[string]map[string]bool)}
}

func (m *memScrapRepo) IsScraped(userID, noticeID string) (bool, error) {
	return m.scraps[userID][noticeID], nil
}

func (m *memScrapRepo) Insert(userID, noticeID string) error {
	if m.scraps[userID] == nil {
		m.scraps[userID] = make(map[string]bool)
	}
	m.scraps[userID][noticeID] = true
	return nil
}

func (m *memScrapRepo) Delete(userID, noticeID string) error {
	delete(m.scraps[userID], noticeID)
	return nil
}

func (m *memScrapRepo) ListScrapers(noticeID string) ([]string, error) {
	var out []string
	for userID, set := range m.scraps {
		if set[noticeID] {
			out = append(out, userID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memScrapRepo) ListByUser(userID string) ([]string, error) {
	var out []string
	for noticeID := range m.scraps[userID] {
		out = append(out, noticeID)
	}
	sort.Strings(out)
	return out, nil
}

// recordingSink captures emitted notifications.
type recordingSink struct {
	sent []models.Notification
}

func (r *recordingSink) Send(_ context.Context, n *models.Notification) error {
	r.sent = append(r.sent, *n)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validNotice(id string, end time.Time) *models.Notice {
	return &models.Notice{
		ID:      id,
		Title:   "notice " + id,
		RegDate: end.AddDate(0, -1, 0),
		EndDate: end,
		Valid:   true,
	}
}

func newNoticeService(repo *memNoticeRepo, scraps *memScrapRepo) *notice.DefaultNoticeService {
	return &notice.DefaultNoticeService{
		NoticeRepo: repo,
		ScrapRepo:  scraps,
		Matcher:    &matching.DefaultMatchService{CondRepo: nil, NoticeRepo: repo},
	}
}

func TestGetDetailBumpsReadCount(t *testing.T) {
	repo := newMemNoticeRepo(validNotice("n-1", date(2026, time.June, 1)))
	svc := newNoticeService(repo, newMemScrapRepo())

	detail, err := svc.GetDetail("u-1", "n-1")
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if detail.ReadCount != 1 {
		t.Errorf("ReadCount = %d, want 1", detail.ReadCount)
	}

	again, _ := svc.GetDetail("u-1", "n-1")
	if again.ReadCount != 2 {
		t.Errorf("second read: ReadCount = %d, want 2", again.ReadCount)
	}

	if _, err := svc.GetDetail("u-1", "missing"); utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("kind = %v, want NotFound", utils.KindOf(err))
	}
}

func TestToggleScrap(t *testing.T) {
	repo := newMemNoticeRepo(validNotice("n-1", date(2026, time.June, 1)))
	scraps := newMemScrapRepo()
	svc := newNoticeService(repo, scraps)

	on, err := svc.ToggleScrap("u-1", "n-1")
	if err != nil || !on {
		t.Fatalf("first toggle: on=%v err=%v", on, err)
	}
	on, err = svc.ToggleScrap("u-1", "n-1")
	if err != nil || on {
		t.Fatalf("second toggle: on=%v err=%v", on, err)
	}

	if _, err := svc.ToggleScrap("u-1", "missing"); utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("kind = %v, want NotFound", utils.KindOf(err))
	}
}

func TestListScraped(t *testing.T) {
	repo := newMemNoticeRepo(
		validNotice("n-1", date(2026, time.June, 1)),
		validNotice("n-2", date(2026, time.June, 2)),
	)
	scraps := newMemScrapRepo()
	scraps.Insert("u-1", "n-2")
	svc := newNoticeService(repo, scraps)

	list, err := svc.ListScraped("u-1", 0, 10)
	if err != nil {
		t.Fatalf("ListScraped: %v", err)
	}
	if len(list) != 1 || list[0].ID != "n-2" {
		t.Fatalf("list = %+v", list)
	}
	if !list[0].Scraped {
		t.Error("scraped flag must be set")
	}

	empty, err := svc.ListScraped("u-2", 0, 10)
	if err != nil {
		t.Fatalf("empty ListScraped: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty list, got %+v", empty)
	}
}

func TestListAllCarriesScrapFlags(t *testing.T) {
	repo := newMemNoticeRepo(
		validNotice("n-1", date(2026, time.June, 1)),
		validNotice("n-2", date(2026, time.June, 2)),
	)
	scraps := newMemScrapRepo()
	scraps.Insert("u-1", "n-1")
	svc := newNoticeService(repo, scraps)

	list, err := svc.ListAll("u-1", 0, 10)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	for _, s := range list {
		want := s.ID == "n-1"
		if s.Scraped != want {
			t.Errorf("notice %s: scraped = %v, want %v", s.ID, s.Scraped, want)
		}
	}
}
