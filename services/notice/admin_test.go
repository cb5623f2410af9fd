package notice_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"smatching/models"
	"smatching/services/matching"
	"smatching/services/notice"
	"smatching/utils"
)

// memCondRepo only needs the fan-out query here; alert-enabled
// conditions are matched with the same predicate the storage layer
// encodes.
type memCondRepo struct {
	conds []models.Condition
}

func (m *memCondRepo) ListAlertUsers(n *models.Notice) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, c := range m.conds {
		c := c
		if c.AlertOn && matching.Matches(&c, n) && !seen[c.UserID] {
			seen[c.UserID] = true
			out = append(out, c.UserID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memCondRepo) GetByID(string) (*models.Condition, error) { return nil, nil }
func (m *memCondRepo) ListByUser(string) ([]models.Condition, error) { return nil, nil }
func (m *memCondRepo) CountByUser(string) (int, error) { return 0, nil }
func (m *memCondRepo) Create(*models.Condition) error { return nil }
func (m *memCondRepo) Update(string, string, *models.Condition) error { return nil }
func (m *memCondRepo) Delete(string, string) error { return nil }
func (m *memCondRepo) SetAlert(string, string, bool) error { return nil }
func (m *memCondRepo) SetAlertForAllOfUser(string, bool) error { return nil }
func (m *memCondRepo) CountAlertOn(string) (int, error) { return 0, nil }

func broadCond(userID string, alertOn bool) models.Condition {
	return models.Condition{
		UserID: userID, AlertOn: alertOn,
		Location: 0b1, Age: 0b1, Period: 0b1, BusinessType: 0b1,
		Category: 0b1, Field: 0b1, Advantage: 0b1,
	}
}

func newAdminService(repo *memNoticeRepo, conds *memCondRepo, sink *recordingSink) *notice.DefaultAdminNoticeService {
	return &notice.DefaultAdminNoticeService{
		NoticeRepo: repo,
		CondRepo:   conds,
		Sink:       sink,
	}
}

func TestAddNoticeFansOutToAlertUsers(t *testing.T) {
	repo := newMemNoticeRepo()
	conds := &memCondRepo{conds: []models.Condition{
		broadCond("u-alert", true),
		broadCond("u-silent", false),
	}}
	sink := &recordingSink{}
	svc := newAdminService(repo, conds, sink)

	input := models.NoticeInput{
		Title:   "Seoul youth fund",
		EndDate: "2026-07-01",
	}
	n, err := svc.AddNotice(context.Background(), input)
	if err != nil {
		t.Fatalf("AddNotice: %v", err)
	}
	if n.ID == "" || !n.Valid {
		t.Fatalf("notice fields wrong: %+v", n)
	}
	if !n.EndDate.Equal(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end date = %v", n.EndDate)
	}

	if len(sink.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(sink.sent))
	}
	sent := sink.sent[0]
	if sent.UserID != "u-alert" || sent.Type != models.AlertNewNotice {
		t.Errorf("notification = %+v", sent)
	}
	if sent.NoticeID != n.ID || sent.Message != "Seoul youth fund" {
		t.Errorf("notification payload = %+v", sent)
	}
}

func TestAddNotFitNoticeSkipsFanOut(t *testing.T) {
	repo := newMemNoticeRepo()
	conds := &memCondRepo{conds: []models.Condition{broadCond("u-alert", true)}}
	sink := &recordingSink{}
	svc := newAdminService(repo, conds, sink)

	input := models.NoticeInput{
		Title:   "General announcement",
		EndDate: "2026-07-01",
		NotFit:  true,
	}
	n, err := svc.AddNotice(context.Background(), input)
	if err != nil {
		t.Fatalf("AddNotice: %v", err)
	}
	if !n.NotFit {
		t.Fatal("NotFit flag dropped")
	}
	if len(sink.sent) != 0 {
		t.Errorf("not-fit notice fanned out %d notifications", len(sink.sent))
	}
}

func TestAddNoticeRejectsBadDates(t *testing.T) {
	svc := newAdminService(newMemNoticeRepo(), &memCondRepo{}, &recordingSink{})

	tests := []struct {
		name  string
		input models.NoticeInput
	}{
		{"garbage end date", models.NoticeInput{Title: "x", EndDate: "next friday"}},
		{"bad start date", models.NoticeInput{Title: "x", EndDate: "2026-07-01", StartDate: "07/01/2026"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddNotice(context.Background(), tt.input)
			if utils.KindOf(err) != utils.KindPreconditionViolated {
				t.Errorf("kind = %v, want PreconditionViolated", utils.KindOf(err))
			}
		})
	}
}

func TestInvalidateNotice(t *testing.T) {
	repo := newMemNoticeRepo(validNotice("n-1", date(2026, time.June, 20)))
	svc := newAdminService(repo, &memCondRepo{}, &recordingSink{})

	if err := svc.InvalidateNotice("n-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	n, _ := repo.GetByID("n-1")
	if n.Valid {
		t.Error("notice still valid")
	}

	if err := svc.InvalidateNotice("missing"); utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("kind = %v, want NotFound", utils.KindOf(err))
	}
}

func TestAddNoticeMasksMatchOnlyOverlappingConditions(t *testing.T) {
	repo := newMemNoticeRepo()
	seoulOnly := broadCond("u-seoul", true)
	seoulOnly.Location = 0b1
	busanOnly := broadCond("u-busan", true)
	busanOnly.Location = 0b100000

	conds := &memCondRepo{conds: []models.Condition{seoulOnly, busanOnly}}
	sink := &recordingSink{}
	svc := newAdminService(repo, conds, sink)

	input := models.NoticeInput{
		Title:    "Seoul-only program",
		EndDate:  "2026-07-01",
		Location: []int{0},
	}
	if _, err := svc.AddNotice(context.Background(), input); err != nil {
		t.Fatalf("AddNotice: %v", err)
	}

	if len(sink.sent) != 1 || sink.sent[0].UserID != "u-seoul" {
		t.Errorf("fan-out = %+v, want only u-seoul", sink.sent)
	}
}
