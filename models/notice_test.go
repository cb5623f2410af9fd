package models_test

import (
	"testing"
	"time"

	"smatching/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNoticeDaysLeft(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"ends today", date(2026, time.March, 10), 0},
		{"ends tomorrow", date(2026, time.March, 11), 1},
		{"three days left", date(2026, time.March, 13), 3},
		{"ended yesterday", date(2026, time.March, 9), -1},
		{"time of day irrelevant", time.Date(2026, time.March, 13, 1, 0, 0, 0, time.UTC), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := models.Notice{EndDate: tt.end}
			if got := n.DaysLeft(now); got != tt.want {
				t.Errorf("DaysLeft = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNoticeExpired(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want bool
	}{
		{"ends today is not expired", date(2026, time.March, 10), false},
		{"ended yesterday", date(2026, time.March, 9), true},
		{"ends tomorrow", date(2026, time.March, 11), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := models.Notice{EndDate: tt.end}
			if got := n.Expired(now); got != tt.want {
				t.Errorf("Expired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNoticeSummary(t *testing.T) {
	now := date(2026, time.March, 10)
	n := models.Notice{
		ID:          "n-1",
		Title:       "Youth startup fund",
		Institution: "SBA",
		RegDate:     date(2026, time.March, 1),
		EndDate:     date(2026, time.March, 13),
	}

	s := n.Summary(now, true)
	if s.ID != "n-1" || s.Title != "Youth startup fund" {
		t.Errorf("summary identity fields wrong: %+v", s)
	}
	if s.DDay != 3 {
		t.Errorf("DDay = %d, want 3", s.DDay)
	}
	if !s.Scraped {
		t.Error("Scraped flag lost")
	}
}
