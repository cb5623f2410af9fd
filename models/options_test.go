package models_test

import (
	"testing"

	"smatching/models"
)

func TestEncodeOptions(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		want     int
	}{
		{"empty selection", nil, 0},
		{"single option", []int{0}, 1},
		{"two options", []int{0, 2}, 0b101},
		{"duplicates collapse", []int{1, 1, 1}, 0b10},
		{"negative ignored", []int{-1, 3}, 0b1000},
		{"order irrelevant", []int{4, 0, 2}, 0b10101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.EncodeOptions(tt.selected); got != tt.want {
				t.Errorf("EncodeOptions(%v) = %b, want %b", tt.selected, got, tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	labels := models.Ages

	// Every subset of a 5-label enumeration, including empty and full.
	for mask := 0; mask < 1<<len(labels); mask++ {
		var selected []int
		for i := range labels {
			if mask&(1<<i) != 0 {
				selected = append(selected, i)
			}
		}

		encoded := models.EncodeOptions(selected)
		if encoded != mask {
			t.Fatalf("EncodeOptions of subset %b = %b", mask, encoded)
		}

		decoded := models.DecodeOptions(encoded, labels)
		if len(decoded) != len(labels) {
			t.Fatalf("DecodeOptions returned %d entries, want %d", len(decoded), len(labels))
		}
		for i, label := range labels {
			want := mask&(1<<i) != 0
			if decoded[label] != want {
				t.Errorf("mask %b: decoded[%q] = %v, want %v", mask, label, decoded[label], want)
			}
		}
	}
}

func TestTrimMask(t *testing.T) {
	tests := []struct {
		name   string
		mask   int
		labels []string
		want   int
	}{
		{"in range untouched", 0b11, models.BusinessTypes, 0b11},
		{"overflow bits dropped", 0b111, models.BusinessTypes, 0b11},
		{"zero stays zero", 0, models.Locations, 0},
		{"full width kept", 0b111111111, models.Locations, 0b111111111},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.TrimMask(tt.mask, tt.labels); got != tt.want {
				t.Errorf("TrimMask(%b) = %b, want %b", tt.mask, got, tt.want)
			}
		})
	}
}

func TestConditionInputEncode(t *testing.T) {
	in := models.ConditionInput{
		Name:         "my startup",
		Location:     []int{0, 1},
		Age:          []int{1},
		Period:       []int{0},
		BusinessType: []int{0, 1},
		Category:     []int{2, 4},
		Field:        []int{3},
		Advantage:    []int{1, 9},
	}

	cond := in.Encode()
	if cond.Name != "my startup" {
		t.Errorf("Name = %q", cond.Name)
	}
	if cond.Location != 0b11 {
		t.Errorf("Location = %b, want %b", cond.Location, 0b11)
	}
	if cond.Category != 0b10100 {
		t.Errorf("Category = %b, want %b", cond.Category, 0b10100)
	}
	// Index 9 exceeds the 5-label advantage enumeration and is trimmed.
	if cond.Advantage != 0b10 {
		t.Errorf("Advantage = %b, want %b", cond.Advantage, 0b10)
	}
	if cond.AlertOn {
		t.Error("Encode must not set AlertOn")
	}
}
