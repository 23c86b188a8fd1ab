package models

import "testing"

func TestTransaction_IsTravel(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"travel", true},
		{"viagens", true},
		{"Travel", false},
		{" viagens", false},
		{"food", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := Transaction{Category: tt.category}.IsTravel()
			if got != tt.want {
				t.Errorf("IsTravel(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}
