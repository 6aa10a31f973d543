package validation

import "testing"

func TestValidateStartDate(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		expectErr bool
	}{
		{"Valid month", "2025-06", false},
		{"December", "2030-12", false},
		{"Full date", "2025-06-01", true},
		{"Month out of range", "2025-13", true},
		{"Garbage", "soon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStartDate(tt.startDate)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateStartDate(%s) expected error but got none", tt.startDate)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateStartDate(%s) unexpected error = %v", tt.startDate, err)
			}
		})
	}
}
