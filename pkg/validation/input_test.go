package validation

import "testing"

func TestAcceptsInputRune(t *testing.T) {
	tests := []struct {
		name          string
		current       string
		r             rune
		allowNegative bool
		expected      bool
	}{
		{"Digit", "12", '7', false, true},
		{"First decimal point", "12", '.', false, true},
		{"Second decimal point", "1.2", '.', false, false},
		{"Minus when allowed on empty field", "", '-', true, true},
		{"Minus after digits", "3", '-', true, false},
		{"Minus when not allowed", "", '-', false, false},
		{"Letter", "", 'x', true, false},
		{"Space", "1", ' ', false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AcceptsInputRune(tt.current, tt.r, tt.allowNegative); got != tt.expected {
				t.Errorf("AcceptsInputRune(%q, %q, %v) = %v, expected %v",
					tt.current, tt.r, tt.allowNegative, got, tt.expected)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		expected  string
		expectErr bool
	}{
		{"Integer", "300000", "300000", false},
		{"Decimal", "0.35", "0.35", false},
		{"Negative", "-1.5", "-1.5", false},
		{"Separators and dollar sign", " $1,250.50 ", "1250.5", false},
		{"Empty", "", "", true},
		{"Only whitespace", "   ", "", true},
		{"Not a number", "12abc", "", true},
		{"Lone minus", "-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount("houseValue", tt.text)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseAmount(%q) expected error but got %s", tt.text, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error = %v", tt.text, err)
			}
			if got.String() != tt.expected {
				t.Errorf("ParseAmount(%q) = %s, expected %s", tt.text, got, tt.expected)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	got, err := ParseNumber("interestRate", "6.5")
	if err != nil {
		t.Fatalf("ParseNumber() unexpected error = %v", err)
	}
	if got != 6.5 {
		t.Errorf("ParseNumber() = %v, expected 6.5", got)
	}

	if _, err := ParseNumber("interestRate", ""); err == nil {
		t.Error("ParseNumber() expected error for empty input")
	}
}
