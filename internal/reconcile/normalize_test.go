package reconcile

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "walkerjeremy@long.org", "walkerjeremy@long.org"},
		{"uppercase and padding", "  Walker.Jeremy@Long.ORG ", "walker.jeremy@long.org"},
		{"plus tag", "user+tag@example.com", "user+tag@example.com"},
		{"missing at", "invalid-email", ""},
		{"missing tld", "user@host", ""},
		{"embedded space", "user name@example.com", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEmail(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailIdempotent(t *testing.T) {
	inputs := []string{"Walker@Long.ORG", "invalid-email", "", "a@x.com"}
	for _, in := range inputs {
		once := NormalizeEmail(in)
		twice := NormalizeEmail(once)
		if once != twice {
			t.Errorf("NormalizeEmail not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"decorated", "$3,000.00", "$3000.00"},
		{"plain integer", "250", "$250.00"},
		{"plain decimal", "99.5", "$99.50"},
		{"negative", "-50", "$-50.00"},
		{"empty", "", ""},
		{"garbage", "twelve dollars", ""},
		{"stray symbol only", "$", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCurrency(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeCurrency(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"date only", "2018-01-25", "2018-01-25T00:00:00Z"},
		{"rfc3339", "2018-01-25T10:30:00Z", "2018-01-25T10:30:00Z"},
		{"datetime space", "2018-01-25 10:30:00", "2018-01-25T10:30:00Z"},
		{"us slash", "01/25/2018", "2018-01-25T00:00:00Z"},
		{"us slash unpadded", "1/5/2018", "2018-01-05T00:00:00Z"},
		{"garbage", "sometime last year", ""},
		{"slash wrong parts", "2018/01", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	valid := []string{"Mr.", "Mrs.", "Ms.", "Dr."}
	for _, title := range valid {
		if got := ValidateTitle(title); got != title {
			t.Errorf("ValidateTitle(%q) = %q, want unchanged", title, got)
		}
	}

	invalid := []string{"Mr", "dr.", "Prof.", "Sir", "", "Doctor"}
	for _, title := range invalid {
		if got := ValidateTitle(title); got != "" {
			t.Errorf("ValidateTitle(%q) = %q, want empty", title, got)
		}
	}
}

func TestComposeBackground(t *testing.T) {
	tests := []struct {
		name          string
		jobTitle      string
		maritalStatus string
		want          string
	}{
		{"both", "Engineer", "Married", "Job Title: Engineer; Marital Status: Married"},
		{"job title only", "Engineer", "", "Job Title: Engineer"},
		{"marital only", "", "Unknown", "Marital Status: Unknown"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeBackground(tt.jobTitle, tt.maritalStatus)
			if got != tt.want {
				t.Errorf("ComposeBackground(%q, %q) = %q, want %q", tt.jobTitle, tt.maritalStatus, got, tt.want)
			}
		})
	}
}
