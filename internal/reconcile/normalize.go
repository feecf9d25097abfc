package reconcile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail trims and lowercases an address and returns it only if it
// passes the syntax check. No repair is attempted on malformed input.
// Idempotent: normalizing an already-normalized address is a no-op.
func NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailRegex.MatchString(email) {
		return ""
	}
	return email
}

// NormalizeCurrency re-renders a textual amount like "$3,000.00" as "$" plus
// exactly two decimal digits. Plain numbers without decoration are accepted
// (used when reformatting computed totals). Empty or non-numeric input
// yields "".
func NormalizeCurrency(raw string) string {
	v, ok := parseAmount(raw)
	if !ok {
		return ""
	}
	return formatAmount(v)
}

// parseAmount strips currency decoration and parses the remainder.
func parseAmount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// dateLayouts are the direct-parse attempts, tried in order. Upstream date
// formats are inconsistent, so parsing is an explicit fallback chain rather
// than anything locale-sensitive.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDate parses a raw date string and renders it as an RFC3339 UTC
// instant. Date-only values normalize to midnight UTC. After the direct
// layouts fail, the value is reinterpreted as MM/DD/YYYY with zero-padded
// month and day. Unparseable input yields "".
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	if t, ok := parseSlashDate(s); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return ""
}

// parseSlashDate handles US-style M/D/YYYY values, zero-padding the month
// and day before the parse.
func parseSlashDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	padded := pad2(parts[0]) + "/" + pad2(parts[1]) + "/" + strings.TrimSpace(parts[2])
	t, err := time.Parse("01/02/2006", padded)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func pad2(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

var validTitles = map[string]bool{
	"Mr.":  true,
	"Mrs.": true,
	"Ms.":  true,
	"Dr.":  true,
}

// ValidateTitle returns the input unchanged when it is one of the accepted
// salutation titles, otherwise "".
func ValidateTitle(raw string) string {
	if validTitles[raw] {
		return raw
	}
	return ""
}

// ComposeBackground builds the free-text background summary from the job
// title and marital status, omitting whichever parts are empty.
func ComposeBackground(jobTitle, maritalStatus string) string {
	var parts []string
	if jobTitle != "" {
		parts = append(parts, "Job Title: "+jobTitle)
	}
	if maritalStatus != "" {
		parts = append(parts, "Marital Status: "+maritalStatus)
	}
	return strings.Join(parts, "; ")
}
