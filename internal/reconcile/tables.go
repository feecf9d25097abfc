package reconcile

import (
	"log"
	"strings"

	"github.com/timalander/cuebox-takehome/internal/csvio"
)

// Header aliases for each input table. Source systems export the same field
// under several spellings, so header matching is case-insensitive against a
// small alias set per canonical field.
var (
	constituentAliases = map[string][]string{
		"patron_id":    {"patron id", "patron_id", "patronid", "constituent id"},
		"first_name":   {"first name", "first_name", "firstname"},
		"last_name":    {"last name", "last_name", "lastname"},
		"date_entered": {"date entered", "date_entered", "created", "created at"},
		"email":        {"email", "email address", "primary email"},
		"company":      {"company", "company name", "organization"},
		"salutation":   {"salutation"},
		"title":        {"title", "job title"},
		"tags":         {"tags", "labels"},
		// The upstream export stores marital status under a column named
		// "Gender". Known data-quality defect in the source system.
		"marital_status": {"gender", "marital status", "marital_status"},
	}

	donationAliases = map[string][]string{
		"patron_id":      {"patron id", "patron_id", "patronid", "constituent id"},
		"amount":         {"amount", "donation amount", "gift amount"},
		"date":           {"date", "donation date", "gift date"},
		"payment_method": {"payment method", "payment_method"},
		"campaign":       {"campaign"},
		"status":         {"status"},
	}

	emailAliases = map[string][]string{
		"patron_id": {"patron id", "patron_id", "patronid", "constituent id"},
		"email":     {"email", "email address"},
	}
)

// mapHeaders resolves each canonical field to the actual header string used
// by this table, or leaves it unresolved when no alias matches.
func mapHeaders(headers []string, aliases map[string][]string) map[string]string {
	resolved := make(map[string]string)
	for _, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		for field, names := range aliases {
			if _, done := resolved[field]; done {
				continue
			}
			for _, name := range names {
				if lower == name {
					resolved[field] = h
					break
				}
			}
		}
	}
	return resolved
}

// fieldReader reads canonical fields out of row maps for one table.
type fieldReader struct {
	resolved map[string]string
}

func newFieldReader(table *csvio.Table, aliases map[string][]string, label string) fieldReader {
	resolved := mapHeaders(table.Headers, aliases)
	if _, ok := resolved["patron_id"]; !ok && len(table.Rows) > 0 {
		// Best-effort pipeline: rows still parse, they just won't join.
		log.Printf("[reconcile] %s table has no recognizable patron id column (headers: %v)", label, table.Headers)
	}
	return fieldReader{resolved: resolved}
}

func (f fieldReader) get(row map[string]string, field string) string {
	header, ok := f.resolved[field]
	if !ok {
		return ""
	}
	return row[header]
}

func parseConstituents(table *csvio.Table) []ConstituentRecord {
	r := newFieldReader(table, constituentAliases, "constituents")
	records := make([]ConstituentRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, ConstituentRecord{
			PatronID:      r.get(row, "patron_id"),
			FirstName:     r.get(row, "first_name"),
			LastName:      r.get(row, "last_name"),
			DateEntered:   r.get(row, "date_entered"),
			PrimaryEmail:  r.get(row, "email"),
			Company:       r.get(row, "company"),
			Salutation:    r.get(row, "salutation"),
			Title:         r.get(row, "title"),
			Tags:          r.get(row, "tags"),
			MaritalStatus: r.get(row, "marital_status"),
		})
	}
	return records
}

func groupDonations(table *csvio.Table) map[string][]DonationRecord {
	r := newFieldReader(table, donationAliases, "donations")
	grouped := make(map[string][]DonationRecord)
	for _, row := range table.Rows {
		d := DonationRecord{
			PatronID:      r.get(row, "patron_id"),
			Amount:        r.get(row, "amount"),
			Date:          r.get(row, "date"),
			PaymentMethod: r.get(row, "payment_method"),
			Campaign:      r.get(row, "campaign"),
			Status:        r.get(row, "status"),
		}
		grouped[d.PatronID] = append(grouped[d.PatronID], d)
	}
	return grouped
}

func groupEmails(table *csvio.Table) map[string][]EmailRecord {
	r := newFieldReader(table, emailAliases, "emails")
	grouped := make(map[string][]EmailRecord)
	for _, row := range table.Rows {
		e := EmailRecord{
			PatronID: r.get(row, "patron_id"),
			Email:    r.get(row, "email"),
		}
		grouped[e.PatronID] = append(grouped[e.PatronID], e)
	}
	return grouped
}
