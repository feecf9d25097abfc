package reconcile

import "strings"

// maxProfileEmails is the number of email slots a profile carries. Extra
// addresses beyond the slots are dropped, not retained elsewhere.
const maxProfileEmails = 2

// ResolveProfile reconciles one constituent row with its related email and
// donation rows and the tag vocabulary into a fully normalized profile.
// Pure function: no I/O, no shared state, safe to fan out over rows.
func ResolveProfile(c ConstituentRecord, emails []EmailRecord, donations []DonationRecord, vocab map[string]string) ProcessedProfile {
	p := ProcessedProfile{
		ConstituentID: c.PatronID,
		CreatedAt:     NormalizeDate(c.DateEntered),
		// Salutation carries the Mr./Dr. style honorific; Title is the job
		// title and feeds the background summary instead.
		Title:      ValidateTitle(c.Salutation),
		Tags:       remapTags(c.Tags, vocab),
		Background: ComposeBackground(c.Title, c.MaritalStatus),
	}

	p.Email1, p.Email2 = pickEmails(c.PrimaryEmail, emails)

	// Company iff the record has no personal name at all but does name an
	// organization. The losing side's fields are forced empty so exactly one
	// identity is ever populated.
	if strings.TrimSpace(c.FirstName) == "" && strings.TrimSpace(c.LastName) == "" && strings.TrimSpace(c.Company) != "" {
		p.ConstituentType = TypeCompany
		p.CompanyName = c.Company
	} else {
		p.ConstituentType = TypePerson
		p.FirstName = c.FirstName
		p.LastName = c.LastName
	}

	summary := AggregateDonations(donations)
	if summary.LifetimeTotal > 0 {
		p.LifetimeAmount = formatAmount(summary.LifetimeTotal)
	}
	p.MostRecentAmount = summary.MostRecentAmount
	p.MostRecentDate = summary.MostRecentDate

	return p
}

// pickEmails fills the two email slots: the normalized primary address first
// when valid, then distinct supplemental addresses in row order. Invalid
// addresses are dropped, duplicates collapse, and anything past the second
// slot is discarded silently.
func pickEmails(primary string, emails []EmailRecord) (string, string) {
	var list []string
	seen := make(map[string]bool)

	add := func(email string) {
		if email == "" || seen[email] {
			return
		}
		seen[email] = true
		list = append(list, email)
	}

	add(NormalizeEmail(primary))
	for _, e := range emails {
		if len(list) >= maxProfileEmails {
			break
		}
		add(NormalizeEmail(e.Email))
	}

	var first, second string
	if len(list) > 0 {
		first = list[0]
	}
	if len(list) > 1 {
		second = list[1]
	}
	return first, second
}

// remapTags substitutes each comma-separated tag through the vocabulary by
// exact match, keeping unmapped tokens as-is. Order, duplicates, and empty
// tokens all survive; dedup happens nowhere in the tag pipeline.
func remapTags(raw string, vocab map[string]string) string {
	parts := strings.Split(raw, ",")
	for i, part := range parts {
		token := strings.TrimSpace(part)
		if mapped, ok := vocab[token]; ok {
			token = mapped
		}
		parts[i] = token
	}
	return strings.Join(parts, ",")
}
