package reconcile

// ConstituentType distinguishes person records from organization records.
type ConstituentType string

const (
	TypePerson  ConstituentType = "Person"
	TypeCompany ConstituentType = "Company"
)

// StatusPaid is the donation status that marks a completed gift. Matching is
// exact; every other status value is treated as a reversal when totaling.
const StatusPaid = "Paid"

// ConstituentRecord is one row of the primary patron table. PatronID is the
// join key for donation and email rows; every other field may be empty.
type ConstituentRecord struct {
	PatronID     string
	FirstName    string
	LastName     string
	DateEntered  string
	PrimaryEmail string
	Company      string
	Salutation   string
	Title        string
	Tags         string
	// MaritalStatus arrives under a column named "Gender" in upstream
	// exports. The external name is wrong, not the data; the misleading
	// label stops at the parse boundary.
	MaritalStatus string
}

// DonationRecord is one row of the donation-history table. Amount and Date
// are raw text and may be inconsistently formatted.
type DonationRecord struct {
	PatronID      string
	Amount        string
	Date          string
	PaymentMethod string
	Campaign      string
	Status        string
}

// EmailRecord is one row of the supplemental email table. Multiple rows per
// patron are expected.
type EmailRecord struct {
	PatronID string
	Email    string
}

// TagMapping is one vocabulary entry: a source tag and its canonical
// replacement.
type TagMapping struct {
	SourceName string
	MappedName string
}

// ProcessedProfile is the fully reconciled output row for one constituent.
type ProcessedProfile struct {
	ConstituentID    string          `json:"constituent_id"`
	ConstituentType  ConstituentType `json:"constituent_type"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	CompanyName      string          `json:"company_name"`
	CreatedAt        string          `json:"created_at"`
	Email1           string          `json:"email_1"`
	Email2           string          `json:"email_2"`
	Title            string          `json:"title"`
	Tags             string          `json:"tags"`
	Background       string          `json:"background_information"`
	LifetimeAmount   string          `json:"lifetime_donation_amount"`
	MostRecentDate   string          `json:"most_recent_donation_date"`
	MostRecentAmount string          `json:"most_recent_donation_amount"`
}

// TagCount is one row of the tag-frequency summary.
type TagCount struct {
	Name  string `json:"tag_name"`
	Count int    `json:"tag_count"`
}

// DonationSummary is the per-patron reduction of all donation rows.
// LifetimeTotal is the pre-formatting numeric net; the most-recent fields are
// already rendered (formatted currency, RFC3339 date) or empty when the
// patron has no paid donation.
type DonationSummary struct {
	LifetimeTotal    float64
	MostRecentAmount string
	MostRecentDate   string
}

// Output column names, in the fixed order the serialized tables use.
const (
	ColConstituentID    = "Constituent ID"
	ColConstituentType  = "Constituent Type"
	ColFirstName        = "First Name"
	ColLastName         = "Last Name"
	ColCompanyName      = "Company Name"
	ColCreatedAt        = "Created At"
	ColEmail1           = "Email 1 (Standardized)"
	ColEmail2           = "Email 2 (Standardized)"
	ColTitle            = "Title"
	ColTags             = "Tags"
	ColBackground       = "Background Information"
	ColLifetimeAmount   = "Lifetime Donation Amount"
	ColMostRecentDate   = "Most Recent Donation Date"
	ColMostRecentAmount = "Most Recent Donation Amount"

	ColTagName  = "Tag Name"
	ColTagCount = "Tag Count"
)

// ProfileColumns is the serialization order for processed-profile rows.
var ProfileColumns = []string{
	ColConstituentID,
	ColConstituentType,
	ColFirstName,
	ColLastName,
	ColCompanyName,
	ColCreatedAt,
	ColEmail1,
	ColEmail2,
	ColTitle,
	ColTags,
	ColBackground,
	ColLifetimeAmount,
	ColMostRecentDate,
	ColMostRecentAmount,
}

// TagSummaryColumns is the serialization order for tag-summary rows.
var TagSummaryColumns = []string{ColTagName, ColTagCount}

// Row maps the profile to its serialized column values.
func (p ProcessedProfile) Row() map[string]string {
	return map[string]string{
		ColConstituentID:    p.ConstituentID,
		ColConstituentType:  string(p.ConstituentType),
		ColFirstName:        p.FirstName,
		ColLastName:         p.LastName,
		ColCompanyName:      p.CompanyName,
		ColCreatedAt:        p.CreatedAt,
		ColEmail1:           p.Email1,
		ColEmail2:           p.Email2,
		ColTitle:            p.Title,
		ColTags:             p.Tags,
		ColBackground:       p.Background,
		ColLifetimeAmount:   p.LifetimeAmount,
		ColMostRecentDate:   p.MostRecentDate,
		ColMostRecentAmount: p.MostRecentAmount,
	}
}
