package reconcile

import "sort"

// RefundPolicy names how non-"Paid" donations contribute to the lifetime
// total. Only RefundPolicySubtract is implemented: every non-"Paid" status,
// refunds included, subtracts its amount. Whether voided transactions should
// really behave like refunds is an open business question, so the rule is
// surfaced as a policy value instead of being buried in the arithmetic.
type RefundPolicy string

// RefundPolicySubtract treats every non-"Paid" donation as a reversal.
const RefundPolicySubtract RefundPolicy = "subtract"

// Valid reports whether the policy is one the aggregator implements.
func (p RefundPolicy) Valid() bool {
	return p == RefundPolicySubtract
}

// normalizedDonation is one donation row with its amount parsed and its date
// canonicalized, ready for sorting and totaling.
type normalizedDonation struct {
	status   string
	amount   float64
	amountOK bool
	date     string // RFC3339, or "" when the raw date failed to parse
}

// AggregateDonations reduces one patron's donation rows into a lifetime net
// total and the most-recent paid donation.
//
// Rows sort descending by normalized date; RFC3339 strings order
// chronologically under plain string comparison, and rows whose date failed
// to normalize compare as "" and sink to the end. The lifetime total adds
// "Paid" amounts and subtracts everything else (see RefundPolicy). Rows whose
// amount fails numeric parse contribute nothing. The most-recent pair comes
// from the first "Paid" row in sorted order, or stays empty when the patron
// has none.
func AggregateDonations(donations []DonationRecord) DonationSummary {
	norm := make([]normalizedDonation, 0, len(donations))
	for _, d := range donations {
		amount, ok := parseAmount(d.Amount)
		norm = append(norm, normalizedDonation{
			status:   d.Status,
			amount:   amount,
			amountOK: ok,
			date:     NormalizeDate(d.Date),
		})
	}

	sort.SliceStable(norm, func(i, j int) bool {
		return norm[i].date > norm[j].date
	})

	var summary DonationSummary
	for _, d := range norm {
		if !d.amountOK {
			continue
		}
		if d.status == StatusPaid {
			summary.LifetimeTotal += d.amount
		} else {
			summary.LifetimeTotal -= d.amount
		}
	}

	for _, d := range norm {
		if d.status != StatusPaid {
			continue
		}
		if d.amountOK {
			summary.MostRecentAmount = formatAmount(d.amount)
		}
		summary.MostRecentDate = d.date
		break
	}

	return summary
}
