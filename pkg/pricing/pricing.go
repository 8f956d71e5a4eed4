package pricing

import (
	"math"

	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
)

// GSTRate is the GST applied on the post-discount subtotal.
const GSTRate = 0.18

// perMonth maps a meeting frequency to the number of meetings per month.
// "As needed" carries no commitment regardless of duration.
var perMonth = map[string]float64{
	"Daily":      20,
	"3 per week": 12,
	"2 per week": 8,
	"1 per week": 4,
	"Bi-weekly":  2,
	"Monthly":    1,
	"As needed":  0,
}

// Frequencies returns the recognized frequency keys.
func Frequencies() []string {
	return []string{"Daily", "3 per week", "2 per week", "1 per week", "Bi-weekly", "Monthly", "As needed"}
}

// IsValidFrequency reports whether frequency is a recognized key.
func IsValidFrequency(frequency string) bool {
	_, ok := perMonth[frequency]
	return ok
}

// CommittedMeetings derives the contracted meeting count for one team row.
// Duration is plan-scoped, so a duration change means re-deriving every row.
func CommittedMeetings(frequency string, durationMonths int) (int, error) {
	rate, ok := perMonth[frequency]
	if !ok {
		return 0, apperror.ErrInvalidFrequency
	}
	return int(math.Round(rate * float64(durationMonths))), nil
}

// Row is one priced team deployment line.
type Row struct {
	CommittedMeetings int
	Count             int
	RatePerMeeting    float64
}

// Totals is the computed price breakdown of a plan.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	Taxable        float64 `json:"taxable"`
	GSTAmount      float64 `json:"gst_amount"`
	GrandTotal     float64 `json:"grand_total"`
}

// Aggregate computes the price breakdown for a set of rows and a discount
// percentage. Each stage is rounded to the nearest currency unit so stored
// totals always match the displayed line items, and the result is a pure
// function of its inputs.
func Aggregate(rows []Row, discountPercentage float64) Totals {
	var subtotal float64
	for _, row := range rows {
		subtotal += math.Round(float64(row.CommittedMeetings) * float64(row.Count) * row.RatePerMeeting)
	}
	subtotal = math.Round(subtotal)

	discount := math.Round(subtotal * discountPercentage / 100)
	taxable := subtotal - discount
	gst := math.Round(taxable * GSTRate)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Taxable:        taxable,
		GSTAmount:      gst,
		GrandTotal:     taxable + gst,
	}
}
