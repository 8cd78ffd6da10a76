package attendance

import (
	"github.com/shopspring/decimal"

	"github.com/iota-uz/hrms-lite/pkg/formatting"
)

// Summary counts statuses over the records held by the client.
type Summary struct {
	Total             int             `json:"total"`
	Present           int             `json:"present"`
	Absent            int             `json:"absent"`
	PresentPercentage decimal.Decimal `json:"present_percentage"`
}

// Summarize treats every non-present record as absent and rounds the present
// share to one decimal.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if r.Status == StatusPresent {
			s.Present++
		}
	}
	s.Absent = s.Total - s.Present
	s.PresentPercentage = formatting.Percentage(s.Present, s.Total)
	return s
}
