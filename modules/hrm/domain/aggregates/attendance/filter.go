package attendance

import (
	"net/url"
	"strings"

	"github.com/go-playground/form"
)

// Filter narrows GET /attendance/ on the server. Empty fields are omitted
// from the query.
type Filter struct {
	EmployeeID string `form:"employee_id,omitempty"`
	Date       string `form:"date,omitempty"`
}

func (f Filter) Active() bool {
	return strings.TrimSpace(f.EmployeeID) != "" || strings.TrimSpace(f.Date) != ""
}

var encoder = form.NewEncoder()

// Values encodes the filter as query parameters.
func (f Filter) Values() url.Values {
	f.EmployeeID = strings.TrimSpace(f.EmployeeID)
	f.Date = strings.TrimSpace(f.Date)
	v, err := encoder.Encode(f)
	if err != nil || v == nil {
		return url.Values{}
	}
	return v
}

var decoder = form.NewDecoder()

// FilterFromValues is the inverse of Values.
func FilterFromValues(v url.Values) Filter {
	var f Filter
	if len(v) == 0 {
		return f
	}
	_ = decoder.Decode(&f, v)
	return f
}
