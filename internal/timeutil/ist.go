package timeutil

import (
	"fmt"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30)
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "02 Jan 2006, 03:04 PM"
	InvoiceLayout = "02-Jan-2006"
)

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// Today returns the current IST calendar date as YYYY-MM-DD.
func Today() string {
	return Now().Format(DateLayout)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) at IST midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, IST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}

// IsDate reports whether value is a valid YYYY-MM-DD date.
func IsDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

// FormatDate renders a stored date back into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DisplayDate converts YYYY-MM-DD into the format printed on invoices. Invalid input is returned as is.
func DisplayDate(value string) string {
	t, err := ParseDate(value)
	if err != nil {
		return value
	}
	return t.Format(InvoiceLayout)
}
