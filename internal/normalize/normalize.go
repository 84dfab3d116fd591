package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/f1data/f1scrape/internal/model"
)

// dayMonthYearLayout parses dates combined from a day-month text and a year,
// e.g. "5 Mar 2021". The non-padded day accepts both "5" and "05".
const dayMonthYearLayout = "2 Jan 2006"

// FieldName normalizes a column name for output: lower-cased, with spaces
// replaced by underscores. "Grand Prix" becomes "grand_prix".
//
// The transform is idempotent: applying it to an already-normalized name
// returns the name unchanged.
func FieldName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Value cleans a string cell value: non-breaking spaces become regular
// spaces, internal whitespace runs collapse to a single space, and
// surrounding whitespace is trimmed.
func Value(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Int coerces cell text to an integer. Unparseable text yields the
// missing-value marker, never an error: a lap count of "—" or "" is data
// the source chose not to provide, not a reason to stop.
func Int(s string) model.NullInt {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return model.NullInt{}
	}
	return model.NewInt(n)
}

// DayMonthYear combines a day-month text ("5 Mar") with a year into a full
// calendar date. Text that does not parse under the fixed day-month-year
// format yields the missing-value marker.
func DayMonthYear(dayMonth string, year int) model.NullDate {
	combined := fmt.Sprintf("%s %d", strings.TrimSpace(dayMonth), year)
	t, err := time.Parse(dayMonthYearLayout, combined)
	if err != nil {
		return model.NullDate{}
	}
	return model.NewDate(t)
}
