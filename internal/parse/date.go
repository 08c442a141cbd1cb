package parse

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "Jan 2, 2006"

// placeholderPrefix marks cells such as "releases on TBD".
const placeholderPrefix = "rel"

var months = map[string]bool{
	"Jan": true, "Feb": true, "Mar": true, "Apr": true, "May": true, "Jun": true,
	"Jul": true, "Aug": true, "Sep": true, "Oct": true, "Nov": true, "Dec": true,
}

var errUnknownMonth = errors.New("unknown month abbreviation")

// ParseDate parses a "Mon DD, YYYY" cell. It returns nil when the cell is
// empty or holds a release placeholder.
func ParseDate(cell string) (*time.Time, error) {
	s := strings.TrimSpace(cell)
	if s == "" || strings.HasPrefix(s, placeholderPrefix) {
		return nil, nil
	}
	if len(s) < 3 {
		return nil, &Error{Kind: KindDate, Input: cell, Err: errUnknownMonth}
	}
	if !months[s[:3]] {
		return nil, &Error{Kind: KindDate, Input: cell, Err: errUnknownMonth}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, &Error{Kind: KindDate, Input: cell, Err: err}
	}
	return &t, nil
}
