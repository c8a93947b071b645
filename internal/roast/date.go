package roast

import (
	"regexp"
	"strings"

	"github.com/kjannette/ifsol-backend/internal/models"
)

var monthYear = regexp.MustCompile(`^[A-Za-z]+\s+\d{4}$`)

// FormatPurchaseDate renders a release date as "January 2021". Strings
// already in "Month YYYY" form pass through; blank input becomes
// "an unknown date"; anything unparseable is returned trimmed.
func FormatPurchaseDate(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "an unknown date"
	case monthYear.MatchString(s):
		return s
	}
	if t, err := models.ParseDate(s); err == nil {
		return t.Format("January 2006")
	}
	return s
}
