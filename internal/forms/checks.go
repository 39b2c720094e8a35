package forms

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	currencyPattern = regexp.MustCompile(`^\$?[\d,]+(?:\.\d{1,2})?$`)
	numericPattern  = regexp.MustCompile(`^\d+$`)
)

// dateLayouts lists the accepted date spellings, most specific first.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
}

// ParseDate attempts to parse a date in any of the accepted layouts.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAmount converts a currency string ("$1,234.50", "1234.50") to a float.
func ParseAmount(value string) (float64, bool) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// checkCurrency accepts empty values; required-ness is enforced separately.
func checkCurrency(value string, _ map[string]string) bool {
	if value == "" {
		return true
	}
	return currencyPattern.MatchString(strings.TrimSpace(value))
}

func checkDate(value string, _ map[string]string) bool {
	if value == "" {
		return true
	}
	_, ok := ParseDate(value)
	return ok
}

func checkNumeric(value string, _ map[string]string) bool {
	if value == "" {
		return true
	}
	return numericPattern.MatchString(strings.TrimSpace(value))
}

// checkAmountAtMost builds a rule predicate enforcing an upper bound on a
// currency field. Unparseable values pass; format errors are the currency
// rule's job.
func checkAmountAtMost(limit float64) func(string, map[string]string) bool {
	return func(value string, _ map[string]string) bool {
		if value == "" {
			return true
		}
		amount, ok := ParseAmount(value)
		if !ok {
			return true
		}
		return amount <= limit
	}
}

func currencyRule(field string) FieldRule {
	return FieldRule{
		Name:     field + "_currency_format",
		Severity: SeverityMedium,
		Message:  "must be a dollar amount such as $1234.50",
		Check:    checkCurrency,
	}
}

func dateRule(field string) FieldRule {
	return FieldRule{
		Name:     field + "_date_format",
		Severity: SeverityHigh,
		Message:  "must be a recognizable date",
		Check:    checkDate,
	}
}
