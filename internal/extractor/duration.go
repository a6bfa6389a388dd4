package extractor

import (
	"regexp"
	"strings"
)

// DateRange is a segmented "start - end · tenure" line
type DateRange struct {
	Start  string
	End    string
	Tenure string
}

// Current reports whether the range is still open
func (d DateRange) Current() bool {
	return strings.EqualFold(d.End, "present")
}

const datePart = `(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+)?\d{4}`

var (
	dateRangePattern  = regexp.MustCompile(`(?i)^(` + datePart + `)\s*[-–—]\s*(` + datePart + `|present)(?:\s*·\s*(.+)|\s+(\d.*))?$`)
	singleDatePattern = regexp.MustCompile(`(?i)^(` + datePart + `)(?:\s*·\s*(.+))?$`)
	yearPattern       = regexp.MustCompile(`(19|20)\d{2}`)
)

// SplitDuration segments a whole date line such as
// "Jan 2020 - Present · 4 yrs" or "2010 - 2014". The line must consist of
// the range alone, so titles and company names are never read as dates.
func SplitDuration(text string) (DateRange, bool) {
	m := dateRangePattern.FindStringSubmatch(normalize(text))
	if m == nil {
		return DateRange{}, false
	}
	end := m[2]
	if strings.EqualFold(end, "present") {
		end = "Present"
	}
	tenure := m[3]
	if tenure == "" {
		tenure = m[4]
	}
	return DateRange{Start: m[1], End: end, Tenure: strings.TrimSpace(tenure)}, true
}

// splitSingleDate handles one-point dates such as "Mar 2021 · 1 mo" or "2014"
func splitSingleDate(text string) (DateRange, bool) {
	m := singleDatePattern.FindStringSubmatch(normalize(text))
	if m == nil {
		return DateRange{}, false
	}
	return DateRange{Start: m[1], End: m[1], Tenure: strings.TrimSpace(m[2])}, true
}

// isDateLine reports whether text is a range or a single date
func isDateLine(text string) bool {
	if _, ok := SplitDuration(text); ok {
		return true
	}
	_, ok := splitSingleDate(text)
	return ok
}

// SplitCompanyLine separates "Acme Corp · Full-time" into company and
// employment type. A bare employment type yields an empty company.
func SplitCompanyLine(text string) (company, employmentType string) {
	parts := strings.Split(text, "·")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if isEmploymentType(part) {
			if employmentType == "" {
				employmentType = part
			}
			continue
		}
		if i == 0 {
			company = part
		}
	}
	return company, employmentType
}

// year pulls the four digit year out of a date such as "Sep 2014"
func year(date string) string {
	if strings.EqualFold(date, "present") {
		return "Present"
	}
	return yearPattern.FindString(date)
}
