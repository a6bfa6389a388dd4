package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkedin-scraper/internal/models"
)

// entries runs parse over every item of a section
func entries[T any](p *Page, spec sectionSpec, parse func(item *goquery.Selection, texts []string) []T) ([]T, bool) {
	sec := p.section(spec)
	if sec == nil {
		return nil, false
	}
	var out []T
	for _, item := range sectionItems(sec) {
		texts := itemTexts(item)
		if len(texts) == 0 || isNoise(texts[0]) {
			continue
		}
		out = append(out, parse(item, texts)...)
	}
	return out, len(out) > 0
}

// About returns the free-text summary
func (p *Page) About() (string, bool) {
	if sec := p.section(aboutSection); sec != nil {
		if text, ok := longest(itemTexts(sec), 21); ok {
			return text, true
		}
	}
	return p.firstText(aboutFallbackSelectors, 21, 10000, nil)
}

// Experience returns positions in page order. Grouped positions under one
// company become one entry per role.
func (p *Page) Experience() ([]models.ExperienceEntry, bool) {
	return entries(p, experienceSection, func(item *goquery.Selection, texts []string) []models.ExperienceEntry {
		if roles := nestedRoles(item); len(roles) > 0 {
			company, employmentType := SplitCompanyLine(texts[0])
			var out []models.ExperienceEntry
			for _, roleTexts := range roles {
				e, ok := parseExperience(roleTexts, false)
				if !ok {
					continue
				}
				e.Company = company
				if e.EmploymentType == "" {
					e.EmploymentType = employmentType
				}
				out = append(out, e)
			}
			if len(out) > 0 {
				return out
			}
		}
		if e, ok := parseExperience(texts, true); ok {
			return []models.ExperienceEntry{e}
		}
		return nil
	})
}

// nestedRoles returns the text lines of sub-positions that carry a date
func nestedRoles(item *goquery.Selection) [][]string {
	var roles [][]string
	item.Find("li").Each(func(_ int, li *goquery.Selection) {
		texts := itemTexts(li)
		for _, t := range texts {
			if _, ok := SplitDuration(t); ok {
				roles = append(roles, texts)
				return
			}
		}
	})
	return roles
}

func parseExperience(texts []string, withCompany bool) (models.ExperienceEntry, bool) {
	var e models.ExperienceEntry
	used := make([]bool, len(texts))

	dateIdx := -1
	for i, t := range texts {
		if dr, ok := SplitDuration(t); ok {
			e.Duration = t
			e.StartDate, e.EndDate, e.Tenure = dr.Start, dr.End, dr.Tenure
			used[i] = true
			dateIdx = i
			break
		}
	}

	titleIdx := -1
	for i, t := range texts {
		if used[i] || isNoise(t) {
			continue
		}
		e.Title = t
		used[i] = true
		titleIdx = i
		break
	}
	if titleIdx < 0 {
		return e, false
	}

	for i := titleIdx + 1; i < len(texts); i++ {
		if dateIdx >= 0 && i > dateIdx {
			break
		}
		if used[i] {
			continue
		}
		company, employmentType := SplitCompanyLine(texts[i])
		if !withCompany && company != "" {
			break
		}
		e.Company, e.EmploymentType = company, employmentType
		used[i] = true
		break
	}

	start := dateIdx + 1
	if dateIdx < 0 {
		start = titleIdx + 1
	}
	for i := start; i < len(texts); i++ {
		if used[i] {
			continue
		}
		if textLen(texts[i]) < 100 && (looksLikeLocation(texts[i]) || isWorkplace(texts[i])) {
			e.Location = texts[i]
			used[i] = true
			break
		}
	}

	var desc []string
	for i, t := range texts {
		if used[i] || isNoise(t) || strings.HasPrefix(strings.ToLower(t), "skills:") {
			continue
		}
		if textLen(t) >= 40 {
			desc = append(desc, t)
		}
	}
	e.Description = strings.Join(desc, "\n")
	return e, true
}

// Education returns schools in page order
func (p *Page) Education() ([]models.EducationEntry, bool) {
	return entries(p, educationSection, func(_ *goquery.Selection, texts []string) []models.EducationEntry {
		e := models.EducationEntry{School: texts[0]}
		for _, t := range texts[1:] {
			lower := strings.ToLower(t)
			switch {
			case e.Duration == "" && isDateLine(t):
				e.Duration = t
				if dr, ok := SplitDuration(t); ok {
					e.StartYear, e.EndYear = year(dr.Start), year(dr.End)
				} else if dr, ok := splitSingleDate(t); ok {
					e.EndYear = year(dr.End)
				}
			case e.Grade == "" && (strings.HasPrefix(lower, "grade") || strings.HasPrefix(lower, "gpa")):
				e.Grade = afterColon(t)
			case e.Degree == "" && e.Duration == "" && textLen(t) < 150 && !isNoise(t):
				e.Degree, e.FieldOfStudy = splitDegree(t)
			}
		}
		return []models.EducationEntry{e}
	})
}

// splitDegree splits "Bachelor of Science - BS, Computer Science"
func splitDegree(t string) (degree, field string) {
	if i := strings.Index(t, ","); i >= 0 {
		return strings.TrimSpace(t[:i]), strings.TrimSpace(t[i+1:])
	}
	if !hasDegreeKeyword(t) {
		return "", t
	}
	return t, ""
}

func afterColon(t string) string {
	if i := strings.Index(t, ":"); i >= 0 {
		return strings.TrimSpace(t[i+1:])
	}
	return t
}

// Certifications returns licenses and certifications
func (p *Page) Certifications() ([]models.CertificationEntry, bool) {
	return entries(p, certificationsSection, func(_ *goquery.Selection, texts []string) []models.CertificationEntry {
		c := models.CertificationEntry{Name: texts[0]}
		for _, t := range texts[1:] {
			lower := strings.ToLower(t)
			switch {
			case strings.HasPrefix(lower, "issued"):
				for _, part := range strings.Split(t, "·") {
					part = strings.TrimSpace(part)
					pl := strings.ToLower(part)
					switch {
					case strings.HasPrefix(pl, "issued"):
						c.Date = strings.TrimSpace(part[len("issued"):])
					case strings.HasPrefix(pl, "expires"):
						c.Expires = strings.TrimSpace(part[len("expires"):])
					case strings.HasPrefix(pl, "expired"):
						c.Expires = strings.TrimSpace(part[len("expired"):])
					}
				}
			case strings.HasPrefix(lower, "credential id"), strings.HasPrefix(lower, "skills:"), isNoise(t):
			case c.Issuer == "":
				c.Issuer = t
			}
		}
		return []models.CertificationEntry{c}
	})
}

// Skills returns distinct skill names in order of first appearance
func (p *Page) Skills() ([]string, bool) {
	var skills []string
	if sec := p.section(skillsSection); sec != nil {
		for _, item := range sectionItems(sec) {
			texts := itemTexts(item)
			if len(texts) == 0 {
				continue
			}
			if s := texts[0]; isSkill(s) {
				skills = append(skills, s)
			}
		}
	}
	if len(skills) == 0 {
		for _, sel := range skillFallbackSelectors {
			p.doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
				if text := normalize(s.Text()); isSkill(text) {
					skills = append(skills, text)
				}
			})
		}
	}
	skills = dedupe(skills)
	return skills, len(skills) > 0
}

func isSkill(s string) bool {
	n := textLen(s)
	if n < 2 || n > 50 || isNoise(s) {
		return false
	}
	lower := strings.ToLower(s)
	return !strings.Contains(lower, "endorse") && lower != "skills"
}

// Languages returns spoken languages without proficiency
func (p *Page) Languages() ([]string, bool) {
	langs, ok := entries(p, languagesSection, func(_ *goquery.Selection, texts []string) []string {
		if n := textLen(texts[0]); n < 2 || n > 50 {
			return nil
		}
		return []string{texts[0]}
	})
	if !ok {
		return nil, false
	}
	langs = dedupe(langs)
	return langs, true
}

// Projects returns the projects section
func (p *Page) Projects() ([]models.ProjectEntry, bool) {
	return entries(p, projectsSection, func(_ *goquery.Selection, texts []string) []models.ProjectEntry {
		pr := models.ProjectEntry{Name: texts[0]}
		var rest []string
		for _, t := range texts[1:] {
			lower := strings.ToLower(t)
			switch {
			case pr.Dates == "" && isDateLine(t):
				pr.Dates = t
			case strings.HasPrefix(lower, "associated with"), strings.HasPrefix(lower, "skills:"), isNoise(t):
			default:
				rest = append(rest, t)
			}
		}
		pr.Description, _ = longest(rest, 30)
		return []models.ProjectEntry{pr}
	})
}

// Volunteering returns the volunteering section
func (p *Page) Volunteering() ([]models.VolunteerEntry, bool) {
	return entries(p, volunteeringSection, func(_ *goquery.Selection, texts []string) []models.VolunteerEntry {
		v := models.VolunteerEntry{Role: texts[0]}
		var rest []string
		for _, t := range texts[1:] {
			switch {
			case v.Dates == "" && isDateLine(t):
				v.Dates = t
			case isNoise(t):
			case v.Organization == "" && v.Dates == "":
				v.Organization, _ = SplitCompanyLine(t)
			case v.Cause == "" && textLen(t) < 40:
				v.Cause = t
			default:
				rest = append(rest, t)
			}
		}
		v.Description, _ = longest(rest, 30)
		return []models.VolunteerEntry{v}
	})
}

// Honors returns honors and awards
func (p *Page) Honors() ([]models.HonorEntry, bool) {
	return entries(p, honorsSection, func(_ *goquery.Selection, texts []string) []models.HonorEntry {
		h := models.HonorEntry{Title: texts[0]}
		var rest []string
		for _, t := range texts[1:] {
			lower := strings.ToLower(t)
			switch {
			case strings.HasPrefix(lower, "issued by"):
				parts := strings.Split(t, "·")
				h.Issuer = strings.TrimSpace(strings.TrimSpace(parts[0])[len("issued by"):])
				if len(parts) > 1 {
					h.Date = strings.TrimSpace(parts[1])
				}
			case h.Date == "" && isDateLine(t):
				h.Date = t
			case strings.HasPrefix(lower, "associated with"), isNoise(t):
			default:
				rest = append(rest, t)
			}
		}
		h.Description, _ = longest(rest, 30)
		return []models.HonorEntry{h}
	})
}
