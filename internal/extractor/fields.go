package extractor

import (
	"github.com/sirupsen/logrus"

	"linkedin-scraper/internal/models"
)

// Fields is the raw output of every extractor for one page
type Fields struct {
	Name            string
	Headline        string
	Location        string
	About           string
	Connections     string
	Followers       string
	ProfileImageURL string
	Experience      []models.ExperienceEntry
	Education       []models.EducationEntry
	Certifications  []models.CertificationEntry
	Skills          []string
	Languages       []string
	Projects        []models.ProjectEntry
	Volunteering    []models.VolunteerEntry
	Honors          []models.HonorEntry

	// Missing names the fields that were not found on the page
	Missing []string
}

// Core fields are reported at warn level when absent; supplementary ones
// are often legitimately missing and only logged at debug.
var coreFields = map[string]bool{
	"name": true, "headline": true, "location": true,
	"experience": true, "education": true, "skills": true,
}

// ExtractAll runs every extractor against p. Absent fields are left empty,
// recorded in Missing and logged on log.
func ExtractAll(p *Page, log *logrus.Entry) Fields {
	var f Fields
	gap := func(field string, ok bool) {
		if ok {
			return
		}
		f.Missing = append(f.Missing, field)
		if log == nil {
			return
		}
		entry := log.WithField("field", field)
		if coreFields[field] {
			entry.Warn("field not found on page")
		} else {
			entry.Debug("field not found on page")
		}
	}

	var ok bool
	f.Name, ok = p.Name()
	gap("name", ok)
	f.Headline, ok = p.Headline()
	gap("headline", ok)
	f.Location, ok = p.Location()
	gap("location", ok)
	f.About, ok = p.About()
	gap("about", ok)
	f.Connections, ok = p.Connections()
	gap("connections", ok)
	f.Followers, ok = p.Followers()
	gap("followers", ok)
	f.ProfileImageURL, ok = p.ProfileImageURL()
	gap("profile_image_url", ok)
	f.Experience, ok = p.Experience()
	gap("experience", ok)
	f.Education, ok = p.Education()
	gap("education", ok)
	f.Certifications, ok = p.Certifications()
	gap("certifications", ok)
	f.Skills, ok = p.Skills()
	gap("skills", ok)
	f.Languages, ok = p.Languages()
	gap("languages", ok)
	f.Projects, ok = p.Projects()
	gap("projects", ok)
	f.Volunteering, ok = p.Volunteering()
	gap("volunteering", ok)
	f.Honors, ok = p.Honors()
	gap("honors", ok)

	return f
}
