package models

import "time"

// ProfileRecord is the flat result of scraping one profile page.
// URL is the caller's input, kept verbatim. Every other field may be empty.
type ProfileRecord struct {
	URL             string               `json:"url"`
	Name            string               `json:"name"`
	Headline        string               `json:"headline"`
	Location        string               `json:"location"`
	About           string               `json:"about,omitempty"`
	CurrentCompany  string               `json:"current_company,omitempty"`
	Connections     string               `json:"connections,omitempty"`
	Followers       string               `json:"followers,omitempty"`
	ProfileImageURL string               `json:"profile_image_url,omitempty"`
	Experience      []ExperienceEntry    `json:"experience"`
	Education       []EducationEntry     `json:"education"`
	Certifications  []CertificationEntry `json:"certifications"`
	Skills          []string             `json:"skills"`
	Languages       []string             `json:"languages"`
	Projects        []ProjectEntry       `json:"projects,omitempty"`
	Volunteering    []VolunteerEntry     `json:"volunteering,omitempty"`
	Honors          []HonorEntry         `json:"honors,omitempty"`
	ScrapedAt       time.Time            `json:"scraped_at"`
}

// ExperienceEntry is one position in the experience section.
type ExperienceEntry struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	EmploymentType string `json:"employment_type,omitempty"`
	Duration       string `json:"duration"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	Tenure         string `json:"tenure,omitempty"`
	Location       string `json:"location,omitempty"`
	Description    string `json:"description,omitempty"`
}

// EducationEntry is one school in the education section.
type EducationEntry struct {
	School       string `json:"school"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	Duration     string `json:"duration,omitempty"`
	StartYear    string `json:"start_year,omitempty"`
	EndYear      string `json:"end_year,omitempty"`
	Grade        string `json:"grade,omitempty"`
}

// CertificationEntry is one license or certification.
type CertificationEntry struct {
	Name    string `json:"name"`
	Issuer  string `json:"issuer,omitempty"`
	Date    string `json:"date,omitempty"`
	Expires string `json:"expires,omitempty"`
}

// ProjectEntry is one item in the projects section.
type ProjectEntry struct {
	Name        string `json:"name"`
	Dates       string `json:"dates,omitempty"`
	Description string `json:"description,omitempty"`
}

// VolunteerEntry is one item in the volunteering section.
type VolunteerEntry struct {
	Role         string `json:"role"`
	Organization string `json:"organization,omitempty"`
	Cause        string `json:"cause,omitempty"`
	Dates        string `json:"dates,omitempty"`
	Description  string `json:"description,omitempty"`
}

// HonorEntry is one item in the honors & awards section.
type HonorEntry struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}
