package extractor

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"linkedin-scraper/internal/models"
)

func loadFixture(t *testing.T) *Page {
	t.Helper()
	page, err := ParseFile(filepath.Join("testdata", "profile.html"))
	require.NoError(t, err)
	return page
}

func TestTopCard(t *testing.T) {
	page := loadFixture(t)

	name, ok := page.Name()
	require.True(t, ok)
	require.Equal(t, "Jane Doe", name)

	headline, ok := page.Headline()
	require.True(t, ok)
	require.Equal(t, "Staff Software Engineer at Acme Corp", headline)

	location, ok := page.Location()
	require.True(t, ok)
	require.Equal(t, "Berlin, Germany", location)

	connections, ok := page.Connections()
	require.True(t, ok)
	require.Equal(t, "500+", connections)

	followers, ok := page.Followers()
	require.True(t, ok)
	require.Equal(t, "1,234", followers)

	image, ok := page.ProfileImageURL()
	require.True(t, ok)
	require.Equal(t, "https://media.example.com/jane.jpg", image)

	about, ok := page.About()
	require.True(t, ok)
	require.Equal(t, "I build distributed systems and lead platform teams focused on reliability.", about)
}

func TestExperience(t *testing.T) {
	got, ok := loadFixture(t).Experience()
	require.True(t, ok)

	expected := []models.ExperienceEntry{
		{
			Title:          "Staff Software Engineer",
			Company:        "Acme Corp",
			EmploymentType: "Full-time",
			Duration:       "Jan 2020 - Present · 4 yrs",
			StartDate:      "Jan 2020",
			EndDate:        "Present",
			Tenure:         "4 yrs",
			Location:       "Berlin, Germany · Hybrid",
			Description:    "Led the migration of the billing platform to event sourcing.",
		},
		{
			Title:     "Software Engineer",
			Company:   "Globex",
			Duration:  "2010 - 2014",
			StartDate: "2010",
			EndDate:   "2014",
		},
		{
			Title:     "Engineering Manager",
			Company:   "Initech",
			Duration:  "Mar 2008 - Dec 2009 · 1 yr 10 mos",
			StartDate: "Mar 2008",
			EndDate:   "Dec 2009",
			Tenure:    "1 yr 10 mos",
		},
		{
			Title:          "Senior Developer",
			Company:        "Initech",
			EmploymentType: "Contract",
			Duration:       "2004 - 2008",
			StartDate:      "2004",
			EndDate:        "2008",
		},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("experience mismatch (-want +got):\n%s", diff)
	}
}

func TestEducationAndCertifications(t *testing.T) {
	page := loadFixture(t)

	education, ok := page.Education()
	require.True(t, ok)
	expectedEducation := []models.EducationEntry{
		{
			School:       "Technical University of Munich",
			Degree:       "Master of Science - MS",
			FieldOfStudy: "Computer Science",
			Duration:     "2008 - 2010",
			StartYear:    "2008",
			EndYear:      "2010",
			Grade:        "1.3",
		},
		{
			School:    "University of Vienna",
			Duration:  "Sep 2004 - Jun 2008",
			StartYear: "2004",
			EndYear:   "2008",
		},
	}
	if diff := cmp.Diff(expectedEducation, education); diff != "" {
		t.Errorf("education mismatch (-want +got):\n%s", diff)
	}

	certs, ok := page.Certifications()
	require.True(t, ok)
	expectedCerts := []models.CertificationEntry{
		{Name: "Certified Kubernetes Administrator", Issuer: "The Linux Foundation", Date: "Jan 2021", Expires: "Jan 2024"},
	}
	if diff := cmp.Diff(expectedCerts, certs); diff != "" {
		t.Errorf("certifications mismatch (-want +got):\n%s", diff)
	}
}

func TestListSections(t *testing.T) {
	page := loadFixture(t)

	skills, ok := page.Skills()
	require.True(t, ok)
	require.Equal(t, []string{"Go", "Kubernetes"}, skills)

	languages, ok := page.Languages()
	require.True(t, ok)
	require.Equal(t, []string{"English", "German"}, languages)

	projects, ok := page.Projects()
	require.True(t, ok)
	require.Equal(t, []models.ProjectEntry{{
		Name:        "Open Telemetry Exporter",
		Dates:       "Jun 2021 - Present",
		Description: "An exporter that ships traces to the internal analytics pipeline.",
	}}, projects)

	volunteering, ok := page.Volunteering()
	require.True(t, ok)
	require.Equal(t, []models.VolunteerEntry{{
		Role:         "Mentor",
		Organization: "Code Club",
		Cause:        "Education",
		Dates:        "Jan 2018 - Present · 6 yrs",
		Description:  "Weekly sessions teaching children to build small games in Scratch.",
	}}, volunteering)

	honors, ok := page.Honors()
	require.True(t, ok)
	require.Equal(t, []models.HonorEntry{{
		Title:       "Engineer of the Year",
		Issuer:      "Acme Corp",
		Date:        "Dec 2022",
		Description: "Recognised for leading the zero-downtime datacenter migration.",
	}}, honors)
}

func TestSectionFoundByHeadingWithoutAnchor(t *testing.T) {
	page, err := Parse(`<html><body><main>
		<section><h2>Experience</h2>
			<ul><li><h3>Founder</h3><p>Startup Inc · Self-employed</p><p>Feb 2019 - Present · 5 yrs</p></li></ul>
		</section>
	</main></body></html>`)
	require.NoError(t, err)

	got, ok := page.Experience()
	require.True(t, ok)
	require.Equal(t, []models.ExperienceEntry{{
		Title:          "Founder",
		Company:        "Startup Inc",
		EmploymentType: "Self-employed",
		Duration:       "Feb 2019 - Present · 5 yrs",
		StartDate:      "Feb 2019",
		EndDate:        "Present",
		Tenure:         "5 yrs",
	}}, got)
}

func TestExperienceDateRangeSplitAcrossElements(t *testing.T) {
	page, err := Parse(`<html><body><main>
		<section><h2>Experience</h2>
			<ul><li>
				<h3>Staff Engineer</h3>
				<h4>Acme Corp</h4>
				<p><span class="date-range"><time>Jan 2020</time> - Present <span>4 years</span></span></p>
				<p>Berlin, Germany</p>
			</li></ul>
		</section>
	</main></body></html>`)
	require.NoError(t, err)

	got, ok := page.Experience()
	require.True(t, ok)
	require.Equal(t, []models.ExperienceEntry{{
		Title:     "Staff Engineer",
		Company:   "Acme Corp",
		Duration:  "Jan 2020 - Present 4 years",
		StartDate: "Jan 2020",
		EndDate:   "Present",
		Tenure:    "4 years",
		Location:  "Berlin, Germany",
	}}, got)
}

func TestExtractAllRecordsGapsWithoutFailing(t *testing.T) {
	page, err := Parse(`<html><body><main><h1>Only Name</h1></main></body></html>`)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	fields := ExtractAll(page, logrus.NewEntry(logger))
	require.Equal(t, "Only Name", fields.Name)
	require.Empty(t, fields.Headline)
	require.Empty(t, fields.Experience)
	require.Empty(t, fields.Skills)
	require.Contains(t, fields.Missing, "headline")
	require.Contains(t, fields.Missing, "experience")
	require.NotContains(t, fields.Missing, "name")
	require.Contains(t, buf.String(), "field=experience")
}

func TestExtractAllFullProfileHasNoCoreGaps(t *testing.T) {
	fields := ExtractAll(loadFixture(t), nil)
	require.Empty(t, fields.Missing)
	require.Len(t, fields.Experience, 4)
}
