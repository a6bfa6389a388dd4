package extractor

// Selector fallbacks for the profile top card, most specific first.
// These track the site's markup and will need updating when it changes.
var (
	nameSelectors = []string{
		"h1.text-heading-xlarge",
		"h1.top-card-layout__title",
		".pv-text-details__left-panel h1",
		"main h1",
		"h1",
	}

	headlineSelectors = []string{
		".text-body-medium.break-words",
		".top-card-layout__headline",
		"h2.top-card-layout__headline",
		".pv-text-details__left-panel .text-body-medium",
	}

	locationSelectors = []string{
		"span.text-body-small.inline.t-black--light.break-words",
		"span.text-body-small.inline.break-words",
		".top-card__subline-item",
		".top-card-layout__first-subline .not-first-middot span",
		".pv-text-details__left-panel .text-body-small",
	}

	aboutFallbackSelectors = []string{
		".pv-about__summary-text",
		".pv-shared-text-with-see-more span[aria-hidden='true']",
		"section.summary .core-section-container__content",
		"[data-section='summary'] p",
	}

	imageSelectors = []string{
		"img.pv-top-card-profile-picture__image",
		"img.pv-top-card-profile-picture__image--show",
		".pv-top-card__photo img",
		"img.top-card__profile-image",
		".top-card-layout__entity-image",
		"img.profile-photo-edit__preview",
	}

	skillFallbackSelectors = []string{
		".pv-skill-category-entity__name-text",
		".skill-category-entity__name",
	}
)

type sectionSpec struct {
	ids     []string
	headers []string
}

var (
	aboutSection = sectionSpec{
		ids:     []string{"about"},
		headers: []string{"about", "summary"},
	}
	experienceSection = sectionSpec{
		ids:     []string{"experience"},
		headers: []string{"experience"},
	}
	educationSection = sectionSpec{
		ids:     []string{"education"},
		headers: []string{"education"},
	}
	certificationsSection = sectionSpec{
		ids:     []string{"licenses_and_certifications", "certifications"},
		headers: []string{"licenses & certifications", "licenses and certifications", "certifications"},
	}
	skillsSection = sectionSpec{
		ids:     []string{"skills"},
		headers: []string{"skills", "skills & endorsements", "top skills"},
	}
	languagesSection = sectionSpec{
		ids:     []string{"languages"},
		headers: []string{"languages"},
	}
	projectsSection = sectionSpec{
		ids:     []string{"projects"},
		headers: []string{"projects"},
	}
	volunteeringSection = sectionSpec{
		ids:     []string{"volunteering_experience", "volunteer_experience", "volunteering"},
		headers: []string{"volunteering", "volunteer experience", "volunteering experience"},
	}
	honorsSection = sectionSpec{
		ids:     []string{"honors_and_awards", "honors"},
		headers: []string{"honors & awards", "honors and awards", "honors"},
	}
)

var employmentTypes = []string{
	"Full-time", "Part-time", "Contract", "Freelance", "Internship",
	"Self-employed", "Seasonal", "Apprenticeship", "Temporary",
}

var degreeKeywords = []string{
	"bachelor", "master", "phd", "ph.d", "doctor", "associate", "diploma",
	"certificate", "b.sc", "m.sc", "bsc", "msc", "mba", "b.a", "m.a", "bs", "ms",
}
