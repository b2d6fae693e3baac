package goquery

import "github.com/fwojciec/diraudit"

// HealthgradesSelectors covers healthgrades.com provider pages.
var HealthgradesSelectors = ProfileSelectors{
	Name: []string{
		`h1[data-qa-target="ProviderDisplayName"]`,
		`[data-qa-target="provider-name"]`,
		`h1`,
	},
	Phone: []string{
		`[data-qa-target="phone-number"]`,
		`a[href^="tel:"]`,
		`.phone-number`,
	},
	Address: []string{
		`[data-qa-target="office-address"]`,
		`address`,
		`.location-address`,
	},
	Website: []string{
		`a[data-qa-target="practice-website"]`,
		`a[href*="http"]:contains("Website")`,
	},
	Specialty: []string{
		`[data-qa-target="ProviderDisplaySpecialty"]`,
		`.provider-specialty`,
	},
	Photo: []string{
		`[data-qa-target="provider-image"] img`,
		`img[data-qa-target="provider-image"]`,
		`img[alt*="Dr."]`,
	},
}

// NewHealthgradesExtractor returns the healthgrades.com extractor.
func NewHealthgradesExtractor(directoryID string) diraudit.ProfileExtractor {
	return NewSelectorExtractor(directoryID, HealthgradesSelectors)
}
