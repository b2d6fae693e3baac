package goquery

import "github.com/fwojciec/diraudit"

// VitalsSelectors covers the known vitals.com profile layouts.
var VitalsSelectors = ProfileSelectors{
	Name: []string{
		`h1[data-qa="doctor-name"]`,
		`h1.doctor-name`,
		`.provider-name h1`,
		`h1`,
		`.doctor-profile-name`,
	},
	Phone: []string{
		`[data-qa="phone-number"]`,
		`.phone-number`,
		`.contact-phone`,
		`.provider-phone`,
	},
	Address: []string{
		`[data-qa="practice-address"]`,
		`.practice-address`,
		`.provider-address`,
		`.office-address`,
		`.address`,
	},
	Website: []string{
		`a[data-qa="website-link"]`,
		`a.website-link`,
		`a[href*="http"]:contains("website")`,
		`.provider-website a`,
	},
	Specialty: []string{
		`[data-qa="specialty"]`,
		`.specialty`,
		`.provider-specialty`,
		`.doctor-specialty`,
		`.medical-specialty`,
	},
	Photo: []string{
		`.doctor-photo img`,
		`.provider-photo img`,
		`.profile-photo img`,
		`img[alt*="Dr."]`,
		`img[alt*="doctor"]`,
	},
}

// NewVitalsExtractor returns the vitals.com extractor.
func NewVitalsExtractor(directoryID string) diraudit.ProfileExtractor {
	return NewSelectorExtractor(directoryID, VitalsSelectors)
}
