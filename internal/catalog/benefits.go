// Package catalog holds the immutable reference tables the service is built
// on: the benefit catalog, the assistant's reply templates and the rights
// reference data. Everything here is loaded once and never mutated; callers
// receive copies.
package catalog

import (
	"slices"
	"time"
)

type Category string

const (
	CategoryAll         Category = "all"
	CategoryHealthcare  Category = "healthcare"
	CategoryHousing     Category = "housing"
	CategoryEmployment  Category = "employment"
	CategoryEducation   Category = "education"
	CategoryWelfare     Category = "welfare"
	CategoryImmigration Category = "immigration"
)

// Categories lists every benefit category in display order, including "all".
var Categories = []Category{
	CategoryAll,
	CategoryHealthcare,
	CategoryHousing,
	CategoryEmployment,
	CategoryEducation,
	CategoryWelfare,
	CategoryImmigration,
}

// ValidCategory reports whether c is a known category (or "all").
func ValidCategory(c Category) bool {
	return slices.Contains(Categories, c)
}

const deadlineLayout = "2006-01-02"

// Benefit is one entry of the entitlement catalog.
type Benefit struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         Category `json:"category"`
	EligibilityMatch int      `json:"eligibility_match"`         // percent
	EstimatedValue   int      `json:"estimated_value,omitempty"` // AUD, 0 when unknown
	Deadline         string   `json:"deadline,omitempty"`        // YYYY-MM-DD, empty when open-ended
	Requirements     []string `json:"requirements"`
	Documents        []string `json:"documents"`
}

// DeadlineTime parses Deadline. ok is false for open-ended benefits.
func (b Benefit) DeadlineTime() (t time.Time, ok bool) {
	if b.Deadline == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(deadlineLayout, b.Deadline)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (b Benefit) clone() Benefit {
	b.Requirements = slices.Clone(b.Requirements)
	b.Documents = slices.Clone(b.Documents)
	return b
}

var benefits = []Benefit{
	{
		ID:               "healthcare-subsidy",
		Title:            "Healthcare Subsidy",
		Description:      "Subsidised healthcare for low-income residents - protected under your economic rights from UN treaties Australia ratified",
		Category:         CategoryHealthcare,
		EligibilityMatch: 95,
		EstimatedValue:   2800,
		Deadline:         "2024-12-31",
		Requirements:     []string{"Residency proof", "Income statement", "Medicare card"},
		Documents:        []string{"Bank statements (3 months)", "Tax return", "Rent receipt"},
	},
	{
		ID:               "first-home-buyer-grant",
		Title:            "First Home Buyer Grant",
		Description:      "Financial assistance for first-time home buyers",
		Category:         CategoryHousing,
		EligibilityMatch: 88,
		EstimatedValue:   15000,
		Deadline:         "2024-06-30",
		Requirements:     []string{"First-time buyer", "Property value under $600k", "Australian citizen/PR"},
		Documents:        []string{"Property contract", "ID documents", "Financial statements"},
	},
	{
		ID:               "job-training-allowance",
		Title:            "Job Training Allowance",
		Description:      "Support for skills development and retraining",
		Category:         CategoryEmployment,
		EligibilityMatch: 92,
		EstimatedValue:   1200,
		Requirements:     []string{"Unemployed for 6+ months", "Enrolled in approved course"},
		Documents:        []string{"Unemployment certificate", "Course enrollment"},
	},
	{
		ID:               "childcare-benefit",
		Title:            "Childcare Benefit",
		Description:      "Subsidised childcare for working families",
		Category:         CategoryWelfare,
		EligibilityMatch: 75,
		EstimatedValue:   4500,
		Requirements:     []string{"Working parent", "Child under 12", "Income threshold"},
		Documents:        []string{"Work certificate", "Birth certificate", "Income proof"},
	},
	{
		ID:               "pr-renewal-fee-waiver",
		Title:            "PR Renewal Fee Waiver",
		Description:      "Fee waiver for permanent residency renewal",
		Category:         CategoryImmigration,
		EligibilityMatch: 98,
		EstimatedValue:   405,
		Deadline:         "2024-09-15",
		Requirements:     []string{"Financial hardship", "Valid PR", "Australian tax resident"},
		Documents:        []string{"PR card", "Tax documents", "Hardship evidence"},
	},
}

// Benefits returns a copy of the full catalog in declaration order.
func Benefits() []Benefit {
	out := make([]Benefit, len(benefits))
	for i, b := range benefits {
		out[i] = b.clone()
	}
	return out
}

// LookupBenefit returns the catalog entry with the given id.
func LookupBenefit(id string) (Benefit, bool) {
	for _, b := range benefits {
		if b.ID == id {
			return b.clone(), true
		}
	}
	return Benefit{}, false
}
