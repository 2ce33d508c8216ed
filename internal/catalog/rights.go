package catalog

import "slices"

type ConstitutionalRight struct {
	Section     string `json:"section"`
	Right       string `json:"right"`
	Description string `json:"description"`
}

type ImpliedRight struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Established string `json:"established"`
}

type Treaty struct {
	Name        string `json:"name"`
	Year        string `json:"year"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type Statute struct {
	Name        string `json:"name"`
	Year        string `json:"year"`
	Focus       string `json:"focus"`
	Description string `json:"description"`
}

type JurisdictionRights struct {
	Jurisdiction string `json:"jurisdiction"`
	HasRightsAct bool   `json:"has_rights_act"`
	Year         string `json:"year,omitempty"`
	Name         string `json:"name,omitempty"`
}

// RightsReference is the static rights data behind the rights view.
type RightsReference struct {
	Constitutional []ConstitutionalRight `json:"constitutional"`
	Implied        []ImpliedRight        `json:"implied"`
	Treaties       []Treaty              `json:"treaties"`
	Statutes       []Statute             `json:"statutes"`
	Jurisdictions  []JurisdictionRights  `json:"jurisdictions"`
}

var rights = RightsReference{
	Constitutional: []ConstitutionalRight{
		{Section: "41", Right: "Right to Vote", Description: "Right to vote in federal elections for those who could vote in state elections"},
		{Section: "51(xxxi)", Right: "Property Rights", Description: "Property can only be acquired by the Commonwealth on just terms"},
		{Section: "80", Right: "Trial by Jury", Description: "Trial by jury for indictable federal offenses"},
		{Section: "116", Right: "Religious Freedom", Description: "No law establishing religion or prohibiting free exercise of religion"},
		{Section: "117", Right: "Non-Discrimination", Description: "No discrimination based on residence in another state"},
	},
	Implied: []ImpliedRight{
		{Name: "Political Communication", Description: "Freedom to communicate on political matters", Established: "High Court cases 1990s"},
		{Name: "Voting Rights", Description: "Right to vote in genuinely democratic elections", Established: "Various cases"},
	},
	Treaties: []Treaty{
		{Name: "Universal Declaration of Human Rights (UDHR)", Year: "1948", Status: "ratified", Description: "30 articles of fundamental human rights"},
		{Name: "International Covenant on Civil and Political Rights", Year: "1980", Status: "ratified", Description: "Core civil and political rights treaty"},
		{Name: "International Covenant on Economic, Social and Cultural Rights", Year: "1975", Status: "ratified", Description: "Economic, social and cultural rights"},
		{Name: "Convention on Elimination of Racial Discrimination", Year: "1975", Status: "ratified", Description: "Anti-racial discrimination treaty"},
		{Name: "Convention on Elimination of Discrimination Against Women", Year: "1983", Status: "ratified", Description: "Women's rights treaty"},
		{Name: "Convention Against Torture", Year: "1989", Status: "ratified", Description: "Prohibition of torture and cruel treatment"},
		{Name: "Convention on the Rights of the Child", Year: "1990", Status: "ratified", Description: "Children's rights protection"},
	},
	Statutes: []Statute{
		{Name: "Sex Discrimination Act", Year: "1984", Focus: "Gender equality", Description: "Prohibits discrimination based on sex, marital status, pregnancy"},
		{Name: "Racial Discrimination Act", Year: "1975", Focus: "Racial equality", Description: "Prohibits discrimination based on race, color, national origin"},
		{Name: "Disability Discrimination Act", Year: "1992", Focus: "Disability rights", Description: "Prohibits discrimination against people with disabilities"},
		{Name: "Age Discrimination Act", Year: "2004", Focus: "Age equality", Description: "Prohibits discrimination based on age"},
	},
	Jurisdictions: []JurisdictionRights{
		{Jurisdiction: "Australian Capital Territory", HasRightsAct: true, Year: "2004", Name: "Human Rights Act 2004"},
		{Jurisdiction: "Queensland", HasRightsAct: true, Year: "2019", Name: "Human Rights Act 2019"},
		{Jurisdiction: "Victoria", HasRightsAct: true, Year: "2006", Name: "Charter of Human Rights and Responsibilities Act 2006"},
		{Jurisdiction: "Commonwealth"},
		{Jurisdiction: "New South Wales"},
		{Jurisdiction: "South Australia"},
		{Jurisdiction: "Western Australia"},
		{Jurisdiction: "Tasmania"},
		{Jurisdiction: "Northern Territory"},
	},
}

// Rights returns a copy of the rights reference tables.
func Rights() RightsReference {
	return RightsReference{
		Constitutional: slices.Clone(rights.Constitutional),
		Implied:        slices.Clone(rights.Implied),
		Treaties:       slices.Clone(rights.Treaties),
		Statutes:       slices.Clone(rights.Statutes),
		Jurisdictions:  slices.Clone(rights.Jurisdictions),
	}
}
