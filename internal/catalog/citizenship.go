package catalog

import "slices"

type NationalityCount struct {
	Nationality string  `json:"nationality"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage,omitempty"`
}

type CitizenshipYear struct {
	Year               string             `json:"year"`
	Total              int                `json:"total"`
	TopNationalities   []NationalityCount `json:"top_nationalities,omitempty"`
	TotalNationalities int                `json:"total_nationalities,omitempty"`
}

type ProcessingTimes struct {
	Average string `json:"average"`
	Current string `json:"current"`
}

// CitizenshipStatistics is the conferral data behind the citizenship view.
type CitizenshipStatistics struct {
	TotalSince1949   int                `json:"total_since_1949"`
	CurrentYear      CitizenshipYear    `json:"current_year"`
	TopNationalities []NationalityCount `json:"top_nationalities"`
	Historical       []CitizenshipYear  `json:"historical"`
	ProcessingTimes  ProcessingTimes    `json:"processing_times"`
}

var citizenship = CitizenshipStatistics{
	TotalSince1949: 6100000,
	CurrentYear:    CitizenshipYear{Year: "2023-24", Total: 192242, TotalNationalities: 200},
	TopNationalities: []NationalityCount{
		{Nationality: "India", Count: 28968, Percentage: 15.1},
		{Nationality: "New Zealand", Count: 27826, Percentage: 14.5},
		{Nationality: "United Kingdom", Count: 16503, Percentage: 8.6},
		{Nationality: "Philippines", Count: 10449, Percentage: 5.4},
		{Nationality: "China", Count: 7561, Percentage: 3.9},
		{Nationality: "Iraq", Count: 7048, Percentage: 3.7},
		{Nationality: "Vietnam", Count: 7013, Percentage: 3.6},
		{Nationality: "Afghanistan", Count: 6515, Percentage: 3.4},
		{Nationality: "Pakistan", Count: 5715, Percentage: 3.0},
		{Nationality: "South Africa", Count: 4849, Percentage: 2.5},
	},
	Historical: []CitizenshipYear{
		{
			Year:  "1949",
			Total: 2493,
			TopNationalities: []NationalityCount{
				{Nationality: "Italy", Count: 708},
				{Nationality: "Poland", Count: 597},
				{Nationality: "Greece", Count: 276},
				{Nationality: "Germany", Count: 225},
				{Nationality: "Yugoslavia", Count: 80},
			},
		},
		{
			Year:  "2023-24",
			Total: 192242,
			TopNationalities: []NationalityCount{
				{Nationality: "India", Count: 28968},
				{Nationality: "New Zealand", Count: 27826},
				{Nationality: "United Kingdom", Count: 16503},
				{Nationality: "Philippines", Count: 10449},
				{Nationality: "China", Count: 7561},
			},
		},
	},
	ProcessingTimes: ProcessingTimes{Average: "18 months", Current: "15-20 months"},
}

// Citizenship returns a copy of the citizenship statistics.
func Citizenship() CitizenshipStatistics {
	out := citizenship
	out.CurrentYear.TopNationalities = slices.Clone(citizenship.CurrentYear.TopNationalities)
	out.TopNationalities = slices.Clone(citizenship.TopNationalities)
	out.Historical = make([]CitizenshipYear, len(citizenship.Historical))
	for i, y := range citizenship.Historical {
		y.TopNationalities = slices.Clone(y.TopNationalities)
		out.Historical[i] = y
	}
	return out
}
