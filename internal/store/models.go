package store

import (
	"errors"
	"strings"

	"citizensera.com/sera/internal/catalog"
)

var ErrNotFound = errors.New("not found")

type SortOrder string

const (
	SortByMatch    SortOrder = "match"
	SortByValue    SortOrder = "value"
	SortByDeadline SortOrder = "deadline"
)

// orderClauses maps each sort order to its ORDER BY clause. position keeps
// ties in catalog order.
var orderClauses = map[SortOrder]string{
	SortByMatch:    "eligibility_match DESC, position ASC",
	SortByValue:    "COALESCE(estimated_value, 0) DESC, position ASC",
	SortByDeadline: "deadline IS NULL, deadline ASC, position ASC",
}

// BenefitFilter narrows and orders a catalog listing.
type BenefitFilter struct {
	Category catalog.Category // empty or "all" matches everything
	Query    string           // case-insensitive substring of title or description
	Sort     SortOrder        // empty sorts by match
}

func (f BenefitFilter) normalized() BenefitFilter {
	if f.Category == "" {
		f.Category = catalog.CategoryAll
	}
	f.Query = strings.ToLower(strings.TrimSpace(f.Query))
	if _, ok := orderClauses[f.Sort]; !ok {
		f.Sort = SortByMatch
	}
	return f
}

// ParseSortOrder accepts "", match, value or deadline.
func ParseSortOrder(s string) (SortOrder, bool) {
	if s == "" {
		return SortByMatch, true
	}
	o := SortOrder(strings.ToLower(s))
	_, ok := orderClauses[o]
	return o, ok
}

// TotalValue sums the estimated value of benefits, treating unknown as 0.
func TotalValue(benefits []catalog.Benefit) int {
	total := 0
	for _, b := range benefits {
		total += b.EstimatedValue
	}
	return total
}
