package store

import (
	"context"
	"errors"
	"testing"

	"citizensera.com/sera/internal/catalog"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.LoadBenefits(context.Background(), catalog.Benefits()); err != nil {
		t.Fatalf("LoadBenefits: %v", err)
	}
	return s
}

func ids(benefits []catalog.Benefit) []string {
	out := make([]string, len(benefits))
	for i, b := range benefits {
		out[i] = b.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListBenefits_DefaultSortsByMatch(t *testing.T) {
	s := newTestStore(t)
	got, err := s.ListBenefits(context.Background(), BenefitFilter{})
	if err != nil {
		t.Fatalf("ListBenefits: %v", err)
	}
	if len(got) != len(catalog.Benefits()) {
		t.Fatalf("got %d benefits, want %d", len(got), len(catalog.Benefits()))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].EligibilityMatch < got[i].EligibilityMatch {
			t.Errorf("not sorted by match: %s (%d) before %s (%d)",
				got[i-1].ID, got[i-1].EligibilityMatch, got[i].ID, got[i].EligibilityMatch)
		}
	}
}

func TestListBenefits_SortByValue(t *testing.T) {
	s := newTestStore(t)
	got, err := s.ListBenefits(context.Background(), BenefitFilter{Sort: SortByValue})
	if err != nil {
		t.Fatalf("ListBenefits: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].EstimatedValue < got[i].EstimatedValue {
			t.Errorf("not sorted by value: %s before %s", got[i-1].ID, got[i].ID)
		}
	}
	if got[0].ID != "first-home-buyer-grant" {
		t.Errorf("highest value = %s, want first-home-buyer-grant", got[0].ID)
	}
}

func TestListBenefits_SortByDeadlinePutsOpenEndedLast(t *testing.T) {
	s := newTestStore(t)
	got, err := s.ListBenefits(context.Background(), BenefitFilter{Sort: SortByDeadline})
	if err != nil {
		t.Fatalf("ListBenefits: %v", err)
	}
	seenOpen := false
	for i, b := range got {
		if b.Deadline == "" {
			seenOpen = true
			continue
		}
		if seenOpen {
			t.Fatalf("dated benefit %s listed after an open-ended one", b.ID)
		}
		if i > 0 && got[i-1].Deadline > b.Deadline {
			t.Errorf("deadline order: %s (%s) before %s (%s)", got[i-1].ID, got[i-1].Deadline, b.ID, b.Deadline)
		}
	}
	if got[0].ID != "first-home-buyer-grant" {
		t.Errorf("earliest deadline = %s, want first-home-buyer-grant", got[0].ID)
	}
}

func TestListBenefits_CategoryFilter(t *testing.T) {
	s := newTestStore(t)
	got, err := s.ListBenefits(context.Background(), BenefitFilter{Category: catalog.CategoryHousing})
	if err != nil {
		t.Fatalf("ListBenefits: %v", err)
	}
	if !equalIDs(ids(got), []string{"first-home-buyer-grant"}) {
		t.Errorf("housing = %v", ids(got))
	}

	got, err = s.ListBenefits(context.Background(), BenefitFilter{Category: catalog.CategoryEducation})
	if err != nil {
		t.Fatalf("ListBenefits: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("education should be empty, got %v", ids(got))
	}
	if got == nil {
		t.Error("empty result should be a non-nil slice")
	}
}

func TestListBenefits_QueryIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		query string
		want  []string
	}{
		{"HEALTHCARE", []string{"healthcare-subsidy"}},
		{"  childcare ", []string{"childcare-benefit"}},
		{"no such benefit", nil},
	}
	for _, tt := range tests {
		got, err := s.ListBenefits(context.Background(), BenefitFilter{Query: tt.query})
		if err != nil {
			t.Fatalf("ListBenefits(%q): %v", tt.query, err)
		}
		if !equalIDs(ids(got), tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
			t.Errorf("query %q = %v, want %v", tt.query, ids(got), tt.want)
		}
	}
}

func TestGetBenefit(t *testing.T) {
	s := newTestStore(t)
	b, err := s.GetBenefit(context.Background(), "healthcare-subsidy")
	if err != nil {
		t.Fatalf("GetBenefit: %v", err)
	}
	want, _ := catalog.LookupBenefit("healthcare-subsidy")
	if b.Title != want.Title || b.EstimatedValue != want.EstimatedValue || b.Deadline != want.Deadline {
		t.Errorf("GetBenefit = %+v, want %+v", b, want)
	}
	if len(b.Documents) != len(want.Documents) || len(b.Requirements) != len(want.Requirements) {
		t.Errorf("lists did not round-trip: %+v", b)
	}

	_, err = s.GetBenefit(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBenefit(missing) err = %v, want ErrNotFound", err)
	}
}

func TestLoadBenefitsReplacesContents(t *testing.T) {
	s := newTestStore(t)
	one, _ := catalog.LookupBenefit("job-training-allowance")
	if err := s.LoadBenefits(context.Background(), []catalog.Benefit{one}); err != nil {
		t.Fatalf("LoadBenefits: %v", err)
	}
	got, err := s.ListBenefits(context.Background(), BenefitFilter{})
	if err != nil {
		t.Fatalf("ListBenefits: %v", err)
	}
	if !equalIDs(ids(got), []string{"job-training-allowance"}) {
		t.Errorf("after reload = %v", ids(got))
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in   string
		want SortOrder
		ok   bool
	}{
		{"", SortByMatch, true},
		{"value", SortByValue, true},
		{"Deadline", SortByDeadline, true},
		{"alphabetical", "alphabetical", false},
	}
	for _, tt := range tests {
		got, ok := ParseSortOrder(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseSortOrder(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestTotalValue(t *testing.T) {
	benefits := []catalog.Benefit{{EstimatedValue: 100}, {}, {EstimatedValue: 250}}
	if got := TotalValue(benefits); got != 350 {
		t.Errorf("TotalValue = %d, want 350", got)
	}
}
