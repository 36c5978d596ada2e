package cows

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func herd() []Cow {
	return []Cow{
		{ID: "1", EarTag: "1234", Pen: "A1", Status: StatusActive},
		{ID: "2", EarTag: "5678", Pen: "B1", Status: StatusInTreatment},
		{ID: "3", EarTag: "AB-12", Pen: "A1", Status: StatusDeceased},
		{ID: "4", EarTag: "9123", Pen: "C2", Status: StatusInTreatment},
	}
}

func ids(cows []Cow) []string {
	out := make([]string, 0, len(cows))
	for _, c := range cows {
		out = append(out, c.ID)
	}
	return out
}

func TestApplyFilters_DefaultsKeepEverything(t *testing.T) {
	assert.Equal(t, herd(), ApplyFilters(herd(), DefaultFilters()))
}

func TestApplyFilters(t *testing.T) {
	cases := []struct {
		name string
		f    Filters
		want []string
	}{
		{"status", Filters{StatusFilter: "In Treatment"}, []string{"2", "4"}},
		{"search substring", Filters{SearchQuery: "12", StatusFilter: StatusAll}, []string{"1", "3", "4"}},
		{"search case insensitive", Filters{SearchQuery: "ab", StatusFilter: StatusAll}, []string{"3"}},
		{"pen exact", Filters{StatusFilter: StatusAll, PenFilter: "A1"}, []string{"1", "3"}},
		{"pen is not substring", Filters{StatusFilter: StatusAll, PenFilter: "A"}, []string{}},
		{"and combination", Filters{SearchQuery: "12", StatusFilter: "Active", PenFilter: "A1"}, []string{"1"}},
		{"no match", Filters{SearchQuery: "zzz", StatusFilter: StatusAll}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(ApplyFilters(herd(), tc.f)))
		})
	}
}

func TestApplyFilters_Idempotent(t *testing.T) {
	f := Filters{SearchQuery: "1", StatusFilter: StatusAll, PenFilter: "A1"}
	once := ApplyFilters(herd(), f)
	assert.Equal(t, once, ApplyFilters(once, f))
}

func TestFilters_Validate(t *testing.T) {
	assert.NoError(t, DefaultFilters().Validate())
	assert.NoError(t, Filters{StatusFilter: "Deceased"}.Validate())

	err := Filters{StatusFilter: "Sold"}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidInput))

	err = Filters{}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidInput), "status vacío no es all")
}
