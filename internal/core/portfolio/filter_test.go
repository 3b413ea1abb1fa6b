package portfolio

import (
	"testing"

	"portfolio-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestFilter_CaseInsensitiveAddress(t *testing.T) {
	list := []domain.Property{
		property(2, "12 Oak Lane"),
		property(1, "3 Elm Road"),
		property(3, "OAKWOOD House"),
	}

	lower := Filter(list, "oak")
	upper := Filter(list, "OAK")

	assert.Equal(t, []int64{2, 3}, ids(lower))
	assert.Equal(t, lower, upper)
}

func TestFilter_EmptyQueryReturnsAllSortedByID(t *testing.T) {
	list := []domain.Property{
		property(5, "e"),
		property(1, "a"),
		property(3, "c"),
	}

	assert.Equal(t, []int64{1, 3, 5}, ids(Filter(list, "")))
}

func TestFilter_ResultIsOrderedSubset(t *testing.T) {
	list := []domain.Property{
		property(9, "9 Mill Street", withType(domain.PropertyTypeFlat)),
		property(4, "4 Mill Street"),
		property(7, "7 Station Road", withType(domain.PropertyTypeFlat)),
		property(2, "2 Mill Street", withType(domain.PropertyTypeFlat)),
	}

	got := Filter(list, "flat")

	assert.Equal(t, []int64{2, 7, 9}, ids(got))
	for _, p := range got {
		assert.Contains(t, list, p)
	}
}

func TestFilter_MatchesEveryTextField(t *testing.T) {
	list := []domain.Property{
		property(1, "1 High Street", withRooms(4, 2.5)),
		property(2, "2 High Street", withAgents("Savills", "Knight Frank")),
		property(3, "3 High Street", func(p *domain.Property) { p.Occupied = domain.OccupiedYes }),
	}

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "bedrooms", query: "4", want: []int64{1}},
		{name: "bathrooms shortest decimal", query: "2.5", want: []int64{1}},
		{name: "estate agent", query: "savills", want: []int64{2}},
		{name: "selling agent", query: "KNIGHT", want: []int64{2}},
		{name: "occupied", query: "yes", want: []int64{3}},
		{name: "type", query: "house", want: []int64{1, 2, 3}},
		{name: "no match", query: "castle", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(list, tt.query)))
		})
	}
}

func TestFilter_NullNumbersNeverMatch(t *testing.T) {
	list := []domain.Property{
		property(1, "Plot A"),
		property(2, "Plot B", withRooms(0, 1)),
	}

	assert.NotPanics(t, func() {
		assert.Equal(t, []int64{2}, ids(Filter(list, "0")))
	})
}

func TestFilter_WholeNumberBathroomsHaveNoFraction(t *testing.T) {
	list := []domain.Property{property(1, "x", withRooms(3, 2))}

	assert.Len(t, Filter(list, "2"), 1)
	assert.Empty(t, Filter(list, "2.0"))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	list := []domain.Property{property(3, "c"), property(1, "a")}

	_ = Filter(list, "")

	assert.Equal(t, []int64{3, 1}, ids(list))
}
