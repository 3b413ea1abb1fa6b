package portfolio

import (
	"testing"

	"portfolio-service/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAggregate_SumsValuations(t *testing.T) {
	list := []domain.Property{
		property(1, "a", withValuation("£250,000")),
		property(2, "b", withValuation("100,500.50")),
	}

	s := Aggregate(list)

	assert.Equal(t, 2, s.Count)
	assert.True(t, decimal.RequireFromString("350500.50").Equal(s.TotalValuation))
	assert.Equal(t, "£350,500.50", s.FormattedTotal())
}

func TestAggregate_MissingAndGarbageValuationsCountAsZero(t *testing.T) {
	list := []domain.Property{
		property(1, "a"),
		property(2, "b", withValuation("TBC")),
		property(3, "c", withValuation("£10")),
	}

	s := Aggregate(list)

	assert.Equal(t, 3, s.Count)
	assert.True(t, decimal.NewFromInt(10).Equal(s.TotalValuation))
}

func TestAggregate_NoFloatDrift(t *testing.T) {
	var list []domain.Property
	for i := int64(1); i <= 10; i++ {
		list = append(list, property(i, "x", withValuation("0.10")))
	}

	assert.Equal(t, "1", Aggregate(list).TotalValuation.String())
}

func TestBuildView_CountIgnoresQuery(t *testing.T) {
	list := []domain.Property{
		property(1, "Oak", withValuation("£100")),
		property(2, "Elm", withValuation("£200")),
		property(3, "Ash", withValuation("£300")),
	}

	all := BuildView(list, "", true)
	filtered := BuildView(list, "oak", true)

	assert.Equal(t, 3, filtered.Summary.Count)
	assert.Equal(t, all.Summary, filtered.Summary)
	assert.Equal(t, []int64{1}, ids(filtered.Rows))
	assert.True(t, filtered.Loaded)
}

func TestAggregate_HugeExponentCountsAsZero(t *testing.T) {
	list := []domain.Property{
		property(1, "a", withValuation("£100")),
		property(2, "b", withValuation("1e999999999")),
	}

	s := Aggregate(list)

	assert.True(t, decimal.NewFromInt(100).Equal(s.TotalValuation))
	assert.Equal(t, "£100.00", s.FormattedTotal())
}

func TestAggregate_TotalAboveInt64Pence(t *testing.T) {
	list := []domain.Property{
		property(1, "a", withValuation("£100,000,000,000,000,000")),
		property(2, "b", withValuation("£0.50")),
	}

	assert.Equal(t, "£100,000,000,000,000,000.50", Aggregate(list).FormattedTotal())
}
