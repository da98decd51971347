package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"match-service/internal/match/model"
	"match-service/internal/reference"
)

func TestKeywordColumns_Labels(t *testing.T) {
	tbl := table([]string{"Brand", "Part Number", "Qty"}, []string{"Foo", "Z1", "3"})

	got := KeywordColumns(tbl, KeywordResult{Header: model.NoHeader}, reference.DefaultKeywords())
	assert.True(t, got.Found)
	assert.Equal(t, model.Header{Status: true, Row: model.LabelRow}, got.Header)
	assert.Equal(t, model.SimpleColumn(0), got.Brand)
	assert.Equal(t, model.SimpleColumn(1), got.Part)
	assert.Equal(t, model.SimpleColumn(2), got.SuggestedQuantity)
}

func TestKeywordColumns_KeepsKnown(t *testing.T) {
	tbl := table([]string{"Brand", "Part Number", "Qty"}, []string{"Foo", "Z1", "3"})
	known := KeywordResult{Header: model.NoHeader, Brand: model.SimpleColumn(5)}

	got := KeywordColumns(tbl, known, reference.DefaultKeywords())
	assert.Equal(t, model.SimpleColumn(5), got.Brand)
	assert.Equal(t, model.SimpleColumn(1), got.Part)
}

func TestKeywordColumns_Rows(t *testing.T) {
	tbl := table([]string{"0", "1", "2"},
		[]string{"x", "y", "z"},
		[]string{"Manufacturer Name:", "Part No. (MPN)", "Order Qty"},
		[]string{"Foo", "Z1", "5"},
	)

	got := KeywordColumns(tbl, KeywordResult{Header: model.NoHeader}, reference.DefaultKeywords())
	assert.Equal(t, model.Header{Status: true, Row: 1}, got.Header)
	assert.Equal(t, model.SimpleColumn(0), got.Brand)
	assert.Equal(t, model.SimpleColumn(1), got.Part)
	assert.Equal(t, model.SimpleColumn(2), got.SuggestedQuantity)
}

func TestKeywordColumns_ClaimedColumnsSkipped(t *testing.T) {
	tbl := table([]string{"0", "1", "2"}, []string{"Brand Qty", "Brand", "Part"})

	got := KeywordColumns(tbl, KeywordResult{Header: model.NoHeader}, reference.DefaultKeywords())
	assert.Equal(t, model.SimpleColumn(0), got.SuggestedQuantity)
	assert.Equal(t, model.SimpleColumn(1), got.Brand)
	assert.Equal(t, model.SimpleColumn(2), got.Part)
}

func TestKeywordColumns_NothingFound(t *testing.T) {
	tbl := table([]string{"a", "b"}, []string{"foo", "bar"})
	known := KeywordResult{Header: model.NoHeader, Part: model.SimpleColumn(1)}

	got := KeywordColumns(tbl, known, reference.DefaultKeywords())
	assert.False(t, got.Found)
	assert.Equal(t, known, got)
}

func TestKeywordColumns_NothingFoundResetsHeader(t *testing.T) {
	tbl := table([]string{"Note", "Order Qty"}, []string{"hello", "world"})
	known := KeywordResult{
		Header:            model.Header{Status: true, Row: model.LabelRow},
		SuggestedQuantity: model.SimpleColumn(1),
	}

	got := KeywordColumns(tbl, known, reference.DefaultKeywords())
	assert.False(t, got.Found)
	assert.Equal(t, model.NoHeader, got.Header)
	assert.Equal(t, model.SimpleColumn(1), got.SuggestedQuantity)
}
