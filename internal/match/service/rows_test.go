package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/match/model"
	"match-service/internal/reference"
)

func simpleColumns(qty, brand, part int) Columns {
	return Columns{
		Header:   model.NoHeader,
		Quantity: model.SimpleColumn(qty),
		Brand:    model.SimpleColumn(brand),
		Part:     model.SimpleColumn(part),
	}
}

func TestMatchRows_Latch(t *testing.T) {
	tbl := table([]string{"a", "b", "c"},
		[]string{"x", "y", "z"},
		[]string{"1", "Acme", "AB123"},
		[]string{"n/a", "Unknown", "zz"},
	)

	recs, err := MatchRows(tbl, simpleColumns(0, 1, 2), testRefs())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, model.MatchRecord{
		Quantity: 1, BrandID: "b1", BrandName: "Acme", PartNumberID: "p1", PartNumber: "AB123",
	}, recs[0])
	// после первой строки с данными пропусков больше нет
	assert.Equal(t, "Unknown", recs[1].BrandName)
}

func TestMatchRows_LatchFlipsOnReferenceToken(t *testing.T) {
	tbl := table([]string{"a", "b", "c"},
		[]string{"note", "Acme", "x"},
		[]string{"1", "Globex", "CD456"},
	)

	recs, err := MatchRows(tbl, simpleColumns(0, 1, 2), testRefs())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Acme", recs[0].BrandName)
	assert.Equal(t, "b1", recs[0].BrandID)
	assert.Empty(t, recs[0].PartNumberID)
}

func TestMatchRows_Combined(t *testing.T) {
	a := model.PatternColumn(0, "#", model.BrandThenPart)
	cols := Columns{Header: model.NoHeader, Brand: a, Part: a, Quantity: model.SimpleColumn(1)}
	tbl := table([]string{"a", "b"}, []string{"Acme#AB123", "-5"})

	recs, err := MatchRows(tbl, cols, testRefs())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.MatchRecord{
		Quantity: 5, BrandID: "b1", BrandName: "Acme", PartNumberID: "p1", PartNumber: "AB123",
	}, recs[0])
}

func TestMatchRows_SuggestedForwardFill(t *testing.T) {
	cols := simpleColumns(2, 0, 1)
	cols.SuggestedQuantity = model.SimpleColumn(2)
	tbl := table([]string{"a", "b", "c"},
		[]string{"Acme", "AB123", "10"},
		[]string{"Globex", "CD456", ""},
	)

	recs, err := MatchRows(tbl, cols, testRefs())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 10, recs[0].SuggestedQuantity)
	assert.Equal(t, 0, recs[1].Quantity)
	assert.Equal(t, 10, recs[1].SuggestedQuantity)
}

func TestMatchRows_BrandParenthesis(t *testing.T) {
	tbl := table([]string{"a", "b", "c"},
		[]string{"1", "Acme)", "AB123"},
		[]string{"2", "Acme (EU)", "CD456"},
	)

	recs, err := MatchRows(tbl, simpleColumns(0, 1, 2), testRefs())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Acme", recs[0].BrandName)
	assert.Equal(t, "b1", recs[0].BrandID)
	assert.Equal(t, "Acme (EU)", recs[1].BrandName)
}

func TestMatchRows_DropsEmptyRecords(t *testing.T) {
	cols := Columns{Header: model.NoHeader, Quantity: model.SimpleColumn(0)}
	tbl := table([]string{"a"}, []string{"5"}, []string{"0"})

	recs, err := MatchRows(tbl, cols, testRefs())
	require.NoError(t, err)
	assert.Equal(t, []model.MatchRecord{{Quantity: 5}}, recs)
}

func TestMatchRows_HugeQuantityStaysPositive(t *testing.T) {
	tbl := table([]string{"a", "b", "c"}, []string{"99999999999999999999", "Acme", "AB123"})

	recs, err := MatchRows(tbl, simpleColumns(0, 1, 2), testRefs())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, math.MaxInt64, recs[0].Quantity)
}

func TestMatchRows_IndexInconsistent(t *testing.T) {
	refs := reference.New(reference.Snapshot{BrandNames: []string{"acme"}}, reference.DefaultKeywords())
	tbl := table([]string{"a", "b"}, []string{"1", "Acme"})

	_, err := MatchRows(tbl, Columns{Header: model.NoHeader, Brand: model.SimpleColumn(1)}, refs)
	assert.ErrorIs(t, err, ErrIndexInconsistent)
}
