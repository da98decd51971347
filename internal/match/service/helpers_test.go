package service

import (
	"github.com/rs/zerolog"

	"match-service/internal/match/model"
	"match-service/internal/reference"
)

func testRefs() *reference.Context {
	return reference.New(reference.Snapshot{
		BrandNames:   []string{"acme", "globex"},
		BrandAliases: []string{"initech"},
		PartNumbers:  []string{"ab123", "cd456", "xy9"},
		BrandNameToID: map[string]reference.Record{
			"acme":   {ID: "b1"},
			"globex": {ID: "b2"},
		},
		BrandAliasToID: map[string]reference.Record{"initech": {ID: "a1"}},
		PartNumberToID: map[string]reference.Record{
			"ab123": {ID: "p1"},
			"cd456": {ID: "p2"},
			"xy9":   {ID: "p3"},
		},
	}, reference.DefaultKeywords())
}

func row(cells ...string) []model.Value {
	out := make([]model.Value, len(cells))
	for i, c := range cells {
		out[i] = model.Text(c)
	}
	return out
}

func table(labels []string, rows ...[]string) *model.Table {
	t := &model.Table{Labels: labels}
	for _, r := range rows {
		t.Rows = append(t.Rows, row(r...))
	}
	return t
}

func testEngine() *Engine { return New(testRefs(), zerolog.Nop()) }
