package service

import (
	"strings"

	"match-service/internal/match/model"
	"match-service/internal/reference"
	"match-service/internal/utils"
)

// Columns: итог поиска колонок для одной таблицы.
type Columns struct {
	Header            model.Header
	Brand             model.Assignment
	Part              model.Assignment
	Quantity          model.Assignment
	SuggestedQuantity model.Assignment

	BrandStrategy string
	PartStrategy  string
}

// MatchRows проходит строки данных и собирает записи.
// Пока не встретилась строка с числом или известным брендом/артикулом, строки
// пропускаются; после первой такой строки пропусков больше нет.
func MatchRows(t *model.Table, cols Columns, refs *reference.Context) ([]model.MatchRecord, error) {
	rows := cols.Header.DataRows(t)
	suggested := forwardFill(rows, cols.SuggestedQuantity)

	var out []model.MatchRecord
	crossed := false
	for i, row := range rows {
		if !crossed {
			if !anyInteger(row) && !refs.MentionsAny(rowText(row)) && !combinedHit(row, cols, refs) {
				continue
			}
			crossed = true
		}

		rec, err := matchRow(row, cols, refs)
		if err != nil {
			return nil, err
		}
		if cols.SuggestedQuantity.Found() {
			q, _ := utils.ParseQuantity(suggested[i])
			rec.SuggestedQuantity = abs(q)
		}
		if rec.Empty() {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func matchRow(row []model.Value, cols Columns, refs *reference.Context) (model.MatchRecord, error) {
	var (
		rec model.MatchRecord
		err error
	)

	if cols.Part.IsSimple() {
		rec.PartNumber = strings.TrimSpace(cellAt(row, cols.Part.Column).String())
		if rec.PartNumberID, _, err = refs.PartID(utils.CleanPartNumber(rec.PartNumber)); err != nil {
			return rec, err
		}
	}
	if cols.Brand.IsSimple() {
		rec.BrandName = strings.TrimSpace(cellAt(row, cols.Brand.Column).String())
		if rec.BrandID, _, err = refs.BrandID(utils.CleanBrandName(rec.BrandName)); err != nil {
			return rec, err
		}
	}

	if combined, ok := combinedAssignment(cols); ok {
		cell := cellAt(row, combined.Column).String()
		brand, part := extractCombined(cell, combined, refs)
		rec.BrandName, rec.PartNumber = brand, part
		if part != "" {
			if id, ok, err := refs.PartID(utils.CleanPartNumber(part)); err != nil {
				return rec, err
			} else if ok {
				rec.PartNumberID = id
			}
		}
		if brand != "" {
			if id, ok, err := refs.BrandID(utils.CleanBrandName(brand)); err != nil {
				return rec, err
			} else if ok {
				rec.BrandID = id
			}
		}
	}

	if cols.Quantity.Found() {
		q, _ := utils.ParseQuantity(cellAt(row, cols.Quantity.Column).String())
		rec.Quantity = abs(q)
	}

	if !strings.Contains(rec.BrandName, "(") {
		rec.BrandName = strings.ReplaceAll(rec.BrandName, ")", "")
	}
	return rec, nil
}

// combinedHit: составная ячейка строки даёт известный бренд или артикул.
func combinedHit(row []model.Value, cols Columns, refs *reference.Context) bool {
	a, ok := combinedAssignment(cols)
	if !ok {
		return false
	}
	brand, part := extractCombined(cellAt(row, a.Column).String(), a, refs)
	return refs.IsBrand(utils.CleanBrandName(brand)) || refs.IsPart(utils.CleanPartNumber(part))
}

func extractCombined(cell string, a model.Assignment, refs *reference.Context) (brand, part string) {
	if a.Kind == model.Pattern {
		return extractPattern(cell, a)
	}
	return extractSplit(cell, a, refs)
}

// combinedAssignment: составная колонка, если бренд или артикул найден паттерном/перебором.
func combinedAssignment(cols Columns) (model.Assignment, bool) {
	switch {
	case cols.Brand.Combined():
		return cols.Brand, true
	case cols.Part.Combined():
		return cols.Part, true
	}
	return model.NoAssignment, false
}

// forwardFill: значения колонки предлагаемого количества, пустые ячейки
// заполняются последним непустым значением выше.
func forwardFill(rows [][]model.Value, a model.Assignment) []string {
	out := make([]string, len(rows))
	if !a.Found() {
		return out
	}
	last := ""
	for i, r := range rows {
		if v := cellAt(r, a.Column); !v.IsEmpty() {
			last = v.String()
		}
		out[i] = last
	}
	return out
}
