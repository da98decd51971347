package service

import (
	"match-service/internal/match/model"
	"match-service/internal/reference"
	"match-service/internal/utils"
)

// scored: колонка и её оценка.
type scored struct {
	col   int
	score float64
}

// best: максимум по оценке; при равенстве выигрывает левая колонка.
func best(cands []scored) (scored, bool) {
	if len(cands) == 0 {
		return scored{}, false
	}
	top := cands[0]
	for _, c := range cands[1:] {
		if c.score > top.score {
			top = c
		}
	}
	return top, true
}

func total(cands []scored) float64 {
	var s float64
	for _, c := range cands {
		s += c.score
	}
	return s
}

// distinct: уникальные нормализованные значения truthy-ячеек колонки.
// Пустой результат нормализации остаётся только при keepEmpty.
func distinct(rows [][]model.Value, col int, norm func(string) string, keepEmpty bool) map[string]struct{} {
	out := make(map[string]struct{})
	for _, r := range rows {
		v := cellAt(r, col)
		if !v.Truthy() {
			continue
		}
		if n := norm(v.String()); n != "" || keepEmpty {
			out[n] = struct{}{}
		}
	}
	return out
}

// ratioScores: |ref ∩ uniq| / (rows / |uniq|). Чем больше разных попаданий
// и меньше повторов, тем выше. Колонки без значений не участвуют.
func ratioScores(t *model.Table, rows [][]model.Value, skip map[int]bool,
	norm func(string) string, keepEmpty bool, known func(string) bool) []scored {
	var out []scored
	for col := 0; col < t.NumCols(); col++ {
		if skip[col] {
			continue
		}
		uniq := distinct(rows, col, norm, keepEmpty)
		if len(uniq) == 0 {
			continue
		}
		hits := 0
		for v := range uniq {
			if known(v) {
				hits++
			}
		}
		density := float64(len(rows)) / float64(len(uniq))
		out = append(out, scored{col: col, score: float64(hits) / density})
	}
	return out
}

func pickRatio(cands []scored) model.Assignment {
	top, ok := best(cands)
	if !ok || total(cands) == 0 {
		return model.NoAssignment
	}
	return model.SimpleColumn(top.col)
}

// BrandColumn: колонка с наибольшей долей известных брендов/алиасов.
func BrandColumn(t *model.Table, h model.Header, refs *reference.Context) model.Assignment {
	rows := h.DataRows(t)
	return pickRatio(ratioScores(t, rows, nil, utils.CleanBrandName, false, refs.IsBrand))
}

// PartColumn: то же по парт-номерам. Колонки бренда, количества и
// порядкового номера (item / no.) заведомо не парт-номер.
// Ячейки без букв и цифр ("---") считаются отдельным значением в uniq.
func PartColumn(t *model.Table, h model.Header, brand, qty model.Assignment, refs *reference.Context) model.Assignment {
	skip := map[int]bool{}
	if brand.IsSimple() {
		skip[brand.Column] = true
	}
	if qty.IsSimple() {
		skip[qty.Column] = true
	}
	if col, ok := itemColumn(t, h, refs.Keywords.ItemNumber); ok {
		skip[col] = true
	}
	rows := h.DataRows(t)
	return pickRatio(ratioScores(t, rows, skip, utils.CleanPartNumber, true, refs.IsPart))
}

// itemColumn: первая ячейка шапки со словом item / no.
func itemColumn(t *model.Table, h model.Header, words []string) (int, bool) {
	for i, v := range h.HeaderCells(t) {
		if reference.ContainsAny(v.String(), words) {
			return i, true
		}
	}
	return 0, false
}
