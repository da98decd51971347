package service

import (
	"strings"

	"match-service/internal/match/model"
	"match-service/internal/reference"
	"match-service/internal/utils"
)

// разделители "бренд<sep>артикул" в одной ячейке, по приоритету
var patternSeparators = []string{"#", "(", "/"}

// DetectPattern ищет колонку вида "Acme#AB123" / "AB123(Acme)".
// Счётчики ведутся по (разделитель, порядок) в порядке b#p p#b b(p p(b b/p p/b.
// Нет попаданий или ничья между колонками - NoAssignment.
func DetectPattern(t *model.Table, h model.Header, refs *reference.Context) model.Assignment {
	rows := h.DataRows(t)
	n := t.NumCols()
	counts := make([][]int, n)
	totals := make([]int, n)
	for col := range counts {
		counts[col] = make([]int, 2*len(patternSeparators))
	}

	for si, sep := range patternSeparators {
		for col := 0; col < n; col++ {
			for _, r := range rows {
				parts := strings.Split(cellAt(r, col).String(), sep)
				if len(parts) != 2 {
					continue
				}
				o, ok := orientation(parts[0], parts[1], refs)
				if !ok {
					continue
				}
				counts[col][2*si+int(o)]++
				totals[col]++
			}
		}
	}

	winner, top, tie := -1, 0, false
	for col, c := range totals {
		switch {
		case c > top:
			winner, top, tie = col, c, false
		case c == top && c > 0:
			tie = true
		}
	}
	if winner < 0 || tie {
		return model.NoAssignment
	}

	k := 0
	for i, c := range counts[winner] {
		if c > counts[winner][k] {
			k = i
		}
	}
	return model.PatternColumn(winner, patternSeparators[k/2], model.Orientation(k%2))
}

func orientation(left, right string, refs *reference.Context) (model.Orientation, bool) {
	switch {
	case refs.IsBrand(utils.CleanBrandName(left)) || refs.IsPart(utils.CleanPartNumber(right)):
		return model.BrandThenPart, true
	case refs.IsBrand(utils.CleanBrandName(right)) || refs.IsPart(utils.CleanPartNumber(left)):
		return model.PartThenBrand, true
	}
	return 0, false
}

// extractPattern делит ячейку по найденному разделителю; у бренда срезаем ")".
func extractPattern(cell string, a model.Assignment) (brand, part string) {
	parts := strings.Split(cell, a.Separator)
	if len(parts) != 2 {
		return "", ""
	}
	brand, part = parts[0], parts[1]
	if a.Orientation == model.PartThenBrand {
		brand, part = part, brand
	}
	return strings.TrimSpace(strings.ReplaceAll(brand, ")", "")), strings.TrimSpace(part)
}
