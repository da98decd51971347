package service

import (
	"strings"

	"match-service/internal/match/model"
	"match-service/internal/reference"
	"match-service/internal/utils"
)

// перебираемые разделители, по приоритету
var splitSeparators = []string{"#", "(", "-", " ", "/"}

// pieces режет ячейку по sep и ещё раз - каждый кусок по другим разделителям из списка.
func pieces(cell, sep string) []string {
	var first []string
	for _, p := range strings.Split(cell, sep) {
		if p != "" {
			first = append(first, p)
		}
	}
	out := append([]string(nil), first...)
	for _, p := range first {
		for _, s := range splitSeparators {
			if s != sep && strings.Contains(p, s) {
				out = append(out, strings.Split(p, s)...)
			}
		}
	}
	return out
}

func piecesHit(ps []string, refs *reference.Context) bool {
	for _, p := range ps {
		if refs.IsBrand(utils.CleanBrandName(p)) || refs.IsPart(utils.CleanPartNumber(p)) {
			return true
		}
	}
	return false
}

// DetectSplitter: полный перебор (разделитель, колонка). Для каждого разделителя
// берём колонку с наибольшим числом ячеек-попаданий; побеждает первый разделитель
// с максимумом. Ни одного попадания - NoAssignment.
func DetectSplitter(t *model.Table, h model.Header, refs *reference.Context) model.Assignment {
	rows := h.DataRows(t)
	bestSep, bestCol, bestHits := "", 0, 0
	for _, sep := range splitSeparators {
		col, hits := 0, 0
		for c := 0; c < t.NumCols(); c++ {
			n := 0
			for _, r := range rows {
				if piecesHit(pieces(cellAt(r, c).String(), sep), refs) {
					n++
				}
			}
			if n > hits {
				col, hits = c, n
			}
		}
		if hits > bestHits {
			bestSep, bestCol, bestHits = sep, col, hits
		}
	}
	if bestHits == 0 {
		return model.NoAssignment
	}
	return model.SplitColumn(bestCol, bestSep)
}

// extractSplit: самый длинный кусок-бренд и самый длинный кусок-артикул.
func extractSplit(cell string, a model.Assignment, refs *reference.Context) (brand, part string) {
	ps := pieces(cell, a.Separator)
	brand = longestMatch(ps, utils.CleanBrandName, refs.IsBrand)
	part = longestMatch(ps, utils.CleanPartNumber, refs.IsPart)
	return strings.TrimSpace(strings.ReplaceAll(brand, ")", "")), strings.TrimSpace(part)
}

// longestMatch: исходный кусок с самой длинной нормализованной формой из справочника;
// при равной длине - первый.
func longestMatch(ps []string, norm func(string) string, known func(string) bool) string {
	best, bestLen := "", 0
	for _, p := range ps {
		n := norm(p)
		if !known(n) {
			continue
		}
		if len(n) > bestLen {
			best, bestLen = p, len(n)
		}
	}
	return best
}
