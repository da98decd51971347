package service

import (
	"math"
	"strings"

	"match-service/internal/match/model"
	"match-service/internal/reference"
	"match-service/internal/utils"
)

// выше этого - скорее длинный числовой артикул, чем количество
const quantityOutlierLimit = 1_000_000

// QuantityColumns возвращает колонку количества и колонку "предлагаемого" количества.
//
// Оценка колонки - доля уникальных значений, похожих на целые. Колонка с
// числом > 1e6 отбрасывается, если ни шапка, ни метка не говорят, что это количество.
// Если шапка есть и хоть одна колонка подписана как количество, остальные не рассматриваются.
// Иначе из двух лучших колонок предлагаемой становится та, у которой больше модуль суммы.
func QuantityColumns(t *model.Table, h model.Header, kw reference.Keywords) (qty, suggested model.Assignment) {
	header := h.HeaderCells(t)
	rows := h.DataRows(t)

	isQty := func(col int) bool {
		if h.Status && h.Row != model.LabelRow && col < len(header) &&
			reference.ContainsAny(header[col].String(), kw.Quantity) {
			return true
		}
		return reference.ContainsAny(t.Labels[col], kw.Quantity)
	}

	var cands []scored
	for col := 0; col < t.NumCols(); col++ {
		uniq := make(map[string]struct{})
		for _, r := range rows {
			if v := cellAt(r, col); v.Truthy() {
				uniq[strings.ToLower(strings.TrimSpace(v.String()))] = struct{}{}
			}
		}
		if len(uniq) == 0 {
			continue
		}
		ints, largest := 0, 0
		for s := range uniq {
			if !utils.IsInteger(s) {
				continue
			}
			ints++
			if n := utils.QuantityOf(s); ints == 1 || n > largest {
				largest = n
			}
		}
		if ints > 0 && largest > quantityOutlierLimit && !isQty(col) {
			continue
		}
		cands = append(cands, scored{col: col, score: float64(ints) / float64(len(uniq))})
	}

	if h.Status {
		var labelled []scored
		for _, c := range cands {
			if isQty(c.col) {
				labelled = append(labelled, c)
			}
		}
		if len(labelled) > 0 {
			cands = labelled
			top, _ := best(cands)
			qty = model.SimpleColumn(top.col)
			suggested = qty
		}
	}

	if !qty.Found() && len(cands) > 1 && total(cands) > 0 {
		first, _ := best(cands)
		rest := make([]scored, 0, len(cands)-1)
		for _, c := range cands {
			if c.col != first.col {
				rest = append(rest, c)
			}
		}
		second, _ := best(rest)
		if math.Abs(columnSum(rows, first.col)) > math.Abs(columnSum(rows, second.col)) {
			suggested = model.SimpleColumn(first.col)
		} else {
			suggested = model.SimpleColumn(second.col)
		}
	}

	if len(cands) == 0 || total(cands) == 0 {
		return model.NoAssignment, model.NoAssignment
	}
	return qty, suggested
}

// columnSum: сумма количеств по ячейкам, похожим на целые.
// Считаем во float64, иначе несколько MaxInt64 переполнят сумму.
func columnSum(rows [][]model.Value, col int) float64 {
	var sum float64
	for _, r := range rows {
		if v := cellAt(r, col); v.IsInteger() {
			sum += float64(utils.QuantityOf(v.String()))
		}
	}
	return sum
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
