package service

import (
	"match-service/internal/match/model"
	"match-service/internal/reference"
)

// KeywordResult: что нашёл поиск по словам в шапке.
type KeywordResult struct {
	Header            model.Header
	Brand             model.Assignment
	Part              model.Assignment
	SuggestedQuantity model.Assignment
	Found             bool
}

// KeywordColumns - последний шанс, ищем колонки по подписям.
// Сначала метки (точное совпадение), потом строки сверху вниз (подстрока).
// Порядок категорий: количество, бренд, артикул; занятая колонка дальше не участвует.
// Уже известные колонки не перетираются. Первая строка с совпадением становится шапкой.
// Если ничего не нашлось, найденная раньше шапка сбрасывается.
func KeywordColumns(t *model.Table, known KeywordResult, kw reference.Keywords) KeywordResult {
	labels := t.LabelValues()
	if res, ok := matchKeywords(labels, known, kw, reference.EqualsAny); ok {
		res.Header = model.Header{Status: true, Row: model.LabelRow}
		return res
	}
	for i, row := range t.Rows {
		if res, ok := matchKeywords(row, known, kw, reference.ContainsAny); ok {
			res.Header = model.Header{Status: true, Row: i}
			return res
		}
	}
	known.Header = model.NoHeader
	known.Found = false
	return known
}

func matchKeywords(cells []model.Value, known KeywordResult, kw reference.Keywords,
	match func(string, []string) bool) (KeywordResult, bool) {
	claimed := map[int]bool{}
	find := func(words []string) (int, bool) {
		for i, v := range cells {
			if claimed[i] {
				continue
			}
			if s := v.String(); s != "" && match(s, words) {
				claimed[i] = true
				return i, true
			}
		}
		return 0, false
	}

	qc, qok := find(kw.QuantityHeader)
	bc, bok := find(kw.BrandHeader)
	pc, pok := find(kw.PartHeader)
	if !qok && !bok && !pok {
		return known, false
	}

	res := known
	res.Found = true
	if bok && !res.Brand.Found() {
		res.Brand = model.SimpleColumn(bc)
	}
	if pok && !res.Part.Found() {
		res.Part = model.SimpleColumn(pc)
	}
	if qok && !res.SuggestedQuantity.Found() {
		res.SuggestedQuantity = model.SimpleColumn(qc)
	}
	return res, true
}
