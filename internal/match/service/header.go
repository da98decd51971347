package service

import (
	"match-service/internal/match/model"
	"match-service/internal/reference"
)

// LocateHeader ищет шапку: сначала среди меток колонок, потом по строкам сверху вниз.
// Шапка похожа на подписи: есть слово про количество и нет
// чисел, брендов и парт-номеров.
func LocateHeader(t *model.Table, refs *reference.Context) model.Header {
	if looksLikeHeader(t.LabelValues(), refs) {
		return model.Header{Status: true, Row: model.LabelRow}
	}
	for i, row := range t.Rows {
		if looksLikeHeader(row, refs) {
			return model.Header{Status: true, Row: i}
		}
	}
	return model.NoHeader
}

func looksLikeHeader(cells []model.Value, refs *reference.Context) bool {
	text := rowText(cells)
	hasQty := false
	for _, s := range text {
		if reference.ContainsAny(s, refs.Keywords.Quantity) {
			hasQty = true
			break
		}
	}
	if !hasQty {
		return false
	}
	return !refs.MentionsAny(text) && !anyInteger(cells)
}
