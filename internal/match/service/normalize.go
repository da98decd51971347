package service

import (
	"fmt"
	"strings"

	"match-service/internal/match/model"
)

// Normalize: выкидываем полностью пустые строки, дубли строк и пустые колонки.
// Исходная таблица не меняется.
func Normalize(src *model.Table) *model.Table {
	width := len(src.Labels)
	for _, r := range src.Rows {
		if len(r) > width {
			width = len(r)
		}
	}
	labels := make([]string, width)
	for i := range labels {
		if i < len(src.Labels) {
			labels[i] = src.Labels[i]
		} else {
			labels[i] = fmt.Sprintf("Column %d", i+1)
		}
	}

	// 1) пустые строки и дубли
	seen := make(map[string]struct{}, len(src.Rows))
	rows := make([][]model.Value, 0, len(src.Rows))
	for _, r := range src.Rows {
		row := make([]model.Value, width)
		copy(row, r)
		if allEmpty(row) {
			continue
		}
		k := rowKey(row)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		rows = append(rows, row)
	}

	// 2) пустые колонки
	keep := make([]int, 0, width)
	for c := 0; c < width; c++ {
		for _, r := range rows {
			if !r[c].IsEmpty() {
				keep = append(keep, c)
				break
			}
		}
	}

	out := &model.Table{Labels: make([]string, len(keep)), Rows: make([][]model.Value, len(rows))}
	for i, c := range keep {
		out.Labels[i] = labels[c]
	}
	for i, r := range rows {
		nr := make([]model.Value, len(keep))
		for j, c := range keep {
			nr[j] = r[c]
		}
		out.Rows[i] = nr
	}
	return out
}

func allEmpty(row []model.Value) bool {
	for _, v := range row {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}

func rowKey(row []model.Value) string {
	var sb strings.Builder
	for _, v := range row {
		sb.WriteByte(byte('0' + v.Kind()))
		sb.WriteString(v.String())
		sb.WriteByte(0x1f)
	}
	return sb.String()
}

// rowText: строковые представления ячеек.
func rowText(row []model.Value) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = v.String()
	}
	return out
}

func anyInteger(row []model.Value) bool {
	for _, v := range row {
		if v.IsInteger() {
			return true
		}
	}
	return false
}

func cellAt(row []model.Value, col int) model.Value {
	if col < 0 || col >= len(row) {
		return model.Empty
	}
	return row[col]
}
