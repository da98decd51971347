package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"match-service/internal/match/model"
)

// ErrUnsupported: расширение, которое мы не читаем.
var ErrUnsupported = errors.New("unsupported file")

// Allowed: допустимые расширения загрузки.
func Allowed(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls", ".csv":
		return true
	}
	return false
}

// ReadTable: выберет парсер по расширению; первая строка файла становится метками колонок.
func ReadTable(r io.Reader, filename string) (*model.Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	if err != nil {
		return nil, err
	}
	return rowsToTable(rows), nil
}

// pickHeader: берёт первую строку и подставляет Column N для пустых.
func pickHeader(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	h := rows[0]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToTable: AoA в таблицу; ширина = самая длинная строка, недостающие метки Column N.
func rowsToTable(rows [][]string) *model.Table {
	labels := pickHeader(rows)
	width := len(labels)
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	for i := len(labels); i < width; i++ {
		labels = append(labels, fmt.Sprintf("Column %d", i+1))
	}

	t := &model.Table{Labels: labels}
	for r := 1; r < len(rows); r++ {
		rec := rows[r]
		row := make([]model.Value, width)
		for c := 0; c < width; c++ {
			if c < len(rec) {
				row[c] = model.Text(normalizeCell(rec[c]))
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

var spaceLike = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "\u2009", " ")

// normalizeCell: NBSP/узкие пробелы в обычные + trim.
func normalizeCell(s string) string {
	return strings.TrimSpace(spaceLike.Replace(s))
}
