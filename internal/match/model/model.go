package model

import "fmt"

// LabelRow: шапкой служат сами метки колонок.
const LabelRow = -1

// Header: найденная строка заголовков.
type Header struct {
	Status bool // найдена ли шапка
	Row    int  // LabelRow или индекс строки (0-based)
}

// NoHeader: шапка не найдена.
var NoHeader = Header{Status: false, Row: LabelRow}

// DataRows: строки данных ниже шапки (если шапка - строка таблицы).
func (h Header) DataRows(t *Table) [][]Value {
	if h.Status && h.Row != LabelRow {
		if h.Row+1 >= len(t.Rows) {
			return nil
		}
		return t.Rows[h.Row+1:]
	}
	return t.Rows
}

// HeaderCells возвращает ячейки шапки (метки либо строка таблицы) или nil, если шапки нет.
func (h Header) HeaderCells(t *Table) []Value {
	if !h.Status {
		return nil
	}
	if h.Row == LabelRow {
		return t.LabelValues()
	}
	if h.Row < len(t.Rows) {
		return t.Rows[h.Row]
	}
	return nil
}

// Orientation: порядок бренда и парт-номера в составной ячейке.
type Orientation uint8

const (
	BrandThenPart Orientation = iota
	PartThenBrand
)

func (o Orientation) String() string {
	if o == PartThenBrand {
		return "p%sb"
	}
	return "b%sp"
}

// AssignmentKind: как найдена колонка.
type AssignmentKind uint8

const (
	None AssignmentKind = iota
	Simple
	Pattern // бренд и парт-номер в одной ячейке через фиксированный разделитель
	Split   // перебор разделителей с одним уровнем рекурсии
)

// Assignment: результат поиска колонки. Column 0 - валидная колонка, а не "не найдено".
type Assignment struct {
	Kind        AssignmentKind
	Column      int
	Separator   string
	Orientation Orientation
}

var NoAssignment = Assignment{}

func SimpleColumn(col int) Assignment { return Assignment{Kind: Simple, Column: col} }

func PatternColumn(col int, sep string, o Orientation) Assignment {
	return Assignment{Kind: Pattern, Column: col, Separator: sep, Orientation: o}
}

func SplitColumn(col int, sep string) Assignment {
	return Assignment{Kind: Split, Column: col, Separator: sep}
}

func (a Assignment) Found() bool    { return a.Kind != None }
func (a Assignment) IsSimple() bool { return a.Kind == Simple }

// Combined: бренд и парт-номер извлекаются из одной ячейки.
func (a Assignment) Combined() bool { return a.Kind == Pattern || a.Kind == Split }

func (a Assignment) String() string {
	switch a.Kind {
	case Simple:
		return fmt.Sprintf("column:%d", a.Column)
	case Pattern:
		return fmt.Sprintf("pattern:%d:"+a.Orientation.String(), a.Column, a.Separator)
	case Split:
		return fmt.Sprintf("split:%d:%q", a.Column, a.Separator)
	default:
		return "none"
	}
}

// MatchRecord: итоговая запись по строке таблицы.
type MatchRecord struct {
	Quantity          int    `json:"quantity"`
	SuggestedQuantity int    `json:"suggested_quantity"`
	BrandID           string `json:"brand_id"`
	BrandName         string `json:"brand_name"`
	PartNumberID      string `json:"part_number_id"`
	PartNumber        string `json:"part_number"`
}

// Empty: запись без полезной информации, такие отбрасываем.
func (m MatchRecord) Empty() bool {
	return m.Quantity == 0 && m.SuggestedQuantity == 0 &&
		m.BrandID == "" && m.BrandName == "" &&
		m.PartNumberID == "" && m.PartNumber == ""
}
