package model

import (
	"math"
	"strconv"
	"strings"

	"match-service/internal/utils"
)

// Kind: тип значения ячейки.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
)

// Value - ячейка таблицы (пусто, строка или число).
type Value struct {
	kind Kind
	text string
	num  float64
}

var Empty = Value{}

// Text: пустая (после trim) строка превращается в Empty.
func Text(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Empty
	}
	return Value{kind: KindText, text: s}
}

// Number: NaN превращается в Empty.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Empty
	}
	return Value{kind: KindNumber, num: f}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsEmpty() bool  { return v.kind == KindEmpty }
func (v Value) IsNumber() bool { return v.kind == KindNumber }

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Truthy: непустое и не числовой ноль. Такие ячейки участвуют в подсчёте колонок.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindText:
		return true
	case KindNumber:
		return v.num != 0
	default:
		return false
	}
}

// IsInteger: число из файла всегда годится, текст проверяем эвристикой.
func (v Value) IsInteger() bool {
	switch v.kind {
	case KindNumber:
		return true
	case KindText:
		return utils.IsInteger(v.text)
	default:
		return false
	}
}

// Table: метки колонок + строки. Колонка адресуется позицией в Labels.
type Table struct {
	Labels []string
	Rows   [][]Value
}

// NumCols: ширина таблицы.
func (t *Table) NumCols() int { return len(t.Labels) }

// LabelValues: метки как строка таблицы (для шапки row=-1).
func (t *Table) LabelValues() []Value {
	out := make([]Value, len(t.Labels))
	for i, l := range t.Labels {
		out[i] = Text(l)
	}
	return out
}
