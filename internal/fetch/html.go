package fetch

import (
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"match-service/internal/match/model"
)

// ErrNoTables: в документе нет ни одной таблицы.
var ErrNoTables = errors.New("no tables found")

// rxNumericCell: число, запятая допустима только как разделитель тысяч.
var rxNumericCell = regexp.MustCompile(`^[+-]?(\d+|\d{1,3}(,\d{3})+)(\.\d+)?$`)

type htmlRow struct {
	cells  []string
	header bool // все ячейки <th> или строка из <thead>
}

// ParseTables достаёт все <table> документа. Первая строка из <thead>
// или целиком из <th> становится метками; иначе метки 0..n-1.
func ParseTables(r io.Reader) ([]*model.Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var out []*model.Table
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			if t := buildTable(collectRows(n)); t != nil {
				out = append(out, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if len(out) == 0 {
		return nil, ErrNoTables
	}
	return out, nil
}

// collectRows: строки таблицы без захода во вложенные таблицы.
func collectRows(table *html.Node) []htmlRow {
	var rows []htmlRow
	var walk func(n *html.Node, inHead bool)
	walk = func(n *html.Node, inHead bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Table:
				continue
			case atom.Thead:
				walk(c, true)
			case atom.Tr:
				rows = append(rows, readRow(c, inHead))
			default:
				walk(c, inHead)
			}
		}
	}
	walk(table, false)
	return rows
}

func readRow(tr *html.Node, inHead bool) htmlRow {
	row := htmlRow{header: true}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
			continue
		}
		if c.DataAtom == atom.Td {
			row.header = false
		}
		txt := strings.Join(strings.Fields(textOf(c)), " ")
		span := colspan(c)
		for i := 0; i < span; i++ {
			row.cells = append(row.cells, txt)
		}
	}
	if inHead {
		row.header = true
	}
	if len(row.cells) == 0 {
		row.header = false
	}
	return row
}

func colspan(n *html.Node) int {
	for _, a := range n.Attr {
		if a.Key == "colspan" {
			if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil && v > 1 && v < 100 {
				return v
			}
		}
	}
	return 1
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func buildTable(rows []htmlRow) *model.Table {
	width := 0
	for _, r := range rows {
		if len(r.cells) > width {
			width = len(r.cells)
		}
	}
	if width == 0 {
		return nil
	}

	t := &model.Table{Labels: make([]string, width)}
	body := rows
	if rows[0].header {
		for i := range t.Labels {
			if i < len(rows[0].cells) && rows[0].cells[i] != "" {
				t.Labels[i] = rows[0].cells[i]
			} else {
				t.Labels[i] = "Unnamed: " + strconv.Itoa(i)
			}
		}
		body = rows[1:]
	} else {
		for i := range t.Labels {
			t.Labels[i] = strconv.Itoa(i)
		}
	}

	for _, r := range body {
		if len(r.cells) == 0 {
			continue
		}
		row := make([]model.Value, width)
		for i, c := range r.cells {
			row[i] = model.Text(c)
		}
		t.Rows = append(t.Rows, row)
	}
	for col := 0; col < width; col++ {
		numericColumn(t.Rows, col)
	}
	return t
}

// numericColumn переводит колонку в числа, если все непустые ячейки числовые.
// Смешанная колонка остаётся текстом, так "007" рядом с "AB123" не теряет нули.
func numericColumn(rows [][]model.Value, col int) {
	nums := make([]float64, len(rows))
	seen := false
	for i, r := range rows {
		v := r[col]
		if v.IsEmpty() {
			continue
		}
		s := strings.TrimSpace(v.String())
		if !rxNumericCell.MatchString(s) {
			return
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return
		}
		nums[i] = f
		seen = true
	}
	if !seen {
		return
	}
	for i, r := range rows {
		if !r[col].IsEmpty() {
			r[col] = model.Number(nums[i])
		}
	}
}
