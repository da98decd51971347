package reference

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

//go:embed keywords/*.txt
var builtinKeywords embed.FS

const (
	brandHeaderFile    = "brand_name_header.txt"
	partHeaderFile     = "part_number_header.txt"
	quantityHeaderFile = "quantity_header.txt"
)

// Keywords: словари для распознавания шапки.
type Keywords struct {
	Quantity       []string // признак количества в шапке/метке (подстрока)
	ItemNumber     []string // порядковый номер строки, точно не парт-номер
	BrandHeader    []string
	PartHeader     []string
	QuantityHeader []string
}

var (
	quantityKeywords   = []string{"qty", "quantity", "数量", "eau", "shortage", "excess", "demand"}
	itemNumberKeywords = []string{"item", "no."}
)

// DefaultKeywords: встроенные списки.
func DefaultKeywords() Keywords {
	kw, err := loadKeywords(builtinKeywords, "keywords")
	if err != nil {
		// встроенные файлы всегда на месте
		panic(err)
	}
	return kw
}

// LoadKeywords читает списки шапок из dir; пустой dir - встроенные.
func LoadKeywords(dir string) (Keywords, error) {
	if dir == "" {
		return DefaultKeywords(), nil
	}
	return loadKeywords(os.DirFS(dir), ".")
}

func loadKeywords(fsys fs.FS, root string) (Keywords, error) {
	kw := Keywords{
		Quantity:   append([]string(nil), quantityKeywords...),
		ItemNumber: append([]string(nil), itemNumberKeywords...),
	}
	for _, f := range []struct {
		name string
		dst  *[]string
	}{
		{brandHeaderFile, &kw.BrandHeader},
		{partHeaderFile, &kw.PartHeader},
		{quantityHeaderFile, &kw.QuantityHeader},
	} {
		b, err := fs.ReadFile(fsys, path.Join(root, f.name))
		if err != nil {
			return Keywords{}, fmt.Errorf("keywords %s: %w", f.name, err)
		}
		*f.dst = readLowerLines(b)
	}
	return kw, nil
}

// readLowerLines: строка = ключевое слово, нижний регистр, пустые пропускаем.
func readLowerLines(b []byte) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if s := strings.ToLower(strings.TrimSpace(sc.Text())); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ContainsAny: s (в нижнем регистре) содержит одно из слов.
func ContainsAny(s string, words []string) bool {
	s = strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// EqualsAny: точное совпадение без учёта регистра.
func EqualsAny(s string, words []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, w := range words {
		if s == w {
			return true
		}
	}
	return false
}
