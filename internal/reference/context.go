package reference

import (
	"errors"
	"fmt"

	"match-service/internal/utils"
)

// ErrIndexInconsistent: значение есть в множестве, но его нет в индексе id.
var ErrIndexInconsistent = errors.New("reference index inconsistent")

// общие слова, которые чаще встречаются в шапке, чем в данных
var (
	invalidBrandNames  = Set{"lt": {}, "ltd": {}, "app": {}, "manufacturer": {}}
	invalidPartNumbers = Set{"packing": {}, "ltd": {}}
)

// Context: справочники брендов/парт-номеров и ключевые слова.
// Собирается один раз на старте и дальше только читается, поэтому
// его можно разделять между запросами без блокировок.
type Context struct {
	BrandNames   Set
	BrandAliases Set
	PartNumbers  Set

	BrandNameToID  map[string]Record
	BrandAliasToID map[string]Record
	PartNumberToID map[string]Record

	Keywords Keywords
}

// New собирает контекст из снапшота, вычитая blocklist.
func New(snap Snapshot, kw Keywords) *Context {
	return &Context{
		BrandNames:     NewSet(snap.BrandNames, invalidBrandNames),
		BrandAliases:   NewSet(snap.BrandAliases, invalidBrandNames),
		PartNumbers:    NewSet(snap.PartNumbers, invalidPartNumbers),
		BrandNameToID:  nonNil(snap.BrandNameToID),
		BrandAliasToID: nonNil(snap.BrandAliasToID),
		PartNumberToID: nonNil(snap.PartNumberToID),
		Keywords:       kw,
	}
}

func nonNil(m map[string]Record) map[string]Record {
	if m == nil {
		return map[string]Record{}
	}
	return m
}

// IsBrand: нормализованное значение есть среди названий или алиасов.
func (c *Context) IsBrand(norm string) bool {
	return c.BrandNames.Has(norm) || c.BrandAliases.Has(norm)
}

func (c *Context) IsPart(norm string) bool { return c.PartNumbers.Has(norm) }

// Mentions: в ячейке бренд, алиас или парт-номер.
func (c *Context) Mentions(cell string) bool {
	return c.IsBrand(utils.CleanBrandName(cell)) || c.IsPart(utils.CleanPartNumber(cell))
}

// MentionsAny: хотя бы одна ячейка из списка.
func (c *Context) MentionsAny(cells []string) bool {
	for _, s := range cells {
		if c.Mentions(s) {
			return true
		}
	}
	return false
}

// BrandID ищет id по нормализованному бренду: сначала названия, потом алиасы.
func (c *Context) BrandID(norm string) (string, bool, error) {
	if c.BrandNames.Has(norm) {
		rec, ok := c.BrandNameToID[norm]
		if !ok {
			return "", false, fmt.Errorf("brand name %q: %w", norm, ErrIndexInconsistent)
		}
		return rec.ID, true, nil
	}
	if c.BrandAliases.Has(norm) {
		rec, ok := c.BrandAliasToID[norm]
		if !ok {
			return "", false, fmt.Errorf("brand alias %q: %w", norm, ErrIndexInconsistent)
		}
		return rec.ID, true, nil
	}
	return "", false, nil
}

// PartID ищет id по нормализованному парт-номеру.
func (c *Context) PartID(norm string) (string, bool, error) {
	if !c.PartNumbers.Has(norm) {
		return "", false, nil
	}
	rec, ok := c.PartNumberToID[norm]
	if !ok {
		return "", false, fmt.Errorf("part number %q: %w", norm, ErrIndexInconsistent)
	}
	return rec.ID, true, nil
}
