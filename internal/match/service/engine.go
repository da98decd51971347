package service

import (
	"github.com/rs/zerolog"

	"match-service/internal/match/model"
	"match-service/internal/reference"
)

// ErrIndexInconsistent пробрасывается из справочника, см. reference.ErrIndexInconsistent.
var ErrIndexInconsistent = reference.ErrIndexInconsistent

const (
	StrategyRatio    = "ratio"
	StrategyPattern  = "pattern"
	StrategySplitter = "splitter"
	StrategyKeywords = "keywords"
)

// strategy: очередной способ найти бренд/артикул. applies решает, нужен ли он,
// run дописывает найденное в cols.
type strategy struct {
	name    string
	applies func(c *Columns) bool
	run     func(e *Engine, t *model.Table, c *Columns)
}

var strategies = []strategy{
	{
		name:    StrategyPattern,
		applies: func(c *Columns) bool { return !c.Brand.Found() || !c.Part.Found() },
		run: func(e *Engine, t *model.Table, c *Columns) {
			if a := DetectPattern(t, c.Header, e.refs); a.Found() {
				c.Brand, c.Part = a, a
			}
		},
	},
	{
		name:    StrategySplitter,
		applies: func(c *Columns) bool { return !c.Brand.Found() && !c.Part.Found() },
		run: func(e *Engine, t *model.Table, c *Columns) {
			if a := DetectSplitter(t, c.Header, e.refs); a.Found() {
				c.Brand, c.Part = a, a
			}
		},
	},
	{
		name:    StrategyKeywords,
		applies: func(c *Columns) bool { return !c.Brand.Found() || !c.Part.Found() },
		run: func(e *Engine, t *model.Table, c *Columns) {
			res := KeywordColumns(t, KeywordResult{
				Header:            c.Header,
				Brand:             c.Brand,
				Part:              c.Part,
				SuggestedQuantity: c.SuggestedQuantity,
			}, e.refs.Keywords)
			c.Header = res.Header
			if !res.Found {
				return
			}
			c.Brand, c.Part, c.SuggestedQuantity = res.Brand, res.Part, res.SuggestedQuantity
		},
	},
}

// Engine: поиск колонок и сборка записей. Состояния между таблицами нет.
type Engine struct {
	refs *reference.Context
	log  zerolog.Logger
}

func New(refs *reference.Context, log zerolog.Logger) *Engine {
	return &Engine{refs: refs, log: log}
}

// Result: записи по таблице и как были найдены колонки.
type Result struct {
	Columns Columns
	Records []model.MatchRecord
	Skipped bool
}

// Infer находит шапку и колонки в уже нормализованной таблице.
func (e *Engine) Infer(t *model.Table) Columns {
	c := Columns{Header: LocateHeader(t, e.refs)}
	c.Brand = BrandColumn(t, c.Header, e.refs)
	c.Quantity, c.SuggestedQuantity = QuantityColumns(t, c.Header, e.refs.Keywords)
	c.Part = PartColumn(t, c.Header, c.Brand, c.Quantity, e.refs)
	c.BrandStrategy = strategyFor(c.Brand, StrategyRatio)
	c.PartStrategy = strategyFor(c.Part, StrategyRatio)

	for _, s := range strategies {
		if !s.applies(&c) {
			continue
		}
		brand, part := c.Brand, c.Part
		s.run(e, t, &c)
		if c.Brand != brand {
			c.BrandStrategy = s.name
		}
		if c.Part != part {
			c.PartStrategy = s.name
		}
	}
	return c
}

func strategyFor(a model.Assignment, name string) string {
	if a.Found() {
		return name
	}
	return ""
}

// Run нормализует таблицу, ищет колонки и собирает записи.
// Ошибка возможна только при рассогласовании справочника.
func (e *Engine) Run(src *model.Table) (Result, error) {
	t := Normalize(src)
	c := e.Infer(t)

	e.log.Debug().
		Bool("header", c.Header.Status).
		Int("header_row", c.Header.Row).
		Str("brand", c.Brand.String()).
		Str("brand_strategy", c.BrandStrategy).
		Str("part", c.Part.String()).
		Str("part_strategy", c.PartStrategy).
		Str("quantity", c.Quantity.String()).
		Str("suggested_quantity", c.SuggestedQuantity.String()).
		Msg("columns inferred")

	if c.Header.Status && !c.Brand.Found() && !c.Part.Found() && !c.Quantity.Found() {
		e.log.Debug().Int("rows", len(t.Rows)).Msg("no columns found, table skipped")
		return Result{Columns: c, Skipped: true}, nil
	}

	recs, err := MatchRows(t, c, e.refs)
	if err != nil {
		return Result{Columns: c}, err
	}
	return Result{Columns: c, Records: recs}, nil
}
