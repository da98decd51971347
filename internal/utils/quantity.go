package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	rxQtyKeep   = regexp.MustCompile(`[^0-9k.\-]`)
	rxQtyNum    = regexp.MustCompile(`[^0-9.\-]`)
	rxQtyDigits = regexp.MustCompile(`[^0-9.]`)
	rxDecimal   = regexp.MustCompile(`^(\d+\.\d+)?$`)
)

// qtyNoise: то, что срезаем перед проверкой "похоже на целое".
var qtyNoise = strings.NewReplacer("k", "", "pieces", "", "piece", "", ",", "")

// ParseQuantity парсит "12k", "-5", "3,200 pieces", "1.5k".
// Неразбираемое (в т.ч. NaN) -> 0, false.
func ParseQuantity(s string) (int, bool) {
	s = rxQtyKeep.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
	if s == "" {
		return 0, false
	}
	if strings.HasSuffix(s, "k") {
		el := rxQtyDigits.ReplaceAllString(strings.ReplaceAll(s, "k", ""), "")
		if rxDecimal.MatchString(el) {
			f, err := strconv.ParseFloat(el, 64)
			if err != nil {
				return 0, false
			}
			return clampInt(f * 1000), true
		}
		if el == "" || !isDigits(el) {
			return 0, false
		}
		n, err := strconv.ParseFloat(el, 64)
		if err != nil {
			return 0, false
		}
		return clampInt(n * 1000), true
	}
	f, err := strconv.ParseFloat(rxQtyNum.ReplaceAllString(s, ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return clampInt(f), true
}

// clampInt отбрасывает дробную часть и прижимает к [-MaxInt64, MaxInt64],
// чтобы длинные числовые артикулы не переполняли int.
func clampInt(f float64) int {
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= -math.MaxInt64:
		return -math.MaxInt64
	}
	return int(f)
}

// QuantityOf как ParseQuantity, но без флага; всё неразбираемое = 0.
func QuantityOf(s string) int {
	n, _ := ParseQuantity(s)
	return n
}

// IsInteger: "похоже на количество": только цифры либо ненулевое число
// после удаления k/pieces/piece и запятых.
func IsInteger(s string) bool {
	s = strings.TrimSpace(qtyNoise.Replace(strings.ToLower(s)))
	if s == "" {
		return false
	}
	if isDigits(s) {
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f != 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
