package utils

import (
	"regexp"
	"strings"
)

var (
	rxNotAlnumSpace = regexp.MustCompile(`[^a-zA-Z0-9 ]+`)
	rxNotAlnum      = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// юр. формы, которые срезаем с конца названия бренда
var corporateSuffixes = map[string]struct{}{
	"inc": {}, "incorporated": {}, "corp": {}, "corporation": {}, "co": {}, "company": {},
	"ltd": {}, "limited": {}, "llc": {}, "llp": {}, "lp": {}, "plc": {}, "pllc": {},
	"gmbh": {}, "ag": {}, "kg": {}, "sa": {}, "sas": {}, "sarl": {}, "srl": {}, "spa": {},
	"bv": {}, "nv": {}, "oy": {}, "oyj": {}, "ab": {}, "as": {}, "asa": {}, "aps": {},
	"kk": {}, "pte": {}, "pty": {}, "pvt": {}, "bhd": {}, "sdn": {}, "tbk": {},
}

// RemovePunctuation оставляет латиницу, цифры и пробелы; нижний регистр, схлопнутые пробелы.
func RemovePunctuation(s string) string {
	s = rxNotAlnumSpace.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// CleanBrandName: пунктуация -> регистр -> срез юр. форм с конца (хотя бы одно слово остаётся).
func CleanBrandName(s string) string {
	f := strings.Fields(RemovePunctuation(s))
	for len(f) > 1 {
		if _, ok := corporateSuffixes[f[len(f)-1]]; !ok {
			break
		}
		f = f[:len(f)-1]
	}
	return strings.Join(f, " ")
}

// CleanPartNumber: только буквы/цифры, нижний регистр.
func CleanPartNumber(s string) string {
	return strings.ToLower(rxNotAlnum.ReplaceAllString(s, ""))
}
