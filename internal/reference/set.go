package reference

import "sort"

// Set: множество нормализованных строк.
type Set map[string]struct{}

// NewSet строит множество, пропуская пустые значения и blocked.
func NewSet(items []string, blocked Set) Set {
	s := make(Set, len(items))
	for _, it := range items {
		if it == "" || blocked.Has(it) {
			continue
		}
		s[it] = struct{}{}
	}
	return s
}

func (s Set) Has(k string) bool {
	if k == "" {
		return false
	}
	_, ok := s[k]
	return ok
}

func (s Set) Len() int { return len(s) }

// Sorted: элементы по алфавиту.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
