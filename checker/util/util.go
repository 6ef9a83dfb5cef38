package util

import (
	"github.com/rjNemo/underscore"
	"golang.org/x/exp/maps"
)

// Keep the first occurrence of each element under the given equality.
func UniqueCmp[T any](ls []T, cmp func(l T, r T) bool) []T {
	res := []T{}
	for _, e := range ls {
		equalE := func(r T) bool { return cmp(e, r) }
		_, err := underscore.Find(res, equalE)
		if err != nil {
			res = append(res, e)
		}
	}
	return res
}

func MergeMaps[T comparable, V any](m1 map[T]V, m2 map[T]V, combine func(v1 V, v2 V) V) map[T]V {
	res := maps.Clone(m1)
	for k, v := range m2 {
		if existing, ok := res[k]; ok {
			res[k] = combine(existing, v)
		} else {
			res[k] = v
		}
	}
	return res
}
