package util

import (
	"golang.org/x/exp/constraints"
)

func Min[T constraints.Ordered](s []T) T {
	var result T
	if len(s) < 1 {
		return result
	}
	result = s[0]
	for _, v := range s {
		if v < result {
			result = v
		}
	}
	return result
}

func Max[T constraints.Ordered](s []T) T {
	var result T
	if len(s) < 1 {
		return result
	}
	result = s[0]
	for _, v := range s {
		if v > result {
			result = v
		}
	}
	return result
}
