// Package query implements the listing helpers used by every catalog
// endpoint: equality filters, substring search, popularity sort and
// pagination. All functions are pure and never modify their input.
package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/BearBump/DVCPortal/internal/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Page struct {
	Page  int
	Limit int
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// ParsePage reads raw query values. Empty values fall back to defaults,
// anything below 1 or not a number is a validation error.
func ParsePage(rawPage, rawLimit string, defaultLimit int) (Page, error) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	page, err := parsePositive(rawPage, DefaultPage)
	if err != nil {
		return Page{}, apperr.Validation(apperr.MsgInvalidPaging, "page")
	}
	limit, err := ParseLimit(rawLimit, defaultLimit)
	if err != nil {
		return Page{}, err
	}
	return Page{Page: page, Limit: limit}, nil
}

// ParseLimit is ParsePage for endpoints that only take a limit.
func ParseLimit(raw string, def int) (int, error) {
	limit, err := parsePositive(raw, def)
	if err != nil {
		return 0, apperr.Validation(apperr.MsgInvalidPaging, "limit")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit, nil
}

func parsePositive(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// Paginate returns items[(page-1)*limit : page*limit] clamped to bounds.
// A page past the end, however large, yields an empty slice.
func Paginate[T any](items []T, p Page) ([]T, Pagination) {
	total := len(items)
	meta := Pagination{Total: total, Page: p.Page, Limit: p.Limit}
	if p.Limit < 1 {
		return []T{}, meta
	}
	meta.TotalPages = (total + p.Limit - 1) / p.Limit

	// страницу сравниваем до умножения: (page-1)*limit переполняется
	if p.Page < 1 || p.Page-1 >= meta.TotalPages {
		return []T{}, meta
	}
	start := (p.Page - 1) * p.Limit
	end := start + p.Limit
	if end > total {
		end = total
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, meta
}

// Predicate selects items of a collection.
type Predicate[T any] func(T) bool

// Filter keeps items matching every predicate, in original order.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
outer:
	for _, it := range items {
		for _, p := range preds {
			if p != nil && !p(it) {
				continue outer
			}
		}
		out = append(out, it)
	}
	return out
}

// Equals matches field(item) == want. An empty want matches everything.
func Equals[T any](want string, field func(T) string) Predicate[T] {
	if want == "" {
		return nil
	}
	return func(it T) bool { return field(it) == want }
}

// Contains matches when the lowercased q is a substring of any field.
// q is trimmed first; an empty q matches everything.
func Contains[T any](q string, fields ...func(T) string) Predicate[T] {
	return Substring(strings.TrimSpace(q), fields...)
}

// Substring is Contains without trimming: surrounding spaces in q must
// appear in the field.
func Substring[T any](q string, fields ...func(T) string) Predicate[T] {
	q = strings.ToLower(q)
	if q == "" {
		return nil
	}
	return func(it T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(it)), q) {
				return true
			}
		}
		return false
	}
}

// Head returns at most n leading items.
func Head[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out
}

// TopBy returns the n items with the largest key, ties kept in original order.
func TopBy[T any](items []T, n int, key func(T) int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return key(sorted[i]) > key(sorted[j]) })
	return Head(sorted, n)
}
