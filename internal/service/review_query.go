package service

import (
	"strconv"
	"strings"
	"unicode"

	"moviereview/internal/repository"
)

// BuildReviewQuery maps raw listing parameters onto a ReviewQuery.
// Unknown sort keys and ratings without a leading integer are ignored rather than rejected.
func BuildReviewQuery(sortBy, order, rating string) repository.ReviewQuery {
	q := repository.ReviewQuery{SortBy: repository.SortByCreatedAt, Desc: true}

	switch repository.ReviewSortColumn(sortBy) {
	case repository.SortByRating, repository.SortByCreatedAt:
		q.SortBy = repository.ReviewSortColumn(sortBy)
		q.Desc = order != "asc"
	}

	if r, ok := leadingInt(rating); ok {
		q.Rating = &r
	}

	return q
}

// leadingInt reads an optionally signed run of digits after leading
// whitespace, so "3stars" and "3.5" both yield 3.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
