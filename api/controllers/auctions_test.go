package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseListAuctionsQuerySortAliases(t *testing.T) {
	cases := []struct {
		name      string
		target    string
		sortBy    string
		sortOrder string
	}{
		{
			name:      "camelCase",
			target:    "/api/v1/auctions?sortBy=price&sortOrder=desc",
			sortBy:    "price",
			sortOrder: "desc",
		},
		{
			name:      "snakeCase",
			target:    "/api/v1/auctions?sort_by=end_time&sort_order=asc",
			sortBy:    "end_time",
			sortOrder: "asc",
		},
		{
			name:      "camelCaseWinsWhenBothPresent",
			target:    "/api/v1/auctions?sortBy=price&sort_by=end_time&sortOrder=desc&sort_order=asc",
			sortBy:    "price",
			sortOrder: "desc",
		},
		{
			name:   "absentMeansEmpty",
			target: "/api/v1/auctions",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			input, err := parseListAuctionsQuery(req)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			if input.SortBy != tc.sortBy {
				t.Fatalf("expected sort by %q got %q", tc.sortBy, input.SortBy)
			}
			if input.SortOrder != tc.sortOrder {
				t.Fatalf("expected sort order %q got %q", tc.sortOrder, input.SortOrder)
			}
		})
	}
}
