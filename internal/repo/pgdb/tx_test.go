package pgdb

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/repo/repo_errors"

	"github.com/lib/pq"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "no rows",
			err:      sql.ErrNoRows,
			expected: repo_errors.ErrNotFound,
		},
		{
			name:     "wrapped no rows",
			err:      fmt.Errorf("query bid: %w", sql.ErrNoRows),
			expected: repo_errors.ErrNotFound,
		},
		{
			name:     "unique violation",
			err:      &pq.Error{Code: "23505"},
			expected: repo_errors.ErrConflict,
		},
		{
			name:     "serialization failure",
			err:      &pq.Error{Code: "40001"},
			expected: repo_errors.ErrTransient,
		},
		{
			name:     "deadlock",
			err:      &pq.Error{Code: "40P01"},
			expected: repo_errors.ErrTransient,
		},
		{
			name:     "other driver error passes through",
			err:      &pq.Error{Code: "42P01"},
			expected: &pq.Error{Code: "42P01"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)

			var gotPq, wantPq *pq.Error
			if errors.As(tc.expected, &wantPq) {
				if !errors.As(got, &gotPq) || gotPq.Code != wantPq.Code {
					t.Fatalf("expected %v, got %v", tc.expected, got)
				}
				return
			}

			if !errors.Is(got, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	if isTransient(&pq.Error{Code: "23505"}) {
		t.Fatal("unique violation is not transient")
	}
	if !isTransient(fmt.Errorf("exec: %w", &pq.Error{Code: "40001"})) {
		t.Fatal("wrapped serialization failure should be transient")
	}
	if isTransient(errors.New("connection refused")) {
		t.Fatal("plain errors are not transient")
	}
}

func TestOrderClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sort     *entity.SortInput
		expected string
	}{
		{name: "nil defaults to newest first", sort: nil, expected: "created_at desc"},
		{name: "budget ascending", sort: &entity.SortInput{By: "budget", Order: "asc"}, expected: "budget asc"},
		{name: "budget defaults descending", sort: &entity.SortInput{By: "budget"}, expected: "budget desc"},
		{name: "unknown column falls back", sort: &entity.SortInput{By: "owner_id"}, expected: "created_at desc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := orderClause(tc.sort); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
