package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsOverlapViolation(t *testing.T) {
	overlap := &pgconn.PgError{
		Code:           "23P01",
		TableName:      "resource_assignments",
		ConstraintName: "resource_assignments_no_overlap",
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "exclusion on booking constraint", err: overlap, want: true},
		{name: "wrapped", err: fmt.Errorf("insert: %w", overlap), want: true},
		{
			name: "exclusion on another constraint",
			err:  &pgconn.PgError{Code: "23P01", ConstraintName: "other_no_overlap"},
			want: false,
		},
		{
			name: "unique violation same constraint name",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "resource_assignments_no_overlap"},
			want: false,
		},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isOverlapViolation(tt.err))
		})
	}
}
