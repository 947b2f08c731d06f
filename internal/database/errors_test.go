package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect ErrorClass
	}{
		{name: "nil", err: nil, expect: ErrorClassPermanent},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, expect: ErrorClassSerialization},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, expect: ErrorClassDeadlock},
		{name: "lock not available", err: &pgconn.PgError{Code: "55P03"}, expect: ErrorClassTransient},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, expect: ErrorClassPermanent},
		{name: "wrapped deadlock", err: fmt.Errorf("failed to enroll: %w", &pgconn.PgError{Code: "40P01"}), expect: ErrorClassDeadlock},
		{name: "no rows", err: pgx.ErrNoRows, expect: ErrorClassPermanent},
		{name: "plain error", err: errors.New("boom"), expect: ErrorClassPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ClassifyError(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "55P03"}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}

func TestConstraintName(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503", ConstraintName: "cart_items_course_id_fkey"})

	assert.Equal(t, "cart_items_course_id_fkey", ConstraintName(err))
	assert.Equal(t, "", ConstraintName(errors.New("boom")))
}
