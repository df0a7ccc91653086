package database

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "uq_enrollment_requests_pending"})

	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
}

func TestIsUndefinedRelation(t *testing.T) {
	assert.True(t, IsUndefinedRelation(&pq.Error{Code: "42P01"}))
	assert.True(t, IsUndefinedRelation(fmt.Errorf("count holds: %w", &pq.Error{Code: "42703"})))
	assert.False(t, IsUndefinedRelation(nil))
}
