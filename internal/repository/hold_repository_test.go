package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const holdQuery = "SELECT COUNT(*) FROM student_holds WHERE student_id = $1 AND resolved_at IS NULL"

func TestCountActiveHolds(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewHoldRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(holdQuery)).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountActive(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountActiveHoldsWithoutTable(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewHoldRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(holdQuery)).
		WithArgs("stu-1").
		WillReturnError(&pq.Error{Code: "42P01", Message: `relation "student_holds" does not exist`})

	count, err := repo.CountActive(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCountActiveHoldsFailure(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewHoldRepository(db)

	boom := errors.New("timeout")
	mock.ExpectQuery(regexp.QuoteMeta(holdQuery)).WithArgs("stu-1").WillReturnError(boom)

	_, err := repo.CountActive(context.Background(), "stu-1")
	assert.ErrorIs(t, err, boom)
}
