package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-portal-api/internal/models"
)

var requestColumns = []string{"id", "student_id", "course_id", "period_id", "academic_year", "semester", "status", "requested_at", "reviewed_at", "rejection_reason"}

const pendingCheck = "SELECT COUNT(*) FROM enrollment_requests WHERE student_id = $1 AND period_id = $2 AND status = 'PENDING'"

func newRequestRepo(t *testing.T) (*EnrollmentRequestRepository, sqlmock.Sqlmock, func()) {
	db, mock, cleanup := newMock(t)
	repo := NewEnrollmentRequestRepository(db)
	repo.now = func() time.Time { return time.Date(2026, time.May, 20, 9, 0, 0, 0, time.UTC) }
	return repo, mock, cleanup
}

func TestFindActiveRequest(t *testing.T) {
	repo, mock, cleanup := newRequestRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE student_id = $1 AND period_id = $2 AND status = 'PENDING' LIMIT 1")).
		WithArgs("stu-1", "p-1").
		WillReturnRows(sqlmock.NewRows(requestColumns).AddRow("r-1", "stu-1", "5", "p-1", "2026-2027", "FIRST", "PENDING", now, nil, nil))

	req, err := repo.FindActiveRequest(context.Background(), "stu-1", "p-1")
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, models.EnrollmentRequestPending, req.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveRequestNone(t *testing.T) {
	repo, mock, cleanup := newRequestRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("status = 'PENDING' LIMIT 1")).
		WithArgs("stu-1", "p-1").
		WillReturnRows(sqlmock.NewRows(requestColumns))

	req, err := repo.FindActiveRequest(context.Background(), "stu-1", "p-1")
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestFindLatestForPeriod(t *testing.T) {
	repo, mock, cleanup := newRequestRepo(t)
	defer cleanup()

	now := time.Now()
	reason := "incomplete documents"
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY requested_at DESC LIMIT 1")).
		WithArgs("stu-1", "p-1").
		WillReturnRows(sqlmock.NewRows(requestColumns).AddRow("r-1", "stu-1", "5", "p-1", "2026-2027", "FIRST", "REJECTED", now, now, reason))

	req, err := repo.FindLatestForPeriod(context.Background(), "stu-1", "p-1")
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, models.EnrollmentRequestRejected, req.Status)
	require.NotNil(t, req.RejectionReason)
	assert.Equal(t, reason, *req.RejectionReason)
}

func TestCreateEnrollmentRequest(t *testing.T) {
	repo, mock, cleanup := newRequestRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(pendingCheck)).
		WithArgs("stu-1", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO enrollment_requests").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	req, err := repo.Create(context.Background(), "stu-1", "5", "p-1", "2026-2027", "FIRST")
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.EnrollmentRequestPending, req.Status)
	assert.Equal(t, "2026-2027", req.AcademicYear)
	assert.Equal(t, time.Date(2026, time.May, 20, 9, 0, 0, 0, time.UTC), req.RequestedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEnrollmentRequestDuplicateByCheck(t *testing.T) {
	repo, mock, cleanup := newRequestRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(pendingCheck)).
		WithArgs("stu-1", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	req, err := repo.Create(context.Background(), "stu-1", "5", "p-1", "2026-2027", "FIRST")
	assert.Nil(t, req)
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEnrollmentRequestDuplicateByIndex(t *testing.T) {
	repo, mock, cleanup := newRequestRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(pendingCheck)).
		WithArgs("stu-1", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO enrollment_requests").WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), "stu-1", "5", "p-1", "2026-2027", "FIRST")
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEnrollmentRequestInsertFailure(t *testing.T) {
	repo, mock, cleanup := newRequestRepo(t)
	defer cleanup()

	boom := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(pendingCheck)).
		WithArgs("stu-1", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO enrollment_requests").WillReturnError(boom)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), "stu-1", "5", "p-1", "2026-2027", "FIRST")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDuplicateRequest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByStudent(t *testing.T) {
	repo, mock, cleanup := newRequestRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollment_requests WHERE student_id = $1 ORDER BY requested_at DESC")).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows(requestColumns).
			AddRow("r-2", "stu-1", "5", "p-2", "2026-2027", "FIRST", "PENDING", now, nil, nil).
			AddRow("r-1", "stu-1", "5", "p-1", "2025-2026", "SECOND", "APPROVED", now.Add(-time.Hour), now, nil))

	requests, err := repo.ListByStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "r-2", requests[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
