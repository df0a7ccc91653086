package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sis-portal-api/internal/models"
	"github.com/noah-isme/sis-portal-api/pkg/database"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
)

// ErrDuplicateRequest is returned by Create when the student already has a
// pending request for the period.
var ErrDuplicateRequest = appErrors.ErrDuplicateRequest

const enrollmentRequestColumns = `id, student_id, course_id, period_id, academic_year, semester, status, requested_at, reviewed_at, rejection_reason`

// EnrollmentRequestRepository persists enrollment requests. At most one PENDING
// request may exist per student and period; the table carries a partial unique
// index on (student_id, period_id) for that.
type EnrollmentRequestRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewEnrollmentRequestRepository constructs the repository.
func NewEnrollmentRequestRepository(db *sqlx.DB) *EnrollmentRequestRepository {
	return &EnrollmentRequestRepository{db: db, now: time.Now}
}

// FindActiveRequest returns the pending request for the pair or nil.
func (r *EnrollmentRequestRepository) FindActiveRequest(ctx context.Context, studentID, periodID string) (*models.EnrollmentRequest, error) {
	query := `SELECT ` + enrollmentRequestColumns + ` FROM enrollment_requests WHERE student_id = $1 AND period_id = $2 AND status = 'PENDING' LIMIT 1`
	return r.findOne(ctx, "find active enrollment request", query, studentID, periodID)
}

// FindLatestForPeriod returns the most recent request of any status for the pair or nil.
func (r *EnrollmentRequestRepository) FindLatestForPeriod(ctx context.Context, studentID, periodID string) (*models.EnrollmentRequest, error) {
	query := `SELECT ` + enrollmentRequestColumns + ` FROM enrollment_requests WHERE student_id = $1 AND period_id = $2 ORDER BY requested_at DESC LIMIT 1`
	return r.findOne(ctx, "find latest enrollment request", query, studentID, periodID)
}

// FindLatestByStudent returns the student's most recent request in any period or nil.
func (r *EnrollmentRequestRepository) FindLatestByStudent(ctx context.Context, studentID string) (*models.EnrollmentRequest, error) {
	query := `SELECT ` + enrollmentRequestColumns + ` FROM enrollment_requests WHERE student_id = $1 ORDER BY requested_at DESC LIMIT 1`
	return r.findOne(ctx, "find latest student enrollment request", query, studentID)
}

func (r *EnrollmentRequestRepository) findOne(ctx context.Context, op, query string, args ...interface{}) (*models.EnrollmentRequest, error) {
	var req models.EnrollmentRequest
	if err := r.db.GetContext(ctx, &req, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &req, nil
}

// ListByStudent returns the student's requests, newest first.
func (r *EnrollmentRequestRepository) ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentRequest, error) {
	query := `SELECT ` + enrollmentRequestColumns + ` FROM enrollment_requests WHERE student_id = $1 ORDER BY requested_at DESC`
	var requests []models.EnrollmentRequest
	if err := r.db.SelectContext(ctx, &requests, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrollment requests: %w", err)
	}
	return requests, nil
}

// Create inserts a PENDING request. It fails with ErrDuplicateRequest when a
// pending request already exists for the student and period, whether detected
// by the check inside the transaction or by the unique index on commit races.
func (r *EnrollmentRequestRepository) Create(ctx context.Context, studentID, courseID, periodID, academicYear, semester string) (req *models.EnrollmentRequest, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create enrollment request: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var pending int
	const check = `SELECT COUNT(*) FROM enrollment_requests WHERE student_id = $1 AND period_id = $2 AND status = 'PENDING'`
	if err = tx.GetContext(ctx, &pending, check, studentID, periodID); err != nil {
		return nil, fmt.Errorf("check pending enrollment request: %w", err)
	}
	if pending > 0 {
		err = ErrDuplicateRequest
		return nil, err
	}

	req = &models.EnrollmentRequest{
		ID:           uuid.NewString(),
		StudentID:    studentID,
		CourseID:     courseID,
		PeriodID:     periodID,
		AcademicYear: academicYear,
		Semester:     semester,
		Status:       models.EnrollmentRequestPending,
		RequestedAt:  r.now().UTC(),
	}
	const insert = `INSERT INTO enrollment_requests (id, student_id, course_id, period_id, academic_year, semester, status, requested_at) VALUES (:id, :student_id, :course_id, :period_id, :academic_year, :semester, :status, :requested_at)`
	if _, err = tx.NamedExecContext(ctx, insert, req); err != nil {
		if database.IsUniqueViolation(err) {
			err = ErrDuplicateRequest
			return nil, err
		}
		return nil, fmt.Errorf("insert enrollment request: %w", err)
	}

	if err = tx.Commit(); err != nil {
		if database.IsUniqueViolation(err) {
			err = ErrDuplicateRequest
			return nil, err
		}
		return nil, fmt.Errorf("commit enrollment request: %w", err)
	}
	return req, nil
}
