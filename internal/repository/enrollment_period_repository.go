package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sis-portal-api/internal/models"
)

// EnrollmentPeriodRepository reads enrollment windows.
type EnrollmentPeriodRepository struct {
	db *sqlx.DB
}

// NewEnrollmentPeriodRepository constructs the repository.
func NewEnrollmentPeriodRepository(db *sqlx.DB) *EnrollmentPeriodRepository {
	return &EnrollmentPeriodRepository{db: db}
}

// FindActiveForCourse returns the most recently started ACTIVE period for the
// course, or nil when the course has none.
func (r *EnrollmentPeriodRepository) FindActiveForCourse(ctx context.Context, courseID string) (*models.EnrollmentPeriod, error) {
	const query = `SELECT id, course_id, name, academic_year, semester, start_at, end_at, status, created_at
FROM enrollment_periods
WHERE course_id = $1 AND status = 'ACTIVE'
ORDER BY start_at DESC
LIMIT 1`
	var period models.EnrollmentPeriod
	if err := r.db.GetContext(ctx, &period, query, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active enrollment period: %w", err)
	}
	return &period, nil
}
