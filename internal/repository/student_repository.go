package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sis-portal-api/internal/models"
)

// StudentRepository reads student records joined with their program and section.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindProfile returns the profile of the student with the given id. It returns
// sql.ErrNoRows when the id does not belong to a student account.
func (r *StudentRepository) FindProfile(ctx context.Context, id string) (*models.StudentProfile, error) {
	const query = `SELECT u.id, u.student_number, u.full_name, u.email, u.status, u.course_id,
c.code AS course_code, c.name AS course_name, u.section_id, s.name AS section_name, u.year_level
FROM users u
LEFT JOIN courses c ON c.id = u.course_id
LEFT JOIN sections s ON s.id = u.section_id
WHERE u.id = $1 AND u.role = 'STUDENT'
LIMIT 1`
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student profile: %w", err)
	}
	return &profile, nil
}
