package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sis-portal-api/internal/models"
)

// ScheduleRepository reads the classrooms a student attends.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByStudentTerm returns the student's classes for the term ordered by day and start time.
func (r *ScheduleRepository) ListByStudentTerm(ctx context.Context, studentID, academicYear, semester string) ([]models.ScheduleEntry, error) {
	const query = `SELECT c.id AS classroom_id, sub.id AS subject_id, sub.code AS subject_code, sub.name AS subject_name, sub.units,
sec.name AS section_name, t.full_name AS teacher_name, c.day_of_week, c.start_time, c.end_time, c.room
FROM classroom_students cs
JOIN classrooms c ON c.id = cs.classroom_id
JOIN subjects sub ON sub.id = c.subject_id
JOIN sections sec ON sec.id = c.section_id
LEFT JOIN users t ON t.id = c.teacher_id
WHERE cs.student_id = $1 AND c.academic_year = $2 AND c.semester = $3
ORDER BY c.day_of_week, c.start_time, sub.code`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, studentID, academicYear, semester); err != nil {
		return nil, fmt.Errorf("list student schedule: %w", err)
	}
	return entries, nil
}
