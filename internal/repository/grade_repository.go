package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sis-portal-api/internal/models"
)

// GradeRepository reads the grade ledger and computed GPAs.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs the repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// ListByStudentTerm returns the student's grades for a term ordered by subject code.
func (r *GradeRepository) ListByStudentTerm(ctx context.Context, studentID, academicYear, semester string) ([]models.GradeRecord, error) {
	const query = `SELECT g.subject_id, sub.code AS subject_code, sub.name AS subject_name, sub.units,
g.academic_year, g.semester, g.final_grade, g.status, g.remarks
FROM grades g
JOIN subjects sub ON sub.id = g.subject_id
WHERE g.student_id = $1 AND g.academic_year = $2 AND g.semester = $3
ORDER BY sub.code`
	var grades []models.GradeRecord
	if err := r.db.SelectContext(ctx, &grades, query, studentID, academicYear, semester); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// CountMissingFinal counts subjects offered in the term to the sections the
// student currently belongs to that have no approved or locked final grade.
// Sections are taken from the student's current classroom enrolment, not the
// enrolment held during the term being checked.
func (r *GradeRepository) CountMissingFinal(ctx context.Context, studentID, academicYear, semester string) (int, error) {
	const query = `SELECT COUNT(DISTINCT c.subject_id)
FROM classrooms c
WHERE c.academic_year = $2 AND c.semester = $3
AND c.section_id IN (
	SELECT cur.section_id FROM classroom_students cs
	JOIN classrooms cur ON cur.id = cs.classroom_id
	WHERE cs.student_id = $1
)
AND NOT EXISTS (
	SELECT 1 FROM grades g
	WHERE g.student_id = $1 AND g.subject_id = c.subject_id
	AND g.academic_year = c.academic_year AND g.semester = c.semester
	AND g.final_grade IS NOT NULL AND g.status IN ('APPROVED', 'LOCKED')
)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID, academicYear, semester); err != nil {
		return 0, fmt.Errorf("count missing final grades: %w", err)
	}
	return count, nil
}

// FindGPA returns the GPA recorded for the term or nil.
func (r *GradeRepository) FindGPA(ctx context.Context, studentID, academicYear, semester string) (*models.StudentGPA, error) {
	const query = `SELECT academic_year, semester, gpa FROM student_gpa WHERE student_id = $1 AND academic_year = $2 AND semester = $3 LIMIT 1`
	return r.findGPA(ctx, query, studentID, academicYear, semester)
}

// LatestGPA returns the most recently computed GPA or nil.
func (r *GradeRepository) LatestGPA(ctx context.Context, studentID string) (*models.StudentGPA, error) {
	const query = `SELECT academic_year, semester, gpa FROM student_gpa WHERE student_id = $1 ORDER BY computed_at DESC LIMIT 1`
	return r.findGPA(ctx, query, studentID)
}

func (r *GradeRepository) findGPA(ctx context.Context, query string, args ...interface{}) (*models.StudentGPA, error) {
	var gpa models.StudentGPA
	if err := r.db.GetContext(ctx, &gpa, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find student gpa: %w", err)
	}
	return &gpa, nil
}
