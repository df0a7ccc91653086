package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sis-portal-api/internal/models"
)

const requirementColumns = `r.id, r.application_id, r.name, r.description, r.is_required, r.status, r.file_path, r.file_name, r.mime_type, r.submitted_at`

// RequirementRepository reads and updates admission application requirements.
type RequirementRepository struct {
	db *sqlx.DB
}

// NewRequirementRepository constructs the repository.
func NewRequirementRepository(db *sqlx.DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// ListForStudent returns the requirements of the student's latest admission application.
func (r *RequirementRepository) ListForStudent(ctx context.Context, studentID string) ([]models.Requirement, error) {
	query := `SELECT ` + requirementColumns + `
FROM application_requirements r
WHERE r.application_id = (
	SELECT a.id FROM admission_applications a WHERE a.user_id = $1 ORDER BY a.created_at DESC LIMIT 1
)
ORDER BY r.is_required DESC, r.name`
	var items []models.Requirement
	if err := r.db.SelectContext(ctx, &items, query, studentID); err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	return items, nil
}

// FindForStudent returns a requirement only if it belongs to one of the student's applications.
func (r *RequirementRepository) FindForStudent(ctx context.Context, id, studentID string) (*models.Requirement, error) {
	query := `SELECT ` + requirementColumns + `
FROM application_requirements r
JOIN admission_applications a ON a.id = r.application_id
WHERE r.id = $1 AND a.user_id = $2
LIMIT 1`
	var item models.Requirement
	if err := r.db.GetContext(ctx, &item, query, id, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find requirement: %w", err)
	}
	return &item, nil
}

// MarkSubmitted records an uploaded document and moves the requirement to SUBMITTED.
func (r *RequirementRepository) MarkSubmitted(ctx context.Context, id string, doc models.RequirementDocument, submittedAt time.Time) error {
	const query = `UPDATE application_requirements SET status = $2, file_path = $3, file_name = $4, mime_type = $5, submitted_at = $6 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, models.RequirementSubmitted, doc.FilePath, doc.FileName, doc.MimeType, submittedAt)
	if err != nil {
		return fmt.Errorf("mark requirement submitted: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
