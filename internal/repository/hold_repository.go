package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sis-portal-api/pkg/database"
)

// HoldRepository reads administrative holds. The student_holds table is
// optional; deployments without it report zero holds.
type HoldRepository struct {
	db *sqlx.DB
}

// NewHoldRepository constructs the repository.
func NewHoldRepository(db *sqlx.DB) *HoldRepository {
	return &HoldRepository{db: db}
}

// CountActive returns the number of unresolved holds on the student.
func (r *HoldRepository) CountActive(ctx context.Context, studentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM student_holds WHERE student_id = $1 AND resolved_at IS NULL`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID); err != nil {
		if database.IsUndefinedRelation(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count active holds: %w", err)
	}
	return count, nil
}
