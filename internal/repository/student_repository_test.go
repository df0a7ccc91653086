package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileColumns = []string{"id", "student_number", "full_name", "email", "status", "course_id", "course_code", "course_name", "section_id", "section_name", "year_level"}

func TestFindProfile(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(profileColumns).
		AddRow("stu-1", "2023-0001", "Ana Cruz", "ana@example.com", "ACTIVE", "5", "BSIT", "BS Information Technology", "sec-1", "IT-2A", 2)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.id = $1 AND u.role = 'STUDENT'")).
		WithArgs("stu-1").
		WillReturnRows(rows)

	profile, err := repo.FindProfile(context.Background(), "stu-1")
	require.NoError(t, err)
	require.NotNil(t, profile.CourseID)
	assert.Equal(t, "5", *profile.CourseID)
	require.NotNil(t, profile.YearLevel)
	assert.Equal(t, 2, *profile.YearLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindProfileWithoutCourse(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(profileColumns).
		AddRow("stu-2", nil, "Ben Reyes", "ben@example.com", "ACTIVE", nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users u")).WithArgs("stu-2").WillReturnRows(rows)

	profile, err := repo.FindProfile(context.Background(), "stu-2")
	require.NoError(t, err)
	assert.Nil(t, profile.CourseID)
	assert.Nil(t, profile.SectionName)
}

func TestFindProfileErrors(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users u")).WithArgs("none").WillReturnRows(sqlmock.NewRows(profileColumns))
	_, err := repo.FindProfile(context.Background(), "none")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM users u")).WithArgs("stu-1").WillReturnError(boom)
	_, err = repo.FindProfile(context.Background(), "stu-1")
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
