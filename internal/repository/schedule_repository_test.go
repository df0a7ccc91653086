package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListScheduleByStudentTerm(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	columns := []string{"classroom_id", "subject_id", "subject_code", "subject_name", "units", "section_name", "teacher_name", "day_of_week", "start_time", "end_time", "room"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM classroom_students cs")).
		WithArgs("stu-1", "2025-2026", "FIRST").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("cls-1", "sub-1", "IT101", "Intro to Computing", 3.0, "IT-1A", "Prof. Reyes", "MON", "08:00", "09:30", "R201").
			AddRow("cls-2", "sub-2", "PE1", "Physical Education", 2.0, "IT-1A", nil, nil, nil, nil, nil))

	entries, err := repo.ListByStudentTerm(context.Background(), "stu-1", "2025-2026", "FIRST")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "IT101", entries[0].SubjectCode)
	require.NotNil(t, entries[0].TeacherName)
	assert.Equal(t, "Prof. Reyes", *entries[0].TeacherName)
	assert.Nil(t, entries[1].Room)
	assert.InDelta(t, 2.0, entries[1].Units, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}
