package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/noah-isme/sis-portal-api/internal/calendar"
	"github.com/noah-isme/sis-portal-api/internal/models"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
)

type scheduleReader interface {
	ListByStudentTerm(ctx context.Context, studentID, academicYear, semester string) ([]models.ScheduleEntry, error)
}

// StudentSchedule lists a student's classes for one term.
type StudentSchedule struct {
	Term       calendar.Term          `json:"term"`
	Classes    []models.ScheduleEntry `json:"classes"`
	TotalUnits float64                `json:"totalUnits"`
}

// StudentService serves the student's own profile and class schedule.
type StudentService struct {
	students  studentProfileReader
	schedules scheduleReader
	location  *time.Location
	now       func() time.Time
}

// NewStudentService constructs the service.
func NewStudentService(students studentProfileReader, schedules scheduleReader, location *time.Location) *StudentService {
	if location == nil {
		location = time.UTC
	}
	return &StudentService{students: students, schedules: schedules, location: location, now: time.Now}
}

// Profile returns the student's profile.
func (s *StudentService) Profile(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	return loadProfile(ctx, s.students, studentID)
}

func loadProfile(ctx context.Context, students studentProfileReader, studentID string) (*models.StudentProfile, error) {
	profile, err := students.FindProfile(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student profile")
	}
	return profile, nil
}

// Schedule returns the classes for the requested term, or the current term
// when academicYear and semester are both empty.
func (s *StudentService) Schedule(ctx context.Context, studentID, academicYear, semester string) (*StudentSchedule, error) {
	term, err := resolveTerm(academicYear, semester, calendar.ResolveSemester(s.now().In(s.location)))
	if err != nil {
		return nil, err
	}
	classes, err := s.schedules.ListByStudentTerm(ctx, studentID, term.AcademicYear, string(term.Semester))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	if classes == nil {
		classes = []models.ScheduleEntry{}
	}
	var units float64
	for _, class := range classes {
		units += class.Units
	}
	return &StudentSchedule{Term: term, Classes: classes, TotalUnits: units}, nil
}

// resolveTerm parses the query pair or falls back when both are empty.
func resolveTerm(academicYear, semester string, fallback calendar.Term) (calendar.Term, error) {
	if academicYear == "" && semester == "" {
		return fallback, nil
	}
	term, err := calendar.ParseTerm(academicYear, semester)
	if err != nil {
		return calendar.Term{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid academicYear or semester")
	}
	return term, nil
}
