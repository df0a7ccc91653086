package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sis-portal-api/internal/calendar"
	"github.com/noah-isme/sis-portal-api/internal/eligibility"
	"github.com/noah-isme/sis-portal-api/internal/models"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
)

type studentProfileReader interface {
	FindProfile(ctx context.Context, id string) (*models.StudentProfile, error)
}

type activePeriodReader interface {
	FindActiveForCourse(ctx context.Context, courseID string) (*models.EnrollmentPeriod, error)
}

type enrollmentRequestReader interface {
	FindActiveRequest(ctx context.Context, studentID, periodID string) (*models.EnrollmentRequest, error)
	FindLatestForPeriod(ctx context.Context, studentID, periodID string) (*models.EnrollmentRequest, error)
}

type gradeCompletenessReader interface {
	CountMissingFinal(ctx context.Context, studentID, academicYear, semester string) (int, error)
}

type holdCounter interface {
	CountActive(ctx context.Context, studentID string) (int, error)
}

// Assessment is an eligibility decision together with the records it was based on.
type Assessment struct {
	Result  eligibility.Result
	Student *models.StudentProfile
	Period  *models.EnrollmentPeriod
	// Target is the term an enrollment request made now would be filed under.
	Target calendar.Term
	// Degraded is set when an input could not be loaded and Result is the
	// fail-safe decision.
	Degraded bool
}

// EligibilityServiceParams groups constructor dependencies.
type EligibilityServiceParams struct {
	Students studentProfileReader
	Periods  activePeriodReader
	Requests enrollmentRequestReader
	Grades   gradeCompletenessReader
	Holds    holdCounter
	Metrics  *MetricsService
	Logger   *zap.Logger
	Location *time.Location
}

// EligibilityService gathers the inputs of an enrollment eligibility decision
// and evaluates it.
type EligibilityService struct {
	students studentProfileReader
	periods  activePeriodReader
	requests enrollmentRequestReader
	grades   gradeCompletenessReader
	holds    holdCounter
	metrics  *MetricsService
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

// NewEligibilityService constructs the service.
func NewEligibilityService(params EligibilityServiceParams) *EligibilityService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	location := params.Location
	if location == nil {
		location = time.UTC
	}
	return &EligibilityService{
		students: params.Students,
		periods:  params.Periods,
		requests: params.Requests,
		grades:   params.Grades,
		holds:    params.Holds,
		metrics:  params.Metrics,
		logger:   logger,
		location: location,
		now:      time.Now,
	}
}

// Assess evaluates whether the student may request enrollment now. Failures
// loading any input yield eligibility.Unavailable() rather than an error; only
// an empty or unknown student id is reported as an error.
func (s *EligibilityService) Assess(ctx context.Context, studentID string) (*Assessment, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}

	profile, err := s.students.FindProfile(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return s.unavailable(studentID, "student", err, &Assessment{}), nil
	}

	now := s.now().In(s.location)
	assessment := &Assessment{Student: profile}
	in := eligibility.Input{
		StudentID:     profile.ID,
		StudentStatus: eligibility.ParseStudentStatus(profile.Status),
		CourseID:      profile.CourseID,
		Now:           now,
	}
	if profile.CourseID == nil || *profile.CourseID == "" {
		return s.decide(assessment, in), nil
	}

	period, err := s.periods.FindActiveForCourse(ctx, *profile.CourseID)
	if err != nil {
		return s.unavailable(studentID, "period", err, assessment), nil
	}
	if period == nil {
		return s.decide(assessment, in), nil
	}
	assessment.Period = period
	assessment.Target = targetTerm(period, now)
	in.ActivePeriod = &eligibility.Period{
		ID:       period.ID,
		StartAt:  period.StartAt,
		EndAt:    period.EndAt,
		Status:   eligibility.ParsePeriodStatus(string(period.Status)),
		CourseID: period.CourseID,
	}

	latest, err := s.requests.FindLatestForPeriod(ctx, studentID, period.ID)
	if err != nil {
		return s.unavailable(studentID, "request", err, assessment), nil
	}
	if latest != nil {
		if status, ok := eligibility.ParseRequestStatus(string(latest.Status)); ok {
			in.ExistingRequestStatus = &status
		}
	}

	pending, err := s.requests.FindActiveRequest(ctx, studentID, period.ID)
	if err != nil {
		return s.unavailable(studentID, "request", err, assessment), nil
	}
	in.HasPendingRequest = pending != nil

	previous := calendar.PreviousSemester(now)
	missing, err := s.grades.CountMissingFinal(ctx, studentID, previous.AcademicYear, string(previous.Semester))
	if err != nil {
		return s.unavailable(studentID, "grades", err, assessment), nil
	}
	in.MissingFinalGradeCount = missing

	holds, err := s.holds.CountActive(ctx, studentID)
	if err != nil {
		return s.unavailable(studentID, "holds", err, assessment), nil
	}
	in.ActiveHoldCount = holds

	return s.decide(assessment, in), nil
}

func (s *EligibilityService) decide(assessment *Assessment, in eligibility.Input) *Assessment {
	assessment.Result = eligibility.Evaluate(in)
	s.metrics.RecordEligibilityDecision(string(assessment.Result.ReasonCode))
	s.logger.Debug("eligibility evaluated",
		zap.String("student_id", in.StudentID),
		zap.String("reason", string(assessment.Result.ReasonCode)),
	)
	return assessment
}

func (s *EligibilityService) unavailable(studentID, source string, err error, assessment *Assessment) *Assessment {
	s.logger.Warn("eligibility input unavailable",
		zap.String("student_id", studentID),
		zap.String("source", source),
		zap.Error(err),
	)
	s.metrics.RecordEligibilityDataError(source)
	assessment.Result = eligibility.Unavailable()
	assessment.Degraded = true
	s.metrics.RecordEligibilityDecision(string(assessment.Result.ReasonCode))
	return assessment
}

// targetTerm is the period's own term when it names a valid one, otherwise
// the term after the one now falls in.
func targetTerm(period *models.EnrollmentPeriod, now time.Time) calendar.Term {
	if period.AcademicYear != nil && period.Semester != nil {
		if term, err := calendar.ParseTerm(*period.AcademicYear, *period.Semester); err == nil {
			return term
		}
	}
	return calendar.NextSemester(now)
}
