package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/sis-portal-api/internal/eligibility"
	"github.com/noah-isme/sis-portal-api/internal/models"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
)

type eligibilityAssessor interface {
	Assess(ctx context.Context, studentID string) (*Assessment, error)
}

type enrollmentRequestStore interface {
	Create(ctx context.Context, studentID, courseID, periodID, academicYear, semester string) (*models.EnrollmentRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentRequest, error)
}

// EnrollmentRequestService files enrollment requests for eligible students.
type EnrollmentRequestService struct {
	assessor eligibilityAssessor
	requests enrollmentRequestStore
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewEnrollmentRequestService constructs the service.
func NewEnrollmentRequestService(assessor eligibilityAssessor, requests enrollmentRequestStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *EnrollmentRequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentRequestService{assessor: assessor, requests: requests, cache: cache, metrics: metrics, logger: logger}
}

// Submit re-evaluates eligibility and, when the student may enroll, files a
// PENDING request for the active period's target term.
func (s *EnrollmentRequestService) Submit(ctx context.Context, studentID string) (*models.EnrollmentRequest, error) {
	assessment, err := s.assessor.Assess(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if assessment.Degraded {
		return nil, appErrors.Clone(appErrors.ErrDataUnavailable, assessment.Result.Message)
	}
	if !assessment.Result.CanEnroll {
		return nil, notEligible(assessment.Result)
	}

	term := assessment.Target
	req, err := s.requests.Create(ctx, studentID, *assessment.Student.CourseID, assessment.Period.ID, term.AcademicYear, string(term.Semester))
	if err != nil {
		if errors.Is(err, appErrors.ErrDuplicateRequest) {
			message, action := eligibility.Describe(eligibility.ReasonPendingRequestExists)
			return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrPendingRequestExists, message), map[string]interface{}{
				"reasonCode":  eligibility.ReasonPendingRequestExists,
				"actionLabel": action,
			})
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment request")
	}

	s.metrics.RecordRequestSubmitted()
	if err := s.cache.Invalidate(ctx, DashboardCacheKey(studentID)); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.String("student_id", studentID), zap.Error(err))
	}
	s.logger.Info("enrollment request submitted",
		zap.String("student_id", studentID),
		zap.String("request_id", req.ID),
		zap.String("period_id", req.PeriodID),
		zap.String("term", term.String()),
	)
	return req, nil
}

// List returns the student's enrollment requests, newest first.
func (s *EnrollmentRequestService) List(ctx context.Context, studentID string) ([]models.EnrollmentRequest, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}
	requests, err := s.requests.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollment requests")
	}
	if requests == nil {
		requests = []models.EnrollmentRequest{}
	}
	return requests, nil
}

func notEligible(result eligibility.Result) error {
	return appErrors.WithDetails(appErrors.Clone(appErrors.ErrNotEligible, result.Message), map[string]interface{}{
		"reasonCode":  result.ReasonCode,
		"actionLabel": result.ActionLabel,
	})
}
