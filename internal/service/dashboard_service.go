package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sis-portal-api/internal/calendar"
	"github.com/noah-isme/sis-portal-api/internal/dto"
	"github.com/noah-isme/sis-portal-api/internal/models"
)

type latestGPAReader interface {
	LatestGPA(ctx context.Context, studentID string) (*models.StudentGPA, error)
}

type latestRequestReader interface {
	FindLatestByStudent(ctx context.Context, studentID string) (*models.EnrollmentRequest, error)
}

// DashboardCacheKey is the cache key of a student's dashboard summary.
func DashboardCacheKey(studentID string) string {
	return fmt.Sprintf("dash:student:%s", studentID)
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students    studentProfileReader
	GPAs        latestGPAReader
	Requests    latestRequestReader
	Eligibility eligibilityAssessor
	Cache       *CacheService
	Logger      *zap.Logger
	CacheTTL    time.Duration
	Location    *time.Location
}

// DashboardService composes the student dashboard.
type DashboardService struct {
	students    studentProfileReader
	gpas        latestGPAReader
	requests    latestRequestReader
	eligibility eligibilityAssessor
	cache       *CacheService
	logger      *zap.Logger
	cacheTTL    time.Duration
	location    *time.Location
	now         func() time.Time
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	location := params.Location
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{
		students:    params.Students,
		gpas:        params.GPAs,
		requests:    params.Requests,
		eligibility: params.Eligibility,
		cache:       params.Cache,
		logger:      logger,
		cacheTTL:    ttl,
		location:    location,
		now:         time.Now,
	}
}

// Student returns the dashboard of studentID and whether the summary came from cache.
func (s *DashboardService) Student(ctx context.Context, studentID string) (*dto.StudentDashboardResponse, bool, error) {
	key := DashboardCacheKey(studentID)

	var summary dto.StudentDashboardSummary
	hit, err := s.cache.Get(ctx, key, &summary)
	if err != nil {
		hit = false
	}
	if !hit {
		composed, err := s.composeSummary(ctx, studentID)
		if err != nil {
			return nil, false, err
		}
		summary = *composed
		if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	assessment, err := s.eligibility.Assess(ctx, studentID)
	if err != nil {
		return nil, false, err
	}

	return &dto.StudentDashboardResponse{
		StudentDashboardSummary: summary,
		Eligibility:             assessment.Result,
	}, hit, nil
}

func (s *DashboardService) composeSummary(ctx context.Context, studentID string) (*dto.StudentDashboardSummary, error) {
	profile, err := loadProfile(ctx, s.students, studentID)
	if err != nil {
		return nil, err
	}
	summary := &dto.StudentDashboardSummary{
		Profile:     *profile,
		CurrentTerm: calendar.ResolveSemester(s.now().In(s.location)),
	}

	if gpa, err := s.gpas.LatestGPA(ctx, studentID); err != nil {
		s.logger.Warn("dashboard gpa unavailable", zap.String("student_id", studentID), zap.Error(err))
	} else {
		summary.LatestGPA = gpa
	}
	if req, err := s.requests.FindLatestByStudent(ctx, studentID); err != nil {
		s.logger.Warn("dashboard latest request unavailable", zap.String("student_id", studentID), zap.Error(err))
	} else {
		summary.LatestRequest = req
	}
	return summary, nil
}
