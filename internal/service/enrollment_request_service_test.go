package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-portal-api/internal/eligibility"
	"github.com/noah-isme/sis-portal-api/internal/models"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
)

func newRequestService(f *eligibilityFixture, cache *memoryCache) *EnrollmentRequestService {
	cacheSvc := NewCacheService(cache, f.metrics, 0, nil, true)
	return NewEnrollmentRequestService(f.svc, f.requests, cacheSvc, f.metrics, nil)
}

func TestSubmitCreatesRequestForTargetTerm(t *testing.T) {
	f := newEligibilityFixture()
	cache := newMemoryCache()
	require.NoError(t, cache.Set(context.Background(), DashboardCacheKey("stu-1"), map[string]string{"stale": "yes"}, 0))
	svc := newRequestService(f, cache)

	req, err := svc.Submit(context.Background(), "stu-1")
	require.NoError(t, err)

	assert.Equal(t, models.EnrollmentRequestPending, req.Status)
	assert.Equal(t, "5", req.CourseID)
	assert.Equal(t, "p-1", req.PeriodID)
	assert.Equal(t, "2026-2027", req.AcademicYear)
	assert.Equal(t, "FIRST", req.Semester)
	require.Len(t, f.requests.created, 1)
	assert.Contains(t, cache.deleted, DashboardCacheKey("stu-1"))
}

func TestSubmitRejectsIneligibleStudent(t *testing.T) {
	f := newEligibilityFixture()
	f.holds.count = 1
	svc := newRequestService(f, newMemoryCache())

	_, err := svc.Submit(context.Background(), "stu-1")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotEligible.Code, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, eligibility.ReasonHasHolds, appErr.Details["reasonCode"])
	assert.Empty(t, f.requests.created)
}

func TestSubmitMapsDuplicateToPendingRequest(t *testing.T) {
	f := newEligibilityFixture()
	f.requests.createErr = appErrors.ErrDuplicateRequest
	svc := newRequestService(f, newMemoryCache())

	_, err := svc.Submit(context.Background(), "stu-1")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPendingRequestExists.Code, appErr.Code)
	assert.Equal(t, eligibility.ReasonPendingRequestExists, appErr.Details["reasonCode"])
}

func TestSubmitWhenDataUnavailable(t *testing.T) {
	f := newEligibilityFixture()
	f.periods.err = errors.New("db down")
	svc := newRequestService(f, newMemoryCache())

	_, err := svc.Submit(context.Background(), "stu-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, appErrors.FromError(err).Status)
	assert.Empty(t, f.requests.created)
}

func TestSubmitWrapsCreateFailure(t *testing.T) {
	f := newEligibilityFixture()
	f.requests.createErr = errors.New("insert failed")
	svc := newRequestService(f, newMemoryCache())

	_, err := svc.Submit(context.Background(), "stu-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestListRequests(t *testing.T) {
	f := newEligibilityFixture()
	svc := newRequestService(f, newMemoryCache())

	requests, err := svc.List(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.NotNil(t, requests)
	assert.Empty(t, requests)

	f.requests.history = []models.EnrollmentRequest{{ID: "r-1"}}
	requests, err = svc.List(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Len(t, requests, 1)

	f.requests.historyErr = errors.New("boom")
	_, err = svc.List(context.Background(), "stu-1")
	assert.Error(t, err)
}
