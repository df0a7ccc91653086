package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-portal-api/internal/eligibility"
	"github.com/noah-isme/sis-portal-api/internal/models"
)

func newDashboardFixture(cache *memoryCache) (*DashboardService, *eligibilityFixture) {
	f := newEligibilityFixture()
	f.grades.gpa = &models.StudentGPA{AcademicYear: "2025-2026", Semester: "SECOND", GPA: 1.75}
	svc := NewDashboardService(DashboardServiceParams{
		Students:    f.students,
		GPAs:        f.grades,
		Requests:    f.requests,
		Eligibility: f.svc,
		Cache:       NewCacheService(cache, f.metrics, 0, nil, true),
	})
	svc.now = func() time.Time { return assessNow }
	return svc, f
}

func TestStudentDashboardCachesSummaryButNotEligibility(t *testing.T) {
	cache := newMemoryCache()
	svc, f := newDashboardFixture(cache)
	ctx := context.Background()

	first, hit, err := svc.Student(ctx, "stu-1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "Ana Cruz", first.Profile.FullName)
	require.NotNil(t, first.LatestGPA)
	assert.Equal(t, eligibility.ReasonEligible, first.Eligibility.ReasonCode)
	assert.Contains(t, cache.items, DashboardCacheKey("stu-1"))

	f.holds.count = 2
	second, hit, err := svc.Student(ctx, "stu-1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.Profile, second.Profile)
	assert.Equal(t, eligibility.ReasonHasHolds, second.Eligibility.ReasonCode)
}

func TestStudentDashboardWithoutCache(t *testing.T) {
	f := newEligibilityFixture()
	svc := NewDashboardService(DashboardServiceParams{
		Students:    f.students,
		GPAs:        f.grades,
		Requests:    f.requests,
		Eligibility: f.svc,
	})

	resp, hit, err := svc.Student(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, resp.LatestGPA)
}

func TestStudentDashboardToleratesGPAFailure(t *testing.T) {
	svc, f := newDashboardFixture(newMemoryCache())
	f.grades.gpaErr = errors.New("no gpa table")

	resp, _, err := svc.Student(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Nil(t, resp.LatestGPA)
}
