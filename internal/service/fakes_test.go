package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/noah-isme/sis-portal-api/internal/models"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

type fakeStudents struct {
	profile *models.StudentProfile
	err     error
	calls   int
}

func (f *fakeStudents) FindProfile(context.Context, string) (*models.StudentProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.profile
	return &copied, nil
}

type fakePeriods struct {
	period *models.EnrollmentPeriod
	err    error
	calls  int
}

func (f *fakePeriods) FindActiveForCourse(context.Context, string) (*models.EnrollmentPeriod, error) {
	f.calls++
	return f.period, f.err
}

type fakeRequests struct {
	pending    *models.EnrollmentRequest
	latest     *models.EnrollmentRequest
	findErr    error
	created    []models.EnrollmentRequest
	createErr  error
	history    []models.EnrollmentRequest
	historyErr error
}

func (f *fakeRequests) FindActiveRequest(context.Context, string, string) (*models.EnrollmentRequest, error) {
	return f.pending, f.findErr
}

func (f *fakeRequests) FindLatestForPeriod(context.Context, string, string) (*models.EnrollmentRequest, error) {
	return f.latest, f.findErr
}

func (f *fakeRequests) FindLatestByStudent(context.Context, string) (*models.EnrollmentRequest, error) {
	return f.latest, f.findErr
}

func (f *fakeRequests) Create(_ context.Context, studentID, courseID, periodID, academicYear, semester string) (*models.EnrollmentRequest, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	req := models.EnrollmentRequest{
		ID:           "req-new",
		StudentID:    studentID,
		CourseID:     courseID,
		PeriodID:     periodID,
		AcademicYear: academicYear,
		Semester:     semester,
		Status:       models.EnrollmentRequestPending,
		RequestedAt:  time.Now().UTC(),
	}
	f.created = append(f.created, req)
	return &req, nil
}

func (f *fakeRequests) ListByStudent(context.Context, string) ([]models.EnrollmentRequest, error) {
	return f.history, f.historyErr
}

type gradeQuery struct {
	academicYear string
	semester     string
}

type fakeGrades struct {
	missing    int
	missingErr error
	asked      []gradeQuery
	records    []models.GradeRecord
	listErr    error
	gpa        *models.StudentGPA
	gpaErr     error
}

func (f *fakeGrades) CountMissingFinal(_ context.Context, _ string, academicYear, semester string) (int, error) {
	f.asked = append(f.asked, gradeQuery{academicYear, semester})
	return f.missing, f.missingErr
}

func (f *fakeGrades) ListByStudentTerm(_ context.Context, _ string, academicYear, semester string) ([]models.GradeRecord, error) {
	f.asked = append(f.asked, gradeQuery{academicYear, semester})
	return f.records, f.listErr
}

func (f *fakeGrades) FindGPA(context.Context, string, string, string) (*models.StudentGPA, error) {
	return f.gpa, f.gpaErr
}

func (f *fakeGrades) LatestGPA(context.Context, string) (*models.StudentGPA, error) {
	return f.gpa, f.gpaErr
}

type fakeHolds struct {
	count int
	err   error
}

func (f *fakeHolds) CountActive(context.Context, string) (int, error) {
	return f.count, f.err
}

// memoryCache is an in-process CacheRepository.
type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.items, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}
