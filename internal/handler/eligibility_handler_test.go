package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-portal-api/internal/calendar"
	"github.com/noah-isme/sis-portal-api/internal/eligibility"
	"github.com/noah-isme/sis-portal-api/internal/models"
	"github.com/noah-isme/sis-portal-api/internal/service"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
)

type fakeAssessor struct {
	result eligibility.Result
	err    error
	asked  []string
}

func (f *fakeAssessor) Assess(_ context.Context, studentID string) (*service.Assessment, error) {
	f.asked = append(f.asked, studentID)
	if f.err != nil {
		return nil, f.err
	}
	return &service.Assessment{Result: f.result}, nil
}

func TestEligibilityCheckDefaultsToCaller(t *testing.T) {
	assessor := &fakeAssessor{result: eligibility.Evaluate(eligibility.Input{})}
	handler := NewEligibilityHandler(assessor)

	c, rec := newContext(http.MethodGet, "/eligibility", nil, studentClaims("stu-1"))
	handler.Check(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"stu-1"}, assessor.asked)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "NoCourse", envelope.Data["reasonCode"])
	assert.Equal(t, false, envelope.Data["canEnroll"])
	assert.Equal(t, true, envelope.Data["buttonDisabled"])
	assert.NotEmpty(t, envelope.Data["message"])
	assert.NotEmpty(t, envelope.Data["actionLabel"])
}

func TestEligibilityCheckUnavailableIsStillOK(t *testing.T) {
	handler := NewEligibilityHandler(&fakeAssessor{result: eligibility.Unavailable()})

	c, rec := newContext(http.MethodGet, "/eligibility?studentId=stu-1", nil, studentClaims("stu-1"))
	handler.Check(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NoActivePeriod", decodeEnvelope(t, rec).Data["reasonCode"])
}

func TestEligibilityCheckAccessControl(t *testing.T) {
	tests := []struct {
		name   string
		claims *models.JWTClaims
		status int
	}{
		{"other student", studentClaims("stu-2"), http.StatusForbidden},
		{"registrar", &models.JWTClaims{UserID: "reg-1", Role: models.RoleRegistrar}, http.StatusOK},
		{"admin", &models.JWTClaims{UserID: "adm-1", Role: models.RoleAdmin}, http.StatusOK},
		{"anonymous", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assessor := &fakeAssessor{result: eligibility.Unavailable()}
			c, rec := newContext(http.MethodGet, "/eligibility?studentId=stu-1", nil, tt.claims)

			NewEligibilityHandler(assessor).Check(c)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, []string{"stu-1"}, assessor.asked)
			} else {
				assert.Empty(t, assessor.asked)
			}
		})
	}
}

func TestEligibilityCheckUnknownStudent(t *testing.T) {
	handler := NewEligibilityHandler(&fakeAssessor{err: appErrors.Clone(appErrors.ErrNotFound, "student not found")})

	c, rec := newContext(http.MethodGet, "/eligibility", nil, studentClaims("ghost"))
	handler.Check(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, appErrors.ErrNotFound.Code, decodeEnvelope(t, rec).Error.Code)
}

type termAssessor struct{}

func (termAssessor) Assess(context.Context, string) (*service.Assessment, error) {
	return &service.Assessment{
		Result: eligibility.Evaluate(eligibility.Input{}),
		Target: calendar.Term{AcademicYear: "2026-2027", Semester: calendar.First},
	}, nil
}

func TestEligibilityCheckReportsTargetTerm(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/eligibility", nil, studentClaims("stu-1"))
	NewEligibilityHandler(termAssessor{}).Check(c)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	term, ok := envelope.Meta["targetTerm"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2026-2027", term["academicYear"])
	assert.Equal(t, "FIRST", term["semester"])
	assert.NotContains(t, envelope.Data, "targetTerm")
}
