package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sis-portal-api/internal/calendar"
	"github.com/noah-isme/sis-portal-api/internal/models"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
	"github.com/noah-isme/sis-portal-api/pkg/export"
)

type gradeReader interface {
	ListByStudentTerm(ctx context.Context, studentID, academicYear, semester string) ([]models.GradeRecord, error)
	FindGPA(ctx context.Context, studentID, academicYear, semester string) (*models.StudentGPA, error)
}

// GradeExport is a rendered grade slip ready for download.
type GradeExport struct {
	FileName    string
	ContentType string
	Body        []byte
}

// GradeService serves a student's grades and grade slips.
type GradeService struct {
	grades   gradeReader
	students studentProfileReader
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

// NewGradeService constructs the service.
func NewGradeService(grades gradeReader, students studentProfileReader, logger *zap.Logger, location *time.Location) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &GradeService{grades: grades, students: students, logger: logger, location: location, now: time.Now}
}

// Report returns the grades of a term, defaulting to the current one. Grades
// that are not yet APPROVED or LOCKED are listed without a value.
func (s *GradeService) Report(ctx context.Context, studentID, academicYear, semester string) (*models.GradeReport, error) {
	term, err := resolveTerm(academicYear, semester, calendar.ResolveSemester(s.now().In(s.location)))
	if err != nil {
		return nil, err
	}

	grades, err := s.grades.ListByStudentTerm(ctx, studentID, term.AcademicYear, string(term.Semester))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}
	visible := make([]models.GradeRecord, len(grades))
	copy(visible, grades)

	report := &models.GradeReport{
		StudentID:    studentID,
		AcademicYear: term.AcademicYear,
		Semester:     string(term.Semester),
		Grades:       visible,
	}
	for i := range visible {
		report.TotalUnits += visible[i].Units
		if !visible[i].Status.Final() {
			visible[i].FinalGrade = nil
			visible[i].Remarks = nil
		}
	}

	gpa, err := s.grades.FindGPA(ctx, studentID, term.AcademicYear, string(term.Semester))
	if err != nil {
		s.logger.Warn("failed to load gpa", zap.String("student_id", studentID), zap.Error(err))
	} else if gpa != nil {
		report.GPA = &gpa.GPA
	}
	return report, nil
}

// Export renders the term's grade slip in the requested format.
func (s *GradeService) Export(ctx context.Context, studentID, academicYear, semester, format string) (*GradeExport, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}

	profile, err := loadProfile(ctx, s.students, studentID)
	if err != nil {
		return nil, err
	}
	report, err := s.Report(ctx, studentID, academicYear, semester)
	if err != nil {
		return nil, err
	}

	slip := buildGradeSlip(profile, report)
	slip.GeneratedAt = s.now().In(s.location)
	body, err := export.Render(f, slip)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render grade slip")
	}
	return &GradeExport{FileName: slip.FileName(f), ContentType: f.ContentType(), Body: body}, nil
}

func buildGradeSlip(profile *models.StudentProfile, report *models.GradeReport) export.GradeSlip {
	slip := export.GradeSlip{
		StudentName:  profile.FullName,
		AcademicYear: report.AcademicYear,
		Semester:     report.Semester,
		Rows:         make([]export.GradeSlipRow, 0, len(report.Grades)),
	}
	if profile.StudentNumber != nil {
		slip.StudentNumber = *profile.StudentNumber
	}
	if profile.CourseName != nil {
		slip.Program = *profile.CourseName
	}
	if profile.SectionName != nil {
		slip.Section = *profile.SectionName
	}
	if report.GPA != nil {
		slip.GPA = strconv.FormatFloat(*report.GPA, 'f', 2, 64)
	}
	for _, g := range report.Grades {
		row := export.GradeSlipRow{
			Code:    g.SubjectCode,
			Subject: g.SubjectName,
			Units:   strconv.FormatFloat(g.Units, 'f', -1, 64),
			Status:  string(g.Status),
		}
		if g.FinalGrade != nil {
			row.Grade = strconv.FormatFloat(*g.FinalGrade, 'f', 2, 64)
		}
		if g.Remarks != nil {
			row.Remarks = *g.Remarks
		}
		slip.Rows = append(slip.Rows, row)
	}
	return slip
}
