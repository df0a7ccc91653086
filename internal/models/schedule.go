package models

// ScheduleEntry is one class meeting in a student's schedule.
type ScheduleEntry struct {
	ClassroomID string  `db:"classroom_id" json:"classroomId"`
	SubjectID   string  `db:"subject_id" json:"subjectId"`
	SubjectCode string  `db:"subject_code" json:"subjectCode"`
	SubjectName string  `db:"subject_name" json:"subjectName"`
	Units       float64 `db:"units" json:"units"`
	SectionName string  `db:"section_name" json:"sectionName"`
	TeacherName *string `db:"teacher_name" json:"teacherName,omitempty"`
	DayOfWeek   *string `db:"day_of_week" json:"dayOfWeek,omitempty"`
	StartTime   *string `db:"start_time" json:"startTime,omitempty"`
	EndTime     *string `db:"end_time" json:"endTime,omitempty"`
	Room        *string `db:"room" json:"room,omitempty"`
}
