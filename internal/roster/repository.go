package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	apperrors "retention-workers/internal/common/errors"
	"retention-workers/internal/models"
)

var ErrStudentNotFound = errors.New("student not found")

// columns lists the stored attributes in scan order. is_stem is never stored.
var columns = []string{
	"age", "gender", "state_of_origin", "distance_from_home_km", "marital_status", "has_children",
	"admission_score", "secondary_school_type", "secondary_cgpa",
	"year_of_study", "current_cgpa", "course_load_per_semester", "attendance_percentage",
	"number_of_failed_courses", "number_of_repeated_courses", "semester_gpa_trend",
	"previous_warnings", "probation_status",
	"department", "program_difficulty",
	"scholarship_status", "family_income_level", "fee_payment_status", "has_part_time_job",
	"receives_allowance", "financial_stress_level",
	"library_visits_per_week", "online_platform_usage_hours", "participation_in_clubs", "has_mentor",
	"peer_study_groups", "social_integration_score", "received_academic_counseling",
	"tutoring_sessions_attended", "accommodation_type", "health_status", "stress_level",
	"motivation_level", "career_clarity", "family_support",
}

var selectRecordQuery = "SELECT " + strings.Join(columns, ", ") + " FROM students WHERE student_id = $1"

// Repository reads Feature Records from the student roster. It never writes.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetRecord loads and normalizes the record for studentID.
func (r *Repository) GetRecord(ctx context.Context, studentID string) (models.Record, error) {
	var rec models.Record
	err := r.db.QueryRowContext(ctx, selectRecordQuery, studentID).Scan(scanTargets(&rec)...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		stdErr := apperrors.NewStudentNotFoundError(studentID)
		stdErr.Cause = ErrStudentNotFound
		return models.Record{}, stdErr
	case err != nil:
		if ctx.Err() == context.DeadlineExceeded {
			return models.Record{}, apperrors.NewQueryTimeoutError("get_student_record")
		}
		return models.Record{}, apperrors.NewQueryExecutionFailedError("get_student_record",
			fmt.Errorf("student %s: %w", studentID, err))
	}
	return rec.Normalize(), nil
}

func scanTargets(r *models.Record) []interface{} {
	return []interface{}{
		&r.Age, &r.Gender, &r.StateOfOrigin, &r.DistanceFromHomeKm, &r.MaritalStatus, &r.HasChildren,
		&r.AdmissionScore, &r.SecondarySchoolType, &r.SecondaryCGPA,
		&r.YearOfStudy, &r.CurrentCGPA, &r.CourseLoadPerSemester, &r.AttendancePercentage,
		&r.NumberOfFailedCourses, &r.NumberOfRepeatedCourses, &r.SemesterGPATrend,
		&r.PreviousWarnings, &r.ProbationStatus,
		&r.Department, &r.ProgramDifficulty,
		&r.ScholarshipStatus, &r.FamilyIncomeLevel, &r.FeePaymentStatus, &r.HasPartTimeJob,
		&r.ReceivesAllowance, &r.FinancialStressLevel,
		&r.LibraryVisitsPerWeek, &r.OnlinePlatformUsageHours, &r.ParticipationInClubs, &r.HasMentor,
		&r.PeerStudyGroups, &r.SocialIntegrationScore, &r.ReceivedAcademicCounseling,
		&r.TutoringSessionsAttended, &r.AccommodationType, &r.HealthStatus, &r.StressLevel,
		&r.MotivationLevel, &r.CareerClarity, &r.FamilySupport,
	}
}
