package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/pkg/apperrors"
	"github.com/derin/classpanel/internal/pkg/dberrors"
	"github.com/derin/classpanel/internal/pkg/logger"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db      *pgxpool.Pool
	sb      squirrel.StatementBuilderType
	classes *ClassRepository
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db:      db,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		classes: NewClassRepository(db),
	}
}

// Exists reports whether the student is already enrolled in the class.
func (r *EnrollmentRepository) Exists(ctx context.Context, classID int64, studentID string) (bool, error) {
	querySql, args, err := r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"class_id": classID, "student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enrollment exists query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to query enrollment: %w", err)
	}
	defer rows.Close()

	exists := rows.Next()
	return exists, rows.Err()
}

// Create inserts an enrollment. A duplicate pair surfaces as
// apperrors.ErrAlreadyEnrolled so concurrent joins lose cleanly.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	querySql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "class_id").
		Values(enrollment.StudentID, enrollment.ClassID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, querySql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyEnrolled
		}
		// The student or class can disappear between the service's
		// existence check and this insert.
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error inserting enrollment")
		return fmt.Errorf("error inserting enrollment: %w", err)
	}
	return nil
}

// GetDetail retrieves an enrollment together with its class, subject,
// department and teacher.
func (r *EnrollmentRepository) GetDetail(ctx context.Context, classID int64, studentID string) (*models.EnrollmentDetail, error) {
	class, err := r.classes.GetDetail(ctx, classID)
	if err != nil {
		return nil, err
	}

	detail := &models.EnrollmentDetail{
		Enrollment: models.Enrollment{StudentID: studentID, ClassID: classID},
		Class:      class,
		Subject:    class.Subject,
		Department: class.Department,
		Teacher:    class.Teacher,
	}
	return detail, nil
}

// DeleteAll wipes the enrollments table. Seed use only.
func (r *EnrollmentRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM enrollments`); err != nil {
		return fmt.Errorf("failed to delete enrollments: %w", err)
	}
	return nil
}

// InsertIgnoreConflicts bulk-inserts enrollments, skipping pairs that
// already exist.
func (r *EnrollmentRepository) InsertIgnoreConflicts(ctx context.Context, enrollments []models.Enrollment) error {
	if len(enrollments) == 0 {
		return nil
	}

	insert := r.sb.Insert("enrollments").Columns("student_id", "class_id")
	for _, enrollment := range enrollments {
		insert = insert.Values(enrollment.StudentID, enrollment.ClassID)
	}
	insert = insert.Suffix("ON CONFLICT (student_id, class_id) DO NOTHING")

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert enrollments query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting enrollments: %w", err)
	}
	return nil
}
