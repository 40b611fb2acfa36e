package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/pkg/logger"
)

// StatsRepository handles aggregate queries for the dashboard
type StatsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StatsRepository) countTable(ctx context.Context, table string) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, table)).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return total, nil
}

// CountUsers returns the total number of users.
func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.countTable(ctx, "users")
}

// CountUsersByRole returns the number of users holding the given role.
func (r *StatsRepository) CountUsersByRole(ctx context.Context, role models.RoleType) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE role = $1`, role).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return total, nil
}

// CountSubjects returns the total number of subjects.
func (r *StatsRepository) CountSubjects(ctx context.Context) (int64, error) {
	return r.countTable(ctx, "subjects")
}

// CountDepartments returns the total number of departments.
func (r *StatsRepository) CountDepartments(ctx context.Context) (int64, error) {
	return r.countTable(ctx, "departments")
}

// CountClasses returns the total number of classes.
func (r *StatsRepository) CountClasses(ctx context.Context) (int64, error) {
	return r.countTable(ctx, "classes")
}

// LatestClasses returns the most recently created classes with subject and
// teacher attached.
func (r *StatsRepository) LatestClasses(ctx context.Context, limit int) ([]models.Class, error) {
	columns := append(append([]string{}, classColumns...), joinedSubjectColumns...)
	columns = append(columns, joinedTeacherColumns...)

	querySql, args, err := r.sb.Select(columns...).
		From("classes c").
		LeftJoin("subjects s ON c.subject_id = s.id").
		LeftJoin("users u ON c.teacher_id = u.id").
		OrderBy("c.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build latest classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing latest classes query")
		return nil, fmt.Errorf("failed to query latest classes: %w", err)
	}
	defer rows.Close()

	classes := []models.Class{}
	for rows.Next() {
		class, err := scanJoinedClass(rows, false)
		if err != nil {
			return nil, err
		}
		classes = append(classes, *class)
	}
	return classes, rows.Err()
}

// LatestTeachers returns the most recently created teacher accounts.
func (r *StatsRepository) LatestTeachers(ctx context.Context, limit int) ([]models.User, error) {
	querySql, args, err := r.sb.Select(userColumns...).
		From("users u").
		Where(squirrel.Eq{"u.role": models.RoleTeacher}).
		OrderBy("u.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build latest teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing latest teachers query")
		return nil, fmt.Errorf("failed to query latest teachers: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// UsersByRole returns the user count per role.
func (r *StatsRepository) UsersByRole(ctx context.Context) ([]models.RoleCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT role, count(*) AS total
		FROM users
		GROUP BY role
		ORDER BY role`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}
	defer rows.Close()

	buckets := []models.RoleCount{}
	for rows.Next() {
		var bucket models.RoleCount
		if err := rows.Scan(&bucket.Role, &bucket.Total); err != nil {
			return nil, fmt.Errorf("failed to scan role bucket: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	return buckets, rows.Err()
}

// SubjectsByDepartment returns the subject count per department, including
// departments with no subjects.
func (r *StatsRepository) SubjectsByDepartment(ctx context.Context) ([]models.DepartmentSubjectCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT d.id, d.name, count(s.id) AS total_subjects
		FROM departments d
		LEFT JOIN subjects s ON s.department_id = d.id
		GROUP BY d.id, d.name
		ORDER BY d.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects by department: %w", err)
	}
	defer rows.Close()

	buckets := []models.DepartmentSubjectCount{}
	for rows.Next() {
		var bucket models.DepartmentSubjectCount
		if err := rows.Scan(&bucket.DepartmentID, &bucket.DepartmentName, &bucket.TotalSubjects); err != nil {
			return nil, fmt.Errorf("failed to scan department bucket: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	return buckets, rows.Err()
}

// ClassesBySubject returns the class count per subject, including subjects
// with no classes.
func (r *StatsRepository) ClassesBySubject(ctx context.Context) ([]models.SubjectClassCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.name, count(c.id) AS total_classes
		FROM subjects s
		LEFT JOIN classes c ON c.subject_id = s.id
		GROUP BY s.id, s.name
		ORDER BY s.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes by subject: %w", err)
	}
	defer rows.Close()

	buckets := []models.SubjectClassCount{}
	for rows.Next() {
		var bucket models.SubjectClassCount
		if err := rows.Scan(&bucket.SubjectID, &bucket.SubjectName, &bucket.TotalClasses); err != nil {
			return nil, fmt.Errorf("failed to scan subject bucket: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	return buckets, rows.Err()
}
