package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/pkg/apperrors"
	"github.com/derin/classpanel/internal/pkg/dberrors"
	"github.com/derin/classpanel/internal/pkg/helpers"
	"github.com/derin/classpanel/internal/pkg/logger"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List retrieves departments with search and pagination. Each row carries
// the subject count produced by the left join.
func (r *DepartmentRepository) List(ctx context.Context, filter DepartmentListFilter) ([]models.DepartmentWithTotals, int64, error) {
	whereCondition := squirrel.And{}
	if filter.Search != "" {
		pattern := helpers.ContainsPattern(filter.Search)
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"d.name": pattern},
			squirrel.ILike{"d.code": pattern},
		})
	}

	countSelect := r.sb.Select("count(*)").From("departments d").Where(whereCondition)
	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count departments query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count departments query")
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	baseSelect := r.sb.Select(
		"d.id", "d.code", "d.name", "d.description", "d.created_at", "d.updated_at",
		"count(s.id) as total_subjects",
	).
		From("departments d").
		LeftJoin("subjects s ON d.id = s.department_id").
		Where(whereCondition).
		GroupBy("d.id", "d.code", "d.name", "d.description", "d.created_at", "d.updated_at").
		OrderBy("d.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(helpers.Offset(filter.Page, filter.Limit))

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list departments query")
		return nil, 0, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []models.DepartmentWithTotals{}
	for rows.Next() {
		var dept models.DepartmentWithTotals
		if err := rows.Scan(
			&dept.ID, &dept.Code, &dept.Name, &dept.Description,
			&dept.CreatedAt, &dept.UpdatedAt, &dept.TotalSubjects,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, dept)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating department rows: %w", err)
	}

	return departments, total, nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := `
		SELECT id, code, name, description, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var dept models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&dept.ID,
		&dept.Code,
		&dept.Name,
		&dept.Description,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &dept, nil
}

// Create inserts a new department and returns the generated id. A unique
// violation on the code column surfaces as ErrDepartmentAlreadyExists.
func (r *DepartmentRepository) Create(ctx context.Context, dept *models.Department) (int64, error) {
	query := `
		INSERT INTO departments (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, dept.Code, dept.Name, dept.Description).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "departments_code_key") {
			return 0, apperrors.ErrDepartmentAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrConflict
		}
		return 0, fmt.Errorf("error inserting department: %w", err)
	}

	dept.ID = id
	return id, nil
}

// CountSubjects counts the subjects belonging to a department.
func (r *DepartmentRepository) CountSubjects(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM subjects WHERE department_id = $1`, departmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count department subjects: %w", err)
	}
	return count, nil
}

// CountClasses counts the classes reached through a department's subjects.
func (r *DepartmentRepository) CountClasses(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT count(c.id)
		FROM classes c
		LEFT JOIN subjects s ON c.subject_id = s.id
		WHERE s.department_id = $1`, departmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count department classes: %w", err)
	}
	return count, nil
}

// CountEnrolledStudents counts the distinct students enrolled in any class
// of the department.
func (r *DepartmentRepository) CountEnrolledStudents(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT count(DISTINCT u.id)
		FROM users u
		LEFT JOIN enrollments e ON u.id = e.student_id
		LEFT JOIN classes c ON e.class_id = c.id
		LEFT JOIN subjects s ON c.subject_id = s.id
		WHERE u.role = 'student' AND s.department_id = $1`, departmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count department students: %w", err)
	}
	return count, nil
}

// DeleteAll wipes the departments table. Seed use only.
func (r *DepartmentRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM departments`); err != nil {
		return fmt.Errorf("failed to delete departments: %w", err)
	}
	return nil
}

// InsertIgnoreConflicts bulk-inserts departments, skipping rows whose code
// already exists.
func (r *DepartmentRepository) InsertIgnoreConflicts(ctx context.Context, depts []models.Department) error {
	if len(depts) == 0 {
		return nil
	}

	insert := r.sb.Insert("departments").Columns("code", "name", "description")
	for _, dept := range depts {
		insert = insert.Values(dept.Code, dept.Name, dept.Description)
	}
	insert = insert.Suffix("ON CONFLICT (code) DO NOTHING")

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert departments query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting departments: %w", err)
	}
	return nil
}

// MapCodesToIDs resolves department codes to their generated identifiers.
func (r *DepartmentRepository) MapCodesToIDs(ctx context.Context, codes []string) (map[string]int64, error) {
	result := make(map[string]int64, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select("id", "code").
		From("departments").
		Where(squirrel.Eq{"code": codes}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build department code lookup: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query department codes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("failed to scan department code row: %w", err)
		}
		result[code] = id
	}
	return result, rows.Err()
}
