package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/pkg/apperrors"
	"github.com/derin/classpanel/internal/pkg/helpers"
	"github.com/derin/classpanel/internal/pkg/logger"
)

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var subjectJoinedColumns = []string{
	"s.id", "s.department_id", "s.code", "s.name", "s.description",
	"s.created_at", "s.updated_at",
	"d.id", "d.code", "d.name", "d.description", "d.created_at", "d.updated_at",
}

// List retrieves subjects with search, department filter and pagination.
// Search matches subject name or code; the department filter matches the
// joined department name.
func (r *SubjectRepository) List(ctx context.Context, filter SubjectListFilter) ([]models.Subject, int64, error) {
	whereCondition := squirrel.And{}
	if filter.Search != "" {
		pattern := helpers.ContainsPattern(filter.Search)
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"s.name": pattern},
			squirrel.ILike{"s.code": pattern},
		})
	}
	if filter.Department != "" {
		whereCondition = append(whereCondition,
			squirrel.ILike{"d.name": helpers.ContainsPattern(filter.Department)})
	}

	countSelect := r.sb.Select("count(*)").
		From("subjects s").
		LeftJoin("departments d ON s.department_id = d.id").
		Where(whereCondition)

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count subjects query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count subjects query")
		return nil, 0, fmt.Errorf("failed to count subjects: %w", err)
	}

	baseSelect := r.sb.Select(subjectJoinedColumns...).
		From("subjects s").
		LeftJoin("departments d ON s.department_id = d.id").
		Where(whereCondition).
		OrderBy("s.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(helpers.Offset(filter.Page, filter.Limit))

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list subjects query")
		return nil, 0, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		subject, err := scanJoinedSubject(rows)
		if err != nil {
			return nil, 0, err
		}
		subjects = append(subjects, *subject)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating subject rows: %w", err)
	}

	return subjects, total, nil
}

// ListByDepartment retrieves a department's subjects with pagination.
func (r *SubjectRepository) ListByDepartment(ctx context.Context, departmentID int64, page PageRequest) ([]models.Subject, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM subjects WHERE department_id = $1`, departmentID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count department subjects: %w", err)
	}

	baseSelect := r.sb.Select(
		"id", "department_id", "code", "name", "description", "created_at", "updated_at",
	).
		From("subjects").
		Where(squirrel.Eq{"department_id": departmentID}).
		OrderBy("created_at DESC").
		Limit(uint64(page.Limit)).
		Offset(helpers.Offset(page.Page, page.Limit))

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build department subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query department subjects: %w", err)
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(
			&subject.ID, &subject.DepartmentID, &subject.Code, &subject.Name,
			&subject.Description, &subject.CreatedAt, &subject.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan subject row: %w", err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, total, rows.Err()
}

// GetByID retrieves a subject by its identifier.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	querySql, args, err := r.sb.Select(
		"id", "department_id", "code", "name", "description", "created_at", "updated_at",
	).
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	var subject models.Subject
	err = r.db.QueryRow(ctx, querySql, args...).Scan(
		&subject.ID, &subject.DepartmentID, &subject.Code, &subject.Name,
		&subject.Description, &subject.CreatedAt, &subject.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return &subject, nil
}

// DeleteAll wipes the subjects table. Seed use only.
func (r *SubjectRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM subjects`); err != nil {
		return fmt.Errorf("failed to delete subjects: %w", err)
	}
	return nil
}

// InsertIgnoreConflicts bulk-inserts subjects, skipping rows whose code
// already exists. DepartmentID must already be resolved.
func (r *SubjectRepository) InsertIgnoreConflicts(ctx context.Context, subjects []models.Subject) error {
	if len(subjects) == 0 {
		return nil
	}

	insert := r.sb.Insert("subjects").Columns("department_id", "code", "name", "description")
	for _, subject := range subjects {
		insert = insert.Values(subject.DepartmentID, subject.Code, subject.Name, subject.Description)
	}
	insert = insert.Suffix("ON CONFLICT (code) DO NOTHING")

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert subjects query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting subjects: %w", err)
	}
	return nil
}

// MapCodesToIDs resolves subject codes to their generated identifiers.
func (r *SubjectRepository) MapCodesToIDs(ctx context.Context, codes []string) (map[string]int64, error) {
	result := make(map[string]int64, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select("id", "code").
		From("subjects").
		Where(squirrel.Eq{"code": codes}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build subject code lookup: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subject codes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("failed to scan subject code row: %w", err)
		}
		result[code] = id
	}
	return result, rows.Err()
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanJoinedSubject scans a subject row with its left-joined department.
func scanJoinedSubject(row rowScanner) (*models.Subject, error) {
	var subject models.Subject
	var deptID sql.NullInt64
	var deptCode, deptName, deptDescription sql.NullString
	var deptCreatedAt, deptUpdatedAt sql.NullTime

	if err := row.Scan(
		&subject.ID, &subject.DepartmentID, &subject.Code, &subject.Name,
		&subject.Description, &subject.CreatedAt, &subject.UpdatedAt,
		&deptID, &deptCode, &deptName, &deptDescription, &deptCreatedAt, &deptUpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan subject row: %w", err)
	}

	if deptID.Valid {
		dept := &models.Department{
			ID:        deptID.Int64,
			Code:      deptCode.String,
			Name:      deptName.String,
			CreatedAt: deptCreatedAt.Time,
			UpdatedAt: deptUpdatedAt.Time,
		}
		if deptDescription.Valid {
			desc := deptDescription.String
			dept.Description = &desc
		}
		subject.Department = dept
	}

	return &subject, nil
}
