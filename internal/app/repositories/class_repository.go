package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
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

// ClassRepository handles database operations for classes
type ClassRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var classColumns = []string{
	"c.id", "c.subject_id", "c.teacher_id", "c.invite_code", "c.name",
	"c.description", "c.capacity", "c.status", "c.banner_url",
	"c.banner_cld_pub_id", "c.schedules", "c.created_at", "c.updated_at",
}

var joinedSubjectColumns = []string{
	"s.id", "s.department_id", "s.code", "s.name", "s.description",
	"s.created_at", "s.updated_at",
}

var joinedTeacherColumns = []string{
	"u.id", "u.name", "u.email", "u.email_verified", "u.image", "u.role",
	"u.image_cld_pub_id", "u.created_at", "u.updated_at",
}

var joinedDepartmentColumns = []string{
	"d.id", "d.code", "d.name", "d.description", "d.created_at", "d.updated_at",
}

// List retrieves classes with search, subject/teacher filters and
// pagination. Search matches class name or invite code; the subject and
// teacher filters match the joined names.
func (r *ClassRepository) List(ctx context.Context, filter ClassListFilter) ([]models.Class, int64, error) {
	whereCondition := squirrel.And{}
	if filter.Search != "" {
		pattern := helpers.ContainsPattern(filter.Search)
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.invite_code": pattern},
		})
	}
	if filter.Subject != "" {
		whereCondition = append(whereCondition,
			squirrel.ILike{"s.name": helpers.ContainsPattern(filter.Subject)})
	}
	if filter.Teacher != "" {
		whereCondition = append(whereCondition,
			squirrel.ILike{"u.name": helpers.ContainsPattern(filter.Teacher)})
	}

	countSelect := r.sb.Select("count(*)").
		From("classes c").
		LeftJoin("subjects s ON c.subject_id = s.id").
		LeftJoin("users u ON c.teacher_id = u.id").
		Where(whereCondition)

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count classes query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count classes query")
		return nil, 0, fmt.Errorf("failed to count classes: %w", err)
	}

	columns := append(append([]string{}, classColumns...), joinedSubjectColumns...)
	columns = append(columns, joinedTeacherColumns...)

	baseSelect := r.sb.Select(columns...).
		From("classes c").
		LeftJoin("subjects s ON c.subject_id = s.id").
		LeftJoin("users u ON c.teacher_id = u.id").
		Where(whereCondition).
		OrderBy("c.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(helpers.Offset(filter.Page, filter.Limit))

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list classes query")
		return nil, 0, fmt.Errorf("failed to query classes: %w", err)
	}
	defer rows.Close()

	classes := []models.Class{}
	for rows.Next() {
		class, err := scanJoinedClass(rows, false)
		if err != nil {
			return nil, 0, err
		}
		classes = append(classes, *class)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating class rows: %w", err)
	}

	return classes, total, nil
}

// ListByDepartment retrieves the classes reached through a department's
// subjects, with subject and teacher attached.
func (r *ClassRepository) ListByDepartment(ctx context.Context, departmentID int64, page PageRequest) ([]models.Class, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT count(c.id)
		FROM classes c
		LEFT JOIN subjects s ON c.subject_id = s.id
		WHERE s.department_id = $1`, departmentID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count department classes: %w", err)
	}

	columns := append(append([]string{}, classColumns...), joinedSubjectColumns...)
	columns = append(columns, joinedTeacherColumns...)

	baseSelect := r.sb.Select(columns...).
		From("classes c").
		LeftJoin("subjects s ON c.subject_id = s.id").
		LeftJoin("users u ON c.teacher_id = u.id").
		Where(squirrel.Eq{"s.department_id": departmentID}).
		OrderBy("c.created_at DESC").
		Limit(uint64(page.Limit)).
		Offset(helpers.Offset(page.Page, page.Limit))

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build department classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query department classes: %w", err)
	}
	defer rows.Close()

	classes := []models.Class{}
	for rows.Next() {
		class, err := scanJoinedClass(rows, false)
		if err != nil {
			return nil, 0, err
		}
		classes = append(classes, *class)
	}
	return classes, total, rows.Err()
}

// GetByID retrieves a bare class row by ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	return r.getOne(ctx, squirrel.Eq{"c.id": id})
}

// GetByInviteCode retrieves a bare class row by its invite code.
func (r *ClassRepository) GetByInviteCode(ctx context.Context, inviteCode string) (*models.Class, error) {
	return r.getOne(ctx, squirrel.Eq{"c.invite_code": inviteCode})
}

func (r *ClassRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Class, error) {
	querySql, args, err := r.sb.Select(classColumns...).
		From("classes c").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	row := r.db.QueryRow(ctx, querySql, args...)

	var class models.Class
	var schedulesRaw []byte
	if err := row.Scan(
		&class.ID, &class.SubjectID, &class.TeacherID, &class.InviteCode,
		&class.Name, &class.Description, &class.Capacity, &class.Status,
		&class.BannerURL, &class.BannerCldPubID, &schedulesRaw,
		&class.CreatedAt, &class.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	if err := unmarshalSchedules(schedulesRaw, &class.Schedules); err != nil {
		return nil, err
	}

	return &class, nil
}

// GetDetail retrieves a class joined with its subject, department and teacher.
func (r *ClassRepository) GetDetail(ctx context.Context, id int64) (*models.Class, error) {
	columns := append(append([]string{}, classColumns...), joinedSubjectColumns...)
	columns = append(columns, joinedTeacherColumns...)
	columns = append(columns, joinedDepartmentColumns...)

	querySql, args, err := r.sb.Select(columns...).
		From("classes c").
		LeftJoin("subjects s ON c.subject_id = s.id").
		LeftJoin("users u ON c.teacher_id = u.id").
		LeftJoin("departments d ON s.department_id = d.id").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build class detail query: %w", err)
	}

	class, err := scanJoinedClass(r.db.QueryRow(ctx, querySql, args...), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

// Create inserts a new class and returns the generated id.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (int64, error) {
	schedules, err := json.Marshal(class.Schedules)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal schedules: %w", err)
	}

	querySql, args, err := r.sb.Insert("classes").
		Columns(
			"subject_id", "teacher_id", "invite_code", "name", "description",
			"capacity", "status", "banner_url", "banner_cld_pub_id", "schedules",
		).
		Values(
			class.SubjectID, class.TeacherID, class.InviteCode, class.Name,
			class.Description, class.Capacity, class.Status, class.BannerURL,
			class.BannerCldPubID, schedules,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create class query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, querySql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting class: %w", err)
	}

	class.ID = id
	return id, nil
}

// DeleteAll wipes the classes table. Seed use only.
func (r *ClassRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM classes`); err != nil {
		return fmt.Errorf("failed to delete classes: %w", err)
	}
	return nil
}

// InsertIgnoreConflicts bulk-inserts classes, skipping rows whose invite
// code already exists. SubjectID must already be resolved.
func (r *ClassRepository) InsertIgnoreConflicts(ctx context.Context, classes []models.Class) error {
	if len(classes) == 0 {
		return nil
	}

	insert := r.sb.Insert("classes").Columns(
		"subject_id", "teacher_id", "invite_code", "name", "description",
		"capacity", "status", "banner_url", "banner_cld_pub_id", "schedules",
	)
	for _, class := range classes {
		schedules, err := json.Marshal(class.Schedules)
		if err != nil {
			return fmt.Errorf("failed to marshal schedules: %w", err)
		}
		insert = insert.Values(
			class.SubjectID, class.TeacherID, class.InviteCode, class.Name,
			class.Description, class.Capacity, class.Status, class.BannerURL,
			class.BannerCldPubID, schedules,
		)
	}
	insert = insert.Suffix("ON CONFLICT (invite_code) DO NOTHING")

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert classes query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting classes: %w", err)
	}
	return nil
}

// MapInviteCodesToIDs resolves class invite codes to generated identifiers.
func (r *ClassRepository) MapInviteCodesToIDs(ctx context.Context, inviteCodes []string) (map[string]int64, error) {
	result := make(map[string]int64, len(inviteCodes))
	if len(inviteCodes) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select("id", "invite_code").
		From("classes").
		Where(squirrel.Eq{"invite_code": inviteCodes}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build invite code lookup: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invite codes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("failed to scan invite code row: %w", err)
		}
		result[code] = id
	}
	return result, rows.Err()
}

func unmarshalSchedules(raw []byte, out *[]models.Schedule) error {
	*out = []models.Schedule{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal schedules: %w", err)
	}
	return nil
}

// scanJoinedClass scans a class row followed by joined subject and teacher
// columns, and department columns when withDepartment is set.
func scanJoinedClass(row rowScanner, withDepartment bool) (*models.Class, error) {
	var class models.Class
	var schedulesRaw []byte

	var subjID, subjDeptID sql.NullInt64
	var subjCode, subjName, subjDescription sql.NullString
	var subjCreatedAt, subjUpdatedAt sql.NullTime

	var teacherID, teacherName, teacherEmail, teacherRole sql.NullString
	var teacherImage, teacherImageCldPubID sql.NullString
	var teacherEmailVerified sql.NullBool
	var teacherCreatedAt, teacherUpdatedAt sql.NullTime

	var deptID sql.NullInt64
	var deptCode, deptName, deptDescription sql.NullString
	var deptCreatedAt, deptUpdatedAt sql.NullTime

	dest := []any{
		&class.ID, &class.SubjectID, &class.TeacherID, &class.InviteCode,
		&class.Name, &class.Description, &class.Capacity, &class.Status,
		&class.BannerURL, &class.BannerCldPubID, &schedulesRaw,
		&class.CreatedAt, &class.UpdatedAt,
		&subjID, &subjDeptID, &subjCode, &subjName, &subjDescription,
		&subjCreatedAt, &subjUpdatedAt,
		&teacherID, &teacherName, &teacherEmail, &teacherEmailVerified,
		&teacherImage, &teacherRole, &teacherImageCldPubID,
		&teacherCreatedAt, &teacherUpdatedAt,
	}
	if withDepartment {
		dest = append(dest,
			&deptID, &deptCode, &deptName, &deptDescription,
			&deptCreatedAt, &deptUpdatedAt,
		)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := unmarshalSchedules(schedulesRaw, &class.Schedules); err != nil {
		return nil, err
	}

	if subjID.Valid {
		subject := &models.Subject{
			ID:           subjID.Int64,
			DepartmentID: subjDeptID.Int64,
			Code:         subjCode.String,
			Name:         subjName.String,
			CreatedAt:    subjCreatedAt.Time,
			UpdatedAt:    subjUpdatedAt.Time,
		}
		if subjDescription.Valid {
			desc := subjDescription.String
			subject.Description = &desc
		}
		class.Subject = subject
	}

	if teacherID.Valid {
		teacher := &models.User{
			ID:            teacherID.String,
			Name:          teacherName.String,
			Email:         teacherEmail.String,
			EmailVerified: teacherEmailVerified.Bool,
			Role:          models.RoleType(teacherRole.String),
			CreatedAt:     teacherCreatedAt.Time,
			UpdatedAt:     teacherUpdatedAt.Time,
		}
		if teacherImage.Valid {
			img := teacherImage.String
			teacher.Image = &img
		}
		if teacherImageCldPubID.Valid {
			pub := teacherImageCldPubID.String
			teacher.ImageCldPubID = &pub
		}
		class.Teacher = teacher
	}

	if withDepartment && deptID.Valid {
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
		class.Department = dept
	}

	return &class, nil
}
