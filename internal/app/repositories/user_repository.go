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
	"github.com/derin/classpanel/internal/pkg/helpers"
	"github.com/derin/classpanel/internal/pkg/logger"
)

// UserRepository handles database operations for users and their auth rows
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var userColumns = []string{
	"u.id", "u.name", "u.email", "u.email_verified", "u.image", "u.role",
	"u.image_cld_pub_id", "u.created_at", "u.updated_at",
}

// List retrieves users filtered by an exact role and an optional search on
// name or email, newest first.
func (r *UserRepository) List(ctx context.Context, filter UserListFilter) ([]models.User, int64, error) {
	whereCondition := squirrel.And{}
	if filter.Role != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"u.role": filter.Role})
	}
	if filter.Search != "" {
		pattern := helpers.ContainsPattern(filter.Search)
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"u.name": pattern},
			squirrel.ILike{"u.email": pattern},
		})
	}

	countSql, countArgs, err := r.sb.Select("count(*)").
		From("users u").
		Where(whereCondition).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count users query")
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	querySql, queryArgs, err := r.sb.Select(userColumns...).
		From("users u").
		Where(whereCondition).
		OrderBy("u.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(helpers.Offset(filter.Page, filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListByDepartmentAndRole retrieves the teachers or students attached to a
// department. Teachers are reached through the classes they teach, students
// through their enrollments; both paths end at the department's subjects.
func (r *UserRepository) ListByDepartmentAndRole(ctx context.Context, departmentID int64, role models.RoleType, page PageRequest) ([]models.User, int64, error) {
	base := r.sb.Select().From("users u")
	switch role {
	case models.RoleTeacher:
		base = base.
			Join("classes c ON c.teacher_id = u.id").
			Join("subjects s ON c.subject_id = s.id")
	case models.RoleStudent:
		base = base.
			Join("enrollments e ON e.student_id = u.id").
			Join("classes c ON e.class_id = c.id").
			Join("subjects s ON c.subject_id = s.id")
	default:
		return nil, 0, apperrors.ErrInvalidRole
	}
	base = base.Where(squirrel.Eq{"s.department_id": departmentID, "u.role": role})

	countSql, countArgs, err := base.Columns("count(DISTINCT u.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count department users query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count department users: %w", err)
	}

	querySql, queryArgs, err := base.Columns(userColumns...).
		GroupBy(userColumns...).
		OrderBy("u.created_at DESC").
		Limit(uint64(page.Limit)).
		Offset(helpers.Offset(page.Page, page.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build department users query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing department users query")
		return nil, 0, fmt.Errorf("failed to query department users: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GetByID retrieves a user by their identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	querySql, args, err := r.sb.Select(userColumns...).
		From("users u").
		Where(squirrel.Eq{"u.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, querySql, args...).Scan(
		&user.ID, &user.Name, &user.Email, &user.EmailVerified, &user.Image,
		&user.Role, &user.ImageCldPubID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}

// DeleteAll wipes the users table. Seed use only.
func (r *UserRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}

// DeleteAllSessions wipes the sessions table. Seed use only.
func (r *UserRepository) DeleteAllSessions(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// DeleteAllAccounts wipes the accounts table. Seed use only.
func (r *UserRepository) DeleteAllAccounts(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("failed to delete accounts: %w", err)
	}
	return nil
}

// InsertIgnoreConflicts bulk-inserts users, skipping identifiers that
// already exist.
func (r *UserRepository) InsertIgnoreConflicts(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	insert := r.sb.Insert("users").Columns(
		"id", "name", "email", "email_verified", "image", "role", "image_cld_pub_id",
	)
	for _, user := range users {
		insert = insert.Values(
			user.ID, user.Name, user.Email, user.EmailVerified, user.Image,
			user.Role, user.ImageCldPubID,
		)
	}
	insert = insert.Suffix("ON CONFLICT (id) DO NOTHING")

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert users query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting users: %w", err)
	}
	return nil
}

// InsertAccountsIgnoreConflicts bulk-inserts credential rows, skipping
// identifiers that already exist.
func (r *UserRepository) InsertAccountsIgnoreConflicts(ctx context.Context, accounts []models.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	insert := r.sb.Insert("accounts").Columns(
		"id", "user_id", "account_id", "provider_id", "password",
	)
	for _, account := range accounts {
		insert = insert.Values(
			account.ID, account.UserID, account.AccountID,
			account.ProviderID, account.Password,
		)
	}
	// Generated ids never collide; the stable identity of an account is
	// the (provider_id, account_id) pair.
	insert = insert.Suffix("ON CONFLICT (provider_id, account_id) DO NOTHING")

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert accounts query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting accounts: %w", err)
	}
	return nil
}

func collectUsers(rows pgx.Rows) ([]models.User, error) {
	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.EmailVerified, &user.Image,
			&user.Role, &user.ImageCldPubID, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}
