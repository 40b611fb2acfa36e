package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/classpanel/internal/app/models"
)

// The interfaces below are what services depend on; the concrete
// implementations in this package run against PostgreSQL, tests substitute
// in-memory fakes.

// DepartmentListFilter carries the optional predicates of the department list.
type DepartmentListFilter struct {
	Search string
	Page   int
	Limit  int
}

// SubjectListFilter carries the optional predicates of the subject list.
type SubjectListFilter struct {
	Search     string
	Department string
	Page       int
	Limit      int
}

// ClassListFilter carries the optional predicates of the class list.
type ClassListFilter struct {
	Search  string
	Subject string
	Teacher string
	Page    int
	Limit   int
}

// UserListFilter carries the optional predicates of the user list.
type UserListFilter struct {
	Search string
	Role   string
	Page   int
	Limit  int
}

// PageRequest is the pagination window of a sub-resource list.
type PageRequest struct {
	Page  int
	Limit int
}

// DepartmentStore is the data access surface for departments.
type DepartmentStore interface {
	List(ctx context.Context, filter DepartmentListFilter) ([]models.DepartmentWithTotals, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	Create(ctx context.Context, dept *models.Department) (int64, error)
	CountSubjects(ctx context.Context, departmentID int64) (int64, error)
	CountClasses(ctx context.Context, departmentID int64) (int64, error)
	CountEnrolledStudents(ctx context.Context, departmentID int64) (int64, error)

	// Seed support
	DeleteAll(ctx context.Context) error
	InsertIgnoreConflicts(ctx context.Context, depts []models.Department) error
	MapCodesToIDs(ctx context.Context, codes []string) (map[string]int64, error)
}

// SubjectStore is the data access surface for subjects.
type SubjectStore interface {
	List(ctx context.Context, filter SubjectListFilter) ([]models.Subject, int64, error)
	ListByDepartment(ctx context.Context, departmentID int64, page PageRequest) ([]models.Subject, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)

	// Seed support
	DeleteAll(ctx context.Context) error
	InsertIgnoreConflicts(ctx context.Context, subjects []models.Subject) error
	MapCodesToIDs(ctx context.Context, codes []string) (map[string]int64, error)
}

// ClassStore is the data access surface for classes.
type ClassStore interface {
	List(ctx context.Context, filter ClassListFilter) ([]models.Class, int64, error)
	ListByDepartment(ctx context.Context, departmentID int64, page PageRequest) ([]models.Class, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (*models.Class, error)
	GetDetail(ctx context.Context, id int64) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) (int64, error)

	// Seed support
	DeleteAll(ctx context.Context) error
	InsertIgnoreConflicts(ctx context.Context, classes []models.Class) error
	MapInviteCodesToIDs(ctx context.Context, inviteCodes []string) (map[string]int64, error)
}

// UserStore is the data access surface for users and their auth records.
type UserStore interface {
	List(ctx context.Context, filter UserListFilter) ([]models.User, int64, error)
	ListByDepartmentAndRole(ctx context.Context, departmentID int64, role models.RoleType, page PageRequest) ([]models.User, int64, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Seed support
	DeleteAll(ctx context.Context) error
	DeleteAllSessions(ctx context.Context) error
	DeleteAllAccounts(ctx context.Context) error
	InsertIgnoreConflicts(ctx context.Context, users []models.User) error
	InsertAccountsIgnoreConflicts(ctx context.Context, accounts []models.Account) error
}

// EnrollmentStore is the data access surface for enrollments.
type EnrollmentStore interface {
	Exists(ctx context.Context, classID int64, studentID string) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetDetail(ctx context.Context, classID int64, studentID string) (*models.EnrollmentDetail, error)

	// Seed support
	DeleteAll(ctx context.Context) error
	InsertIgnoreConflicts(ctx context.Context, enrollments []models.Enrollment) error
}

// StatsStore is the data access surface for dashboard aggregates.
type StatsStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role models.RoleType) (int64, error)
	CountSubjects(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	CountClasses(ctx context.Context) (int64, error)
	LatestClasses(ctx context.Context, limit int) ([]models.Class, error)
	LatestTeachers(ctx context.Context, limit int) ([]models.User, error)
	UsersByRole(ctx context.Context) ([]models.RoleCount, error)
	SubjectsByDepartment(ctx context.Context) ([]models.DepartmentSubjectCount, error)
	ClassesBySubject(ctx context.Context) ([]models.SubjectClassCount, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	DepartmentRepository *DepartmentRepository
	SubjectRepository    *SubjectRepository
	ClassRepository      *ClassRepository
	UserRepository       *UserRepository
	EnrollmentRepository *EnrollmentRepository
	StatsRepository      *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		DepartmentRepository: NewDepartmentRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		ClassRepository:      NewClassRepository(db),
		UserRepository:       NewUserRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		StatsRepository:      NewStatsRepository(db),
	}
}
