// Package seed loads a declarative JSON dataset into the database. The
// dataset references rows by natural keys (department code, subject code,
// class invite code); the loader resolves those to the generated ids phase
// by phase, failing fast on any reference it cannot resolve.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/pkg/logger"
)

const credentialProvider = "credential"

// The loader only needs the wipe/insert/resolve surface of each store, so
// it declares that surface itself rather than depending on the full
// repository interfaces.

type userStore interface {
	DeleteAll(ctx context.Context) error
	DeleteAllSessions(ctx context.Context) error
	DeleteAllAccounts(ctx context.Context) error
	InsertIgnoreConflicts(ctx context.Context, users []models.User) error
	InsertAccountsIgnoreConflicts(ctx context.Context, accounts []models.Account) error
}

type departmentStore interface {
	DeleteAll(ctx context.Context) error
	InsertIgnoreConflicts(ctx context.Context, depts []models.Department) error
	MapCodesToIDs(ctx context.Context, codes []string) (map[string]int64, error)
}

type subjectStore interface {
	DeleteAll(ctx context.Context) error
	InsertIgnoreConflicts(ctx context.Context, subjects []models.Subject) error
	MapCodesToIDs(ctx context.Context, codes []string) (map[string]int64, error)
}

type classStore interface {
	DeleteAll(ctx context.Context) error
	InsertIgnoreConflicts(ctx context.Context, classes []models.Class) error
	MapInviteCodesToIDs(ctx context.Context, inviteCodes []string) (map[string]int64, error)
}

type enrollmentStore interface {
	DeleteAll(ctx context.Context) error
	InsertIgnoreConflicts(ctx context.Context, enrollments []models.Enrollment) error
}

// Loader reconciles a dataset against the database.
type Loader struct {
	users       userStore
	departments departmentStore
	subjects    subjectStore
	classes     classStore
	enrollments enrollmentStore
}

// NewLoader creates a loader over the given repositories.
func NewLoader(repos *repositories.Repositories) *Loader {
	return &Loader{
		users:       repos.UserRepository,
		departments: repos.DepartmentRepository,
		subjects:    repos.SubjectRepository,
		classes:     repos.ClassRepository,
		enrollments: repos.EnrollmentRepository,
	}
}

// Run executes the seed pipeline: wipe, then insert each entity kind in
// dependency order, resolving natural keys between phases. Inserts skip
// rows that already exist, so a rerun converges to the same state.
func (l *Loader) Run(ctx context.Context, dataset *Dataset) error {
	if err := l.wipe(ctx); err != nil {
		return err
	}
	if err := l.loadUsers(ctx, dataset.Users); err != nil {
		return err
	}

	departmentIDs, err := l.loadDepartments(ctx, dataset.Departments)
	if err != nil {
		return err
	}
	subjectIDs, err := l.loadSubjects(ctx, dataset.Subjects, departmentIDs)
	if err != nil {
		return err
	}
	classIDs, err := l.loadClasses(ctx, dataset.Classes, subjectIDs)
	if err != nil {
		return err
	}
	if err := l.loadEnrollments(ctx, dataset.Enrollments, classIDs); err != nil {
		return err
	}

	logger.Info().
		Int("users", len(dataset.Users)).
		Int("departments", len(dataset.Departments)).
		Int("subjects", len(dataset.Subjects)).
		Int("classes", len(dataset.Classes)).
		Int("enrollments", len(dataset.Enrollments)).
		Msg("Seed completed")
	return nil
}

// wipe clears the core tables in dependency order so every run starts from
// the same baseline.
func (l *Loader) wipe(ctx context.Context) error {
	logger.Info().Msg("Wiping existing data")
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"enrollments", l.enrollments.DeleteAll},
		{"classes", l.classes.DeleteAll},
		{"subjects", l.subjects.DeleteAll},
		{"departments", l.departments.DeleteAll},
		{"sessions", l.users.DeleteAllSessions},
		{"accounts", l.users.DeleteAllAccounts},
		{"users", l.users.DeleteAll},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to wipe %s: %w", step.name, err)
		}
	}
	return nil
}

func (l *Loader) loadUsers(ctx context.Context, seedUsers []SeedUser) error {
	users := make([]models.User, 0, len(seedUsers))
	accounts := make([]models.Account, 0, len(seedUsers))

	for _, su := range seedUsers {
		role := models.RoleType(su.Role)
		if !role.IsValid() {
			return fmt.Errorf("user %q has unknown role %q", su.ID, su.Role)
		}
		users = append(users, models.User{
			ID:            su.ID,
			Name:          su.Name,
			Email:         su.Email,
			EmailVerified: su.EmailVerified,
			Role:          role,
		})

		if su.Password == "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for user %q: %w", su.ID, err)
		}
		password := string(hash)
		accounts = append(accounts, models.Account{
			ID:         uuid.NewString(),
			UserID:     su.ID,
			AccountID:  su.ID,
			ProviderID: credentialProvider,
			Password:   &password,
		})
	}

	if err := l.users.InsertIgnoreConflicts(ctx, users); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := l.users.InsertAccountsIgnoreConflicts(ctx, accounts); err != nil {
		return fmt.Errorf("failed to seed accounts: %w", err)
	}
	logger.Info().Int("count", len(users)).Msg("Seeded users")
	return nil
}

func (l *Loader) loadDepartments(ctx context.Context, seedDepartments []SeedDepartment) (map[string]int64, error) {
	departments := make([]models.Department, 0, len(seedDepartments))
	codes := make([]string, 0, len(seedDepartments))
	for _, sd := range seedDepartments {
		departments = append(departments, models.Department{
			Code:        sd.Code,
			Name:        sd.Name,
			Description: sd.Description,
		})
		codes = append(codes, sd.Code)
	}

	if err := l.departments.InsertIgnoreConflicts(ctx, departments); err != nil {
		return nil, fmt.Errorf("failed to seed departments: %w", err)
	}

	ids, err := l.departments.MapCodesToIDs(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve department codes: %w", err)
	}
	for _, code := range codes {
		if _, ok := ids[code]; !ok {
			return nil, fmt.Errorf("department code %q was not found after insert", code)
		}
	}
	logger.Info().Int("count", len(departments)).Msg("Seeded departments")
	return ids, nil
}

func (l *Loader) loadSubjects(ctx context.Context, seedSubjects []SeedSubject, departmentIDs map[string]int64) (map[string]int64, error) {
	subjects := make([]models.Subject, 0, len(seedSubjects))
	codes := make([]string, 0, len(seedSubjects))
	for _, ss := range seedSubjects {
		departmentID, ok := departmentIDs[ss.DepartmentCode]
		if !ok {
			return nil, fmt.Errorf("subject %q references unknown department code %q", ss.Code, ss.DepartmentCode)
		}
		subjects = append(subjects, models.Subject{
			DepartmentID: departmentID,
			Code:         ss.Code,
			Name:         ss.Name,
			Description:  ss.Description,
		})
		codes = append(codes, ss.Code)
	}

	if err := l.subjects.InsertIgnoreConflicts(ctx, subjects); err != nil {
		return nil, fmt.Errorf("failed to seed subjects: %w", err)
	}

	ids, err := l.subjects.MapCodesToIDs(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve subject codes: %w", err)
	}
	for _, code := range codes {
		if _, ok := ids[code]; !ok {
			return nil, fmt.Errorf("subject code %q was not found after insert", code)
		}
	}
	logger.Info().Int("count", len(subjects)).Msg("Seeded subjects")
	return ids, nil
}

func (l *Loader) loadClasses(ctx context.Context, seedClasses []SeedClass, subjectIDs map[string]int64) (map[string]int64, error) {
	classes := make([]models.Class, 0, len(seedClasses))
	inviteCodes := make([]string, 0, len(seedClasses))
	for _, sc := range seedClasses {
		subjectID, ok := subjectIDs[sc.SubjectCode]
		if !ok {
			return nil, fmt.Errorf("class %q references unknown subject code %q", sc.InviteCode, sc.SubjectCode)
		}
		status := models.ClassStatus(sc.Status)
		if status == "" {
			status = models.ClassActive
		}
		capacity := sc.Capacity
		if capacity <= 0 {
			capacity = 50
		}
		schedules := sc.Schedules
		if schedules == nil {
			schedules = []models.Schedule{}
		}
		classes = append(classes, models.Class{
			SubjectID:   subjectID,
			TeacherID:   sc.TeacherID,
			InviteCode:  sc.InviteCode,
			Name:        sc.Name,
			Description: sc.Description,
			Capacity:    capacity,
			Status:      status,
			Schedules:   schedules,
		})
		inviteCodes = append(inviteCodes, sc.InviteCode)
	}

	if err := l.classes.InsertIgnoreConflicts(ctx, classes); err != nil {
		return nil, fmt.Errorf("failed to seed classes: %w", err)
	}

	ids, err := l.classes.MapInviteCodesToIDs(ctx, inviteCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve class invite codes: %w", err)
	}
	for _, code := range inviteCodes {
		if _, ok := ids[code]; !ok {
			return nil, fmt.Errorf("class invite code %q was not found after insert", code)
		}
	}
	logger.Info().Int("count", len(classes)).Msg("Seeded classes")
	return ids, nil
}

func (l *Loader) loadEnrollments(ctx context.Context, seedEnrollments []SeedEnrollment, classIDs map[string]int64) error {
	enrollments := make([]models.Enrollment, 0, len(seedEnrollments))
	for _, se := range seedEnrollments {
		classID, ok := classIDs[se.ClassInviteCode]
		if !ok {
			return fmt.Errorf("enrollment for student %q references unknown class invite code %q", se.StudentID, se.ClassInviteCode)
		}
		enrollments = append(enrollments, models.Enrollment{
			StudentID: se.StudentID,
			ClassID:   classID,
		})
	}

	if err := l.enrollments.InsertIgnoreConflicts(ctx, enrollments); err != nil {
		return fmt.Errorf("failed to seed enrollments: %w", err)
	}
	logger.Info().Int("count", len(enrollments)).Msg("Seeded enrollments")
	return nil
}
