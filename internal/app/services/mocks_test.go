package services

import (
	"context"
	"fmt"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/pkg/apperrors"
)

// In-memory stand-ins for the repository interfaces. Only what the service
// tests touch is implemented with real behavior.

type memDepartmentStore struct {
	departments map[int64]models.Department
	nextID      int64
}

func newMemDepartmentStore() *memDepartmentStore {
	return &memDepartmentStore{departments: map[int64]models.Department{}, nextID: 1}
}

func (m *memDepartmentStore) List(ctx context.Context, filter repositories.DepartmentListFilter) ([]models.DepartmentWithTotals, int64, error) {
	rows := []models.DepartmentWithTotals{}
	for _, dept := range m.departments {
		rows = append(rows, models.DepartmentWithTotals{Department: dept})
	}
	return rows, int64(len(rows)), nil
}

func (m *memDepartmentStore) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	dept, ok := m.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return &dept, nil
}

func (m *memDepartmentStore) Create(ctx context.Context, dept *models.Department) (int64, error) {
	for _, existing := range m.departments {
		if existing.Code == dept.Code {
			return 0, apperrors.ErrDepartmentAlreadyExists
		}
	}
	dept.ID = m.nextID
	m.nextID++
	m.departments[dept.ID] = *dept
	return dept.ID, nil
}

func (m *memDepartmentStore) CountSubjects(ctx context.Context, departmentID int64) (int64, error) {
	return 0, nil
}
func (m *memDepartmentStore) CountClasses(ctx context.Context, departmentID int64) (int64, error) {
	return 0, nil
}
func (m *memDepartmentStore) CountEnrolledStudents(ctx context.Context, departmentID int64) (int64, error) {
	return 0, nil
}
func (m *memDepartmentStore) DeleteAll(ctx context.Context) error {
	m.departments = map[int64]models.Department{}
	return nil
}
func (m *memDepartmentStore) InsertIgnoreConflicts(ctx context.Context, depts []models.Department) error {
	for _, dept := range depts {
		if _, err := m.Create(ctx, &dept); err != nil && err != apperrors.ErrDepartmentAlreadyExists {
			return err
		}
	}
	return nil
}
func (m *memDepartmentStore) MapCodesToIDs(ctx context.Context, codes []string) (map[string]int64, error) {
	result := map[string]int64{}
	for _, dept := range m.departments {
		result[dept.Code] = dept.ID
	}
	filtered := map[string]int64{}
	for _, code := range codes {
		if id, ok := result[code]; ok {
			filtered[code] = id
		}
	}
	return filtered, nil
}

type memSubjectStore struct {
	subjects map[int64]models.Subject
	nextID   int64
}

func newMemSubjectStore() *memSubjectStore {
	return &memSubjectStore{subjects: map[int64]models.Subject{}, nextID: 1}
}

func (m *memSubjectStore) add(subject models.Subject) models.Subject {
	subject.ID = m.nextID
	m.nextID++
	m.subjects[subject.ID] = subject
	return subject
}

func (m *memSubjectStore) List(ctx context.Context, filter repositories.SubjectListFilter) ([]models.Subject, int64, error) {
	rows := []models.Subject{}
	for _, subject := range m.subjects {
		rows = append(rows, subject)
	}
	return rows, int64(len(rows)), nil
}

func (m *memSubjectStore) ListByDepartment(ctx context.Context, departmentID int64, page repositories.PageRequest) ([]models.Subject, int64, error) {
	rows := []models.Subject{}
	for _, subject := range m.subjects {
		if subject.DepartmentID == departmentID {
			rows = append(rows, subject)
		}
	}
	return rows, int64(len(rows)), nil
}

func (m *memSubjectStore) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, ok := m.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return &subject, nil
}

func (m *memSubjectStore) DeleteAll(ctx context.Context) error {
	m.subjects = map[int64]models.Subject{}
	return nil
}
func (m *memSubjectStore) InsertIgnoreConflicts(ctx context.Context, subjects []models.Subject) error {
	for _, subject := range subjects {
		exists := false
		for _, existing := range m.subjects {
			if existing.Code == subject.Code {
				exists = true
				break
			}
		}
		if !exists {
			m.add(subject)
		}
	}
	return nil
}
func (m *memSubjectStore) MapCodesToIDs(ctx context.Context, codes []string) (map[string]int64, error) {
	result := map[string]int64{}
	for _, subject := range m.subjects {
		for _, code := range codes {
			if subject.Code == code {
				result[code] = subject.ID
			}
		}
	}
	return result, nil
}

type memClassStore struct {
	classes map[int64]models.Class
	nextID  int64
}

func newMemClassStore() *memClassStore {
	return &memClassStore{classes: map[int64]models.Class{}, nextID: 1}
}

func (m *memClassStore) List(ctx context.Context, filter repositories.ClassListFilter) ([]models.Class, int64, error) {
	rows := []models.Class{}
	for _, class := range m.classes {
		rows = append(rows, class)
	}
	return rows, int64(len(rows)), nil
}

func (m *memClassStore) ListByDepartment(ctx context.Context, departmentID int64, page repositories.PageRequest) ([]models.Class, int64, error) {
	return []models.Class{}, 0, nil
}

func (m *memClassStore) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	class, ok := m.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	return &class, nil
}

func (m *memClassStore) GetByInviteCode(ctx context.Context, inviteCode string) (*models.Class, error) {
	for _, class := range m.classes {
		if class.InviteCode == inviteCode {
			return &class, nil
		}
	}
	return nil, apperrors.ErrClassNotFound
}

func (m *memClassStore) GetDetail(ctx context.Context, id int64) (*models.Class, error) {
	return m.GetByID(ctx, id)
}

func (m *memClassStore) Create(ctx context.Context, class *models.Class) (int64, error) {
	class.ID = m.nextID
	m.nextID++
	m.classes[class.ID] = *class
	return class.ID, nil
}

func (m *memClassStore) DeleteAll(ctx context.Context) error {
	m.classes = map[int64]models.Class{}
	return nil
}
func (m *memClassStore) InsertIgnoreConflicts(ctx context.Context, classes []models.Class) error {
	for i := range classes {
		if _, err := m.GetByInviteCode(ctx, classes[i].InviteCode); err == nil {
			continue
		}
		class := classes[i]
		m.Create(ctx, &class)
	}
	return nil
}
func (m *memClassStore) MapInviteCodesToIDs(ctx context.Context, inviteCodes []string) (map[string]int64, error) {
	result := map[string]int64{}
	for _, code := range inviteCodes {
		if class, err := m.GetByInviteCode(ctx, code); err == nil {
			result[code] = class.ID
		}
	}
	return result, nil
}

type memUserStore struct {
	users map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]models.User{}}
}

func (m *memUserStore) List(ctx context.Context, filter repositories.UserListFilter) ([]models.User, int64, error) {
	rows := []models.User{}
	for _, user := range m.users {
		if filter.Role != "" && string(user.Role) != filter.Role {
			continue
		}
		rows = append(rows, user)
	}
	return rows, int64(len(rows)), nil
}

func (m *memUserStore) ListByDepartmentAndRole(ctx context.Context, departmentID int64, role models.RoleType, page repositories.PageRequest) ([]models.User, int64, error) {
	return []models.User{}, 0, nil
}

func (m *memUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

func (m *memUserStore) DeleteAll(ctx context.Context) error {
	m.users = map[string]models.User{}
	return nil
}
func (m *memUserStore) DeleteAllSessions(ctx context.Context) error { return nil }
func (m *memUserStore) DeleteAllAccounts(ctx context.Context) error { return nil }
func (m *memUserStore) InsertIgnoreConflicts(ctx context.Context, users []models.User) error {
	for _, user := range users {
		if _, ok := m.users[user.ID]; !ok {
			m.users[user.ID] = user
		}
	}
	return nil
}
func (m *memUserStore) InsertAccountsIgnoreConflicts(ctx context.Context, accounts []models.Account) error {
	return nil
}

type memEnrollmentStore struct {
	pairs   map[string]bool
	classes *memClassStore
}

func newMemEnrollmentStore(classes *memClassStore) *memEnrollmentStore {
	return &memEnrollmentStore{pairs: map[string]bool{}, classes: classes}
}

func enrollmentKey(classID int64, studentID string) string {
	return fmt.Sprintf("%s/%d", studentID, classID)
}

func (m *memEnrollmentStore) Exists(ctx context.Context, classID int64, studentID string) (bool, error) {
	return m.pairs[enrollmentKey(classID, studentID)], nil
}

func (m *memEnrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) error {
	key := enrollmentKey(enrollment.ClassID, enrollment.StudentID)
	if m.pairs[key] {
		return apperrors.ErrAlreadyEnrolled
	}
	m.pairs[key] = true
	return nil
}

func (m *memEnrollmentStore) GetDetail(ctx context.Context, classID int64, studentID string) (*models.EnrollmentDetail, error) {
	class, err := m.classes.GetDetail(ctx, classID)
	if err != nil {
		return nil, err
	}
	return &models.EnrollmentDetail{
		Enrollment: models.Enrollment{StudentID: studentID, ClassID: classID},
		Class:      class,
	}, nil
}

func (m *memEnrollmentStore) DeleteAll(ctx context.Context) error {
	m.pairs = map[string]bool{}
	return nil
}
func (m *memEnrollmentStore) InsertIgnoreConflicts(ctx context.Context, enrollments []models.Enrollment) error {
	for _, enrollment := range enrollments {
		m.pairs[enrollmentKey(enrollment.ClassID, enrollment.StudentID)] = true
	}
	return nil
}
