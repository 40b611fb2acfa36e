package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/pkg/apperrors"
)

const (
	inviteCodeLength  = 7
	inviteCodeCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

	defaultClassCapacity = 50
)

// ClassService implements class business logic
type ClassService struct {
	classRepo   repositories.ClassStore
	subjectRepo repositories.SubjectStore
	userRepo    repositories.UserStore
}

// NewClassService creates a new class service
func NewClassService(
	classRepo repositories.ClassStore,
	subjectRepo repositories.SubjectStore,
	userRepo repositories.UserStore,
) *ClassService {
	return &ClassService{
		classRepo:   classRepo,
		subjectRepo: subjectRepo,
		userRepo:    userRepo,
	}
}

// List returns classes with subject and teacher attached.
func (s *ClassService) List(ctx context.Context, filter repositories.ClassListFilter) ([]models.Class, int64, error) {
	return s.classRepo.List(ctx, filter)
}

// GetDetail returns a class with its subject, department and teacher.
func (s *ClassService) GetDetail(ctx context.Context, id int64) (*models.Class, error) {
	return s.classRepo.GetDetail(ctx, id)
}

// Create registers a new class after checking that the referenced subject
// and teacher exist. The invite code is generated server-side and the
// schedule list starts empty.
func (s *ClassService) Create(ctx context.Context, class *models.Class) (int64, error) {
	if _, err := s.subjectRepo.GetByID(ctx, class.SubjectID); err != nil {
		return 0, err
	}
	teacher, err := s.userRepo.GetByID(ctx, class.TeacherID)
	if err != nil {
		return 0, err
	}
	if teacher.Role != models.RoleTeacher {
		return 0, apperrors.ErrInvalidRole
	}

	class.InviteCode = GenerateInviteCode()
	class.Schedules = []models.Schedule{}
	if class.Status == "" {
		class.Status = models.ClassActive
	}
	switch class.Status {
	case models.ClassActive, models.ClassInactive, models.ClassArchived:
	default:
		return 0, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("invalid class status %q", class.Status))
	}
	if class.Capacity <= 0 {
		class.Capacity = defaultClassCapacity
	}

	return s.classRepo.Create(ctx, class)
}

// GenerateInviteCode produces a short lowercase alphanumeric join code.
// Uniqueness is enforced by the invite_code constraint, not here.
func GenerateInviteCode() string {
	code := make([]byte, inviteCodeLength)
	for i := range code {
		code[i] = inviteCodeCharset[rand.Intn(len(inviteCodeCharset))]
	}
	return string(code)
}
