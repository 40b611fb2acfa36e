package services

import (
	"context"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/pkg/apperrors"
)

// EnrollmentService implements enrollment business logic
type EnrollmentService struct {
	enrollmentRepo repositories.EnrollmentStore
	classRepo      repositories.ClassStore
	userRepo       repositories.UserStore
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	enrollmentRepo repositories.EnrollmentStore,
	classRepo repositories.ClassStore,
	userRepo repositories.UserStore,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		classRepo:      classRepo,
		userRepo:       userRepo,
	}
}

// Enroll adds a student to a class by class id and returns the joined
// enrollment detail.
func (s *EnrollmentService) Enroll(ctx context.Context, classID int64, studentID string) (*models.EnrollmentDetail, error) {
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		return nil, err
	}
	return s.enroll(ctx, classID, studentID)
}

// Join adds a student to the class identified by an invite code.
func (s *EnrollmentService) Join(ctx context.Context, inviteCode, studentID string) (*models.EnrollmentDetail, error) {
	class, err := s.classRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	return s.enroll(ctx, class.ID, studentID)
}

func (s *EnrollmentService) enroll(ctx context.Context, classID int64, studentID string) (*models.EnrollmentDetail, error) {
	if _, err := s.userRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, classID, studentID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	// A concurrent join can still win between the check and the insert;
	// the repository maps the resulting unique violation to the same
	// already-enrolled error.
	enrollment := &models.Enrollment{StudentID: studentID, ClassID: classID}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	return s.enrollmentRepo.GetDetail(ctx, classID, studentID)
}
