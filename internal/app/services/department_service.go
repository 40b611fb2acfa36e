package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/pkg/apperrors"
)

// DepartmentService implements department business logic
type DepartmentService struct {
	departmentRepo repositories.DepartmentStore
	subjectRepo    repositories.SubjectStore
	classRepo      repositories.ClassStore
	userRepo       repositories.UserStore
}

// NewDepartmentService creates a new department service
func NewDepartmentService(
	departmentRepo repositories.DepartmentStore,
	subjectRepo repositories.SubjectStore,
	classRepo repositories.ClassStore,
	userRepo repositories.UserStore,
) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		subjectRepo:    subjectRepo,
		classRepo:      classRepo,
		userRepo:       userRepo,
	}
}

// List returns departments with their subject counts.
func (s *DepartmentService) List(ctx context.Context, filter repositories.DepartmentListFilter) ([]models.DepartmentWithTotals, int64, error) {
	return s.departmentRepo.List(ctx, filter)
}

// DepartmentDetail is a department with its aggregate counts.
type DepartmentDetail struct {
	models.Department
	Totals models.DepartmentTotals `json:"totals"`
}

// GetDetail returns a department and its aggregate counts. The three counts
// are independent queries and run concurrently.
func (s *DepartmentService) GetDetail(ctx context.Context, id int64) (*DepartmentDetail, error) {
	dept, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &DepartmentDetail{Department: *dept}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.departmentRepo.CountSubjects(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to count subjects: %w", err)
		}
		detail.Totals.Subjects = total
		return nil
	})
	g.Go(func() error {
		total, err := s.departmentRepo.CountClasses(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to count classes: %w", err)
		}
		detail.Totals.Classes = total
		return nil
	})
	g.Go(func() error {
		total, err := s.departmentRepo.CountEnrolledStudents(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to count enrolled students: %w", err)
		}
		detail.Totals.EnrolledStudents = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return detail, nil
}

// Create registers a new department. A duplicate code surfaces as a
// conflict.
func (s *DepartmentService) Create(ctx context.Context, dept *models.Department) (int64, error) {
	return s.departmentRepo.Create(ctx, dept)
}

// ListSubjects returns a department's subjects. The department must exist.
func (s *DepartmentService) ListSubjects(ctx context.Context, id int64, page repositories.PageRequest) ([]models.Subject, int64, error) {
	if _, err := s.departmentRepo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.subjectRepo.ListByDepartment(ctx, id, page)
}

// ListClasses returns the classes reached through a department's subjects.
func (s *DepartmentService) ListClasses(ctx context.Context, id int64, page repositories.PageRequest) ([]models.Class, int64, error) {
	if _, err := s.departmentRepo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.classRepo.ListByDepartment(ctx, id, page)
}

// ListUsers returns a department's teachers or students. Only those two
// roles have a join path to a department.
func (s *DepartmentService) ListUsers(ctx context.Context, id int64, role models.RoleType, page repositories.PageRequest) ([]models.User, int64, error) {
	if role != models.RoleTeacher && role != models.RoleStudent {
		return nil, 0, apperrors.ErrInvalidRole
	}
	if _, err := s.departmentRepo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.userRepo.ListByDepartmentAndRole(ctx, id, role, page)
}
