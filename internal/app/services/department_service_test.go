package services

import (
	"context"
	"errors"
	"testing"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/pkg/apperrors"
)

func newDepartmentFixture(t *testing.T) (*DepartmentService, *memDepartmentStore) {
	t.Helper()
	departments := newMemDepartmentStore()
	svc := NewDepartmentService(departments, newMemSubjectStore(), newMemClassStore(), newMemUserStore())
	return svc, departments
}

func TestDepartmentCreateDuplicateCode(t *testing.T) {
	svc, _ := newDepartmentFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &models.Department{Code: "CS", Name: "Computer Science"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.Create(ctx, &models.Department{Code: "CS", Name: "Other"})
	if !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
		t.Fatalf("expected ErrDepartmentAlreadyExists, got %v", err)
	}
}

func TestDepartmentDetailUnknownID(t *testing.T) {
	svc, _ := newDepartmentFixture(t)

	_, err := svc.GetDetail(context.Background(), 404)
	if !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestDepartmentSubResourcesUnknownID(t *testing.T) {
	svc, _ := newDepartmentFixture(t)
	ctx := context.Background()
	page := repositories.PageRequest{Page: 1, Limit: 10}

	if _, _, err := svc.ListSubjects(ctx, 404, page); !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		t.Fatalf("ListSubjects: expected ErrDepartmentNotFound, got %v", err)
	}
	if _, _, err := svc.ListClasses(ctx, 404, page); !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		t.Fatalf("ListClasses: expected ErrDepartmentNotFound, got %v", err)
	}
	if _, _, err := svc.ListUsers(ctx, 404, models.RoleTeacher, page); !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		t.Fatalf("ListUsers: expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestDepartmentUsersRejectsAdminRole(t *testing.T) {
	svc, departments := newDepartmentFixture(t)
	ctx := context.Background()
	id, _ := departments.Create(ctx, &models.Department{Code: "CS", Name: "Computer Science"})

	page := repositories.PageRequest{Page: 1, Limit: 10}
	if _, _, err := svc.ListUsers(ctx, id, models.RoleAdmin, page); !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for admin, got %v", err)
	}
	if _, _, err := svc.ListUsers(ctx, id, models.RoleTeacher, page); err != nil {
		t.Fatalf("teacher role should be accepted, got %v", err)
	}
}

func TestUserListRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newMemUserStore())

	_, _, err := svc.List(context.Background(), repositories.UserListFilter{Role: "janitor"})
	if !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
