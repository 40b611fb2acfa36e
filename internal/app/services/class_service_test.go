package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/pkg/apperrors"
)

func newClassFixture(t *testing.T) (*ClassService, *memSubjectStore, *memUserStore) {
	t.Helper()
	classes := newMemClassStore()
	subjects := newMemSubjectStore()
	users := newMemUserStore()
	return NewClassService(classes, subjects, users), subjects, users
}

func TestCreateClassAssignsInviteCodeAndDefaults(t *testing.T) {
	svc, subjects, users := newClassFixture(t)
	ctx := context.Background()

	subject := subjects.add(models.Subject{Code: "CS101", Name: "Intro", DepartmentID: 1})
	users.InsertIgnoreConflicts(ctx, []models.User{{ID: "tch1", Role: models.RoleTeacher}})

	class := &models.Class{SubjectID: subject.ID, TeacherID: "tch1", Name: "Morning Section"}
	id, err := svc.Create(ctx, class)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a generated id")
	}
	if len(class.InviteCode) != 7 {
		t.Fatalf("invite code length = %d, want 7", len(class.InviteCode))
	}
	if class.Status != models.ClassActive {
		t.Fatalf("status = %q, want active", class.Status)
	}
	if class.Capacity != 50 {
		t.Fatalf("capacity = %d, want default 50", class.Capacity)
	}
	if class.Schedules == nil || len(class.Schedules) != 0 {
		t.Fatalf("schedules should start empty, got %v", class.Schedules)
	}
}

func TestCreateClassUnknownSubject(t *testing.T) {
	svc, _, users := newClassFixture(t)
	ctx := context.Background()
	users.InsertIgnoreConflicts(ctx, []models.User{{ID: "tch1", Role: models.RoleTeacher}})

	_, err := svc.Create(ctx, &models.Class{SubjectID: 99, TeacherID: "tch1", Name: "X"})
	if !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Fatalf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestCreateClassUnknownTeacher(t *testing.T) {
	svc, subjects, _ := newClassFixture(t)
	ctx := context.Background()
	subject := subjects.add(models.Subject{Code: "CS101"})

	_, err := svc.Create(ctx, &models.Class{SubjectID: subject.ID, TeacherID: "ghost", Name: "X"})
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateClassRejectsNonTeacher(t *testing.T) {
	svc, subjects, users := newClassFixture(t)
	ctx := context.Background()
	subject := subjects.add(models.Subject{Code: "CS101"})
	users.InsertIgnoreConflicts(ctx, []models.User{{ID: "stu1", Role: models.RoleStudent}})

	_, err := svc.Create(ctx, &models.Class{SubjectID: subject.ID, TeacherID: "stu1", Name: "X"})
	if !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestCreateClassRejectsUnknownStatus(t *testing.T) {
	svc, subjects, users := newClassFixture(t)
	ctx := context.Background()
	subject := subjects.add(models.Subject{Code: "CS101"})
	users.InsertIgnoreConflicts(ctx, []models.User{{ID: "tch1", Role: models.RoleTeacher}})

	_, err := svc.Create(ctx, &models.Class{SubjectID: subject.ID, TeacherID: "tch1", Name: "X", Status: "retired"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "retired") {
		t.Fatalf("error should name the rejected status, got %q", err.Error())
	}
}

func TestGenerateInviteCodeCharset(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateInviteCode()
		if len(code) != 7 {
			t.Fatalf("code %q has length %d, want 7", code, len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(inviteCodeCharset, r) {
				t.Fatalf("code %q contains %q outside charset", code, r)
			}
		}
	}
}
