package services

import (
	"context"
	"errors"
	"testing"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/pkg/apperrors"
)

func newEnrollmentFixture(t *testing.T) (*EnrollmentService, *memClassStore, *memUserStore) {
	t.Helper()
	classes := newMemClassStore()
	users := newMemUserStore()
	enrollments := newMemEnrollmentStore(classes)
	return NewEnrollmentService(enrollments, classes, users), classes, users
}

func TestEnrollCreatesDetail(t *testing.T) {
	svc, classes, users := newEnrollmentFixture(t)
	ctx := context.Background()

	users.InsertIgnoreConflicts(ctx, []models.User{{ID: "stu1", Role: models.RoleStudent}})
	class := &models.Class{Name: "CS101 Morning", InviteCode: "abc1234"}
	classID, _ := classes.Create(ctx, class)

	detail, err := svc.Enroll(ctx, classID, "stu1")
	if err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if detail.ClassID != classID || detail.StudentID != "stu1" {
		t.Fatalf("unexpected detail pair: %+v", detail.Enrollment)
	}
	if detail.Class == nil || detail.Class.Name != "CS101 Morning" {
		t.Fatalf("expected joined class in detail, got %+v", detail.Class)
	}
}

func TestEnrollDuplicateIsConflict(t *testing.T) {
	svc, classes, users := newEnrollmentFixture(t)
	ctx := context.Background()

	users.InsertIgnoreConflicts(ctx, []models.User{{ID: "stu1", Role: models.RoleStudent}})
	classID, _ := classes.Create(ctx, &models.Class{Name: "CS101", InviteCode: "abc1234"})

	if _, err := svc.Enroll(ctx, classID, "stu1"); err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}
	_, err := svc.Enroll(ctx, classID, "stu1")
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestEnrollUnknownClass(t *testing.T) {
	svc, _, users := newEnrollmentFixture(t)
	ctx := context.Background()
	users.InsertIgnoreConflicts(ctx, []models.User{{ID: "stu1", Role: models.RoleStudent}})

	_, err := svc.Enroll(ctx, 42, "stu1")
	if !errors.Is(err, apperrors.ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}

func TestEnrollUnknownStudent(t *testing.T) {
	svc, classes, _ := newEnrollmentFixture(t)
	ctx := context.Background()
	classID, _ := classes.Create(ctx, &models.Class{Name: "CS101", InviteCode: "abc1234"})

	_, err := svc.Enroll(ctx, classID, "ghost")
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestJoinByInviteCode(t *testing.T) {
	svc, classes, users := newEnrollmentFixture(t)
	ctx := context.Background()

	users.InsertIgnoreConflicts(ctx, []models.User{{ID: "stu1", Role: models.RoleStudent}})
	classID, _ := classes.Create(ctx, &models.Class{Name: "CS101", InviteCode: "abc1234"})

	detail, err := svc.Join(ctx, "abc1234", "stu1")
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if detail.ClassID != classID {
		t.Fatalf("joined wrong class: got %d, want %d", detail.ClassID, classID)
	}
}

func TestJoinUnknownInviteCode(t *testing.T) {
	svc, _, users := newEnrollmentFixture(t)
	ctx := context.Background()
	users.InsertIgnoreConflicts(ctx, []models.User{{ID: "stu1", Role: models.RoleStudent}})

	_, err := svc.Join(ctx, "nope123", "stu1")
	if !errors.Is(err, apperrors.ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}
