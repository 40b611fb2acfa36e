package services

import (
	"context"
	"testing"

	"github.com/derin/classpanel/internal/app/models"
)

type memStatsStore struct {
	latestLimit int
}

func (m *memStatsStore) CountUsers(ctx context.Context) (int64, error) { return 6, nil }
func (m *memStatsStore) CountSubjects(ctx context.Context) (int64, error) { return 4, nil }
func (m *memStatsStore) CountDepartments(ctx context.Context) (int64, error) { return 3, nil }
func (m *memStatsStore) CountClasses(ctx context.Context) (int64, error) { return 2, nil }
func (m *memStatsStore) CountUsersByRole(ctx context.Context, role models.RoleType) (int64, error) {
	switch role {
	case models.RoleTeacher:
		return 2, nil
	case models.RoleAdmin:
		return 1, nil
	}
	return 0, nil
}
func (m *memStatsStore) LatestClasses(ctx context.Context, limit int) ([]models.Class, error) {
	m.latestLimit = limit
	return []models.Class{}, nil
}
func (m *memStatsStore) LatestTeachers(ctx context.Context, limit int) ([]models.User, error) {
	return []models.User{}, nil
}
func (m *memStatsStore) UsersByRole(ctx context.Context) ([]models.RoleCount, error) {
	return []models.RoleCount{}, nil
}
func (m *memStatsStore) SubjectsByDepartment(ctx context.Context) ([]models.DepartmentSubjectCount, error) {
	return []models.DepartmentSubjectCount{}, nil
}
func (m *memStatsStore) ClassesBySubject(ctx context.Context) ([]models.SubjectClassCount, error) {
	return []models.SubjectClassCount{}, nil
}

func TestOverviewGathersAllCounts(t *testing.T) {
	svc := NewStatsService(&memStatsStore{})

	stats, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if stats.Users != 6 || stats.Teachers != 2 || stats.Admins != 1 {
		t.Fatalf("user counts wrong: %+v", stats)
	}
	if stats.Subjects != 4 || stats.Departments != 3 || stats.Classes != 2 {
		t.Fatalf("entity counts wrong: %+v", stats)
	}
}

func TestLatestFloorsLimitAtOne(t *testing.T) {
	store := &memStatsStore{}
	svc := NewStatsService(store)

	for _, limit := range []int{0, -2} {
		if _, err := svc.Latest(context.Background(), limit); err != nil {
			t.Fatalf("Latest returned error: %v", err)
		}
		if store.latestLimit != 1 {
			t.Fatalf("explicit limit=%d should floor at 1, got %d", limit, store.latestLimit)
		}
	}

	if _, err := svc.Latest(context.Background(), 3); err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if store.latestLimit != 3 {
		t.Fatalf("explicit limit should pass through, got %d", store.latestLimit)
	}
}
