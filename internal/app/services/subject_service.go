package services

import (
	"context"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/repositories"
)

// SubjectService implements subject business logic
type SubjectService struct {
	subjectRepo repositories.SubjectStore
}

// NewSubjectService creates a new subject service
func NewSubjectService(subjectRepo repositories.SubjectStore) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo}
}

// List returns subjects with their departments attached.
func (s *SubjectService) List(ctx context.Context, filter repositories.SubjectListFilter) ([]models.Subject, int64, error) {
	return s.subjectRepo.List(ctx, filter)
}
