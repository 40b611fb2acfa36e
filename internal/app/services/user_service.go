package services

import (
	"context"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/pkg/apperrors"
)

// UserService implements user business logic
type UserService struct {
	userRepo repositories.UserStore
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserStore) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns users. An unknown role value is rejected rather than
// silently matching nothing.
func (s *UserService) List(ctx context.Context, filter repositories.UserListFilter) ([]models.User, int64, error) {
	if filter.Role != "" && !models.RoleType(filter.Role).IsValid() {
		return nil, 0, apperrors.ErrInvalidRole
	}
	return s.userRepo.List(ctx, filter)
}
