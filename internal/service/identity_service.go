package service

import (
	"context"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
	"github.com/simple-ecommerce/storefront-service/internal/repository"
)

// IdentityService resolves trusted actor IDs supplied by the upstream
// auth collaborator into accounts.
type IdentityService struct {
	users *repository.UserRepository
}

func NewIdentityService(users *repository.UserRepository) *IdentityService {
	return &IdentityService{users: users}
}

func (s *IdentityService) ResolveActor(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}

// ListUsers is staff only.
func (s *IdentityService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}
