package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/pagination"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, log: log}
}

// ListUsers returns a paginated list of users with their roles
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns a user by ID with roles and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput changes a user's role and/or active flag. Nil fields are kept.
type UpdateUserInput struct {
	ActorID  uuid.UUID
	UserID   uuid.UUID
	Role     *string
	IsActive *bool
}

// UpdateUser applies role and status changes. Users cannot demote or
// disable themselves.
func (s *UserService) UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	self := input.ActorID == input.UserID
	if input.Role != nil {
		if _, ok := entity.RolePermissions[*input.Role]; !ok {
			return nil, apperror.NewValidationMessage("Unknown role",
				apperror.FieldError{Field: "role", Message: "role is not recognised"})
		}
		if self && *input.Role != user.PrimaryRole() {
			return nil, apperror.NewBadRequestError("You cannot change your own role")
		}
		if err := s.userRepo.ReplaceRoles(ctx, user.ID, *input.Role); err != nil {
			return nil, err
		}
	}

	if input.IsActive != nil && *input.IsActive != user.IsActive {
		if self {
			return nil, apperror.NewBadRequestError("You cannot disable your own account")
		}
		user.IsActive = *input.IsActive
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	s.log.Info("user updated", zap.String("user_id", user.ID.String()), zap.String("by", input.ActorID.String()))
	return s.GetUser(ctx, user.ID)
}

// DeleteUser soft deletes a user
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// ListRoles returns all available roles with their permissions
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.userRepo.ListRoles(ctx)
}
