package service

import (
	"context"
	"errors"

	"github.com/cs23b1093/gigflow/internal/common"
	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/repo"
	"github.com/cs23b1093/gigflow/internal/repo/repo_errors"
)

type UserService struct {
	userRepo repo.User
}

func NewUserService(repos *repo.Repositories) *UserService {
	return &UserService{
		userRepo: repos.User,
	}
}

func (s *UserService) Register(ctx context.Context, input *entity.RegisterUserInput) (*entity.UserOutputModel, error) {
	if input.Role == "" {
		input.Role = common.RoleClient
	}

	id, err := s.userRepo.CreateUser(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrEmailAlreadyRegistered
		}

		return nil, err
	}

	user, err := s.userRepo.GetUserById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapUser(user), nil
}

func (s *UserService) GetUserById(ctx context.Context, id string) (*entity.UserOutputModel, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return mapUser(user), nil
}
