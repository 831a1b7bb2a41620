package service

import (
	"context"
	"errors"

	"github.com/cs23b1093/gigflow/internal/common"
	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/repo"
	"github.com/cs23b1093/gigflow/internal/repo/repo_errors"
)

type GigService struct {
	gigRepo  repo.Gig
	userRepo repo.User
}

func NewGigService(repos *repo.Repositories) *GigService {
	return &GigService{
		gigRepo:  repos.Gig,
		userRepo: repos.User,
	}
}

func (s *GigService) CreateGig(ctx context.Context, input *entity.CreateGigInput) (*entity.GigOutputModel, error) {
	if _, err := s.userRepo.GetUserById(ctx, input.OwnerId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	id, err := s.gigRepo.CreateGig(ctx, input)
	if err != nil {
		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapGig(gig), nil
}

func (s *GigService) GetGigById(ctx context.Context, gigId string) (*entity.GigOutputModel, error) {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	return mapGig(gig), nil
}

func (s *GigService) GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput, sort *entity.SortInput) ([]entity.GigOutputModel, error) {
	gigs, err := s.gigRepo.GetOpenGigs(ctx, search, pg, sort)
	if err != nil {
		return nil, err
	}

	return mapGigs(gigs), nil
}

func (s *GigService) GetUserGigs(ctx context.Context, ownerId string, status string, pg *entity.PaginationInput) ([]entity.GigOutputModel, error) {
	gigs, err := s.gigRepo.GetGigsByOwnerId(ctx, ownerId, status, pg)
	if err != nil {
		return nil, err
	}

	return mapGigs(gigs), nil
}

// Content mutations are owner-only and legal only while the gig is open, so
// no bidder can be raced into an assigned gig whose terms changed under them.
func (s *GigService) UpdateGigById(ctx context.Context, gigId, callerId string, input *entity.UpdateGigInput) (*entity.GigOutputModel, error) {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.OwnerId.String() != callerId {
		return nil, ErrNotGigOwner
	}

	if gig.Status != common.Open {
		return nil, ErrGigNotOpen
	}

	if err := s.gigRepo.UpdateGigById(ctx, gigId, input); err != nil {
		return nil, err
	}

	gig, err = s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		return nil, err
	}

	return mapGig(gig), nil
}

func (s *GigService) DeleteGigById(ctx context.Context, gigId, callerId string) error {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrGigNotFound
		}

		return err
	}

	if gig.OwnerId.String() != callerId {
		return ErrNotGigOwner
	}

	if gig.Status != common.Open {
		return ErrGigNotOpen
	}

	return s.gigRepo.DeleteGigById(ctx, gigId)
}
