package service

import (
	"context"
	"errors"

	"github.com/cs23b1093/gigflow/internal/common"
	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/notify"
	"github.com/cs23b1093/gigflow/internal/repo"
	"github.com/cs23b1093/gigflow/internal/repo/repo_errors"
)

type BidService struct {
	bidRepo    repo.Bid
	gigRepo    repo.Gig
	userRepo   repo.User
	dispatcher notify.Dispatcher
}

func NewBidService(repos *repo.Repositories, dispatcher notify.Dispatcher) *BidService {
	return &BidService{
		bidRepo:    repos.Bid,
		gigRepo:    repos.Gig,
		userRepo:   repos.User,
		dispatcher: dispatcher,
	}
}

func (s *BidService) SubmitBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	gig, err := s.gigRepo.GetGigById(ctx, input.GigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.Status != common.Open {
		return nil, ErrGigNotOpen
	}

	// Owners cannot bid on their own gigs regardless of gig status.
	if gig.OwnerId.String() == input.FreelancerId {
		return nil, ErrOwnGigBid
	}

	id, err := s.bidRepo.CreateBid(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrDuplicateBid
		}

		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	if freelancer, err := s.userRepo.GetUserById(ctx, input.FreelancerId); err == nil {
		s.dispatcher.NotifyBidReceived(gig.OwnerId.String(), gig.Title, freelancer.Name, bid.Price)
	}

	return mapBid(bid), nil
}

func (s *BidService) GetUserBids(ctx context.Context, freelancerId, status string, pg *entity.PaginationInput) ([]entity.BidOutputModel, int, error) {
	filter := &entity.BidFilter{FreelancerId: freelancerId, Status: status}

	total, err := s.bidRepo.CountBids(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	bids, err := s.bidRepo.GetBids(ctx, filter, pg)
	if err != nil {
		return nil, 0, err
	}

	return mapBids(bids), total, nil
}

func (s *BidService) GetGigBids(ctx context.Context, gigId, callerId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
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

	bids, err := s.bidRepo.GetBids(ctx, &entity.BidFilter{GigId: gigId}, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

func (s *BidService) GetBidById(ctx context.Context, bidId, callerId string) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	if bid.FreelancerId.String() == callerId {
		return mapBid(bid), nil
	}

	gig, err := s.gigRepo.GetGigById(ctx, bid.GigId.String())
	if err != nil {
		return nil, err
	}

	if gig.OwnerId.String() != callerId {
		return nil, ErrNoAccessToBid
	}

	return mapBid(bid), nil
}
