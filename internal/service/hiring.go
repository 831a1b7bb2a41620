package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/cs23b1093/gigflow/internal/clock"
	"github.com/cs23b1093/gigflow/internal/common"
	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/notify"
	"github.com/cs23b1093/gigflow/internal/repo"
	"github.com/cs23b1093/gigflow/internal/repo/repo_errors"
)

const (
	hireMaxAttempts   = 3
	hireBackoffBase   = 10 * time.Millisecond
	hireBackoffSpread = 40 * time.Millisecond
)

// HiringService performs the accept-one/reject-rest/close-gig transition.
// Safety rests on conditional writes: each status change happens only if the
// row still holds the expected prior status, so at most one of any number of
// concurrent hire attempts can claim a gig. The surrounding transaction adds
// atomicity on top: if the bid claim fails after the gig claim succeeded,
// the gig claim rolls back instead of stranding an assigned gig with no
// hired bid.
type HiringService struct {
	bidRepo    repo.Bid
	gigRepo    repo.Gig
	userRepo   repo.User
	tx         repo.Transactor
	dispatcher notify.Dispatcher
	clock      clock.Clock
}

func NewHiringService(repos *repo.Repositories, dispatcher notify.Dispatcher, clk clock.Clock) *HiringService {
	return &HiringService{
		bidRepo:    repos.Bid,
		gigRepo:    repos.Gig,
		userRepo:   repos.User,
		tx:         repos.Transactor,
		dispatcher: dispatcher,
		clock:      clk,
	}
}

func (s *HiringService) Hire(ctx context.Context, bidId, callerId string) (*HireResult, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, bid.GigId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.OwnerId.String() != callerId {
		return nil, ErrNotGigOwner
	}

	rejected, err := s.runTransition(ctx, gig.Id.String(), bidId, callerId)
	if err != nil {
		return nil, err
	}

	hiredBid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, err
	}
	assignedGig, err := s.gigRepo.GetGigById(ctx, gig.Id.String())
	if err != nil {
		return nil, err
	}

	go s.dispatch(assignedGig, hiredBid, rejected)

	return &HireResult{Bid: mapBid(hiredBid), Gig: mapGig(assignedGig)}, nil
}

// runTransition executes the claim-gig / claim-bid / reject-competitors steps,
// retrying only on transient storage conflicts. A compare-and-swap miss is a
// terminal business outcome: someone else got there first.
func (s *HiringService) runTransition(ctx context.Context, gigId, bidId, callerId string) ([]entity.Bid, error) {
	var rejected []entity.Bid

	for attempt := 1; ; attempt++ {
		err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
			now := s.clock.Now()

			claimed, err := s.gigRepo.CompareAndSwapStatus(txCtx, gigId, common.Open, common.Assigned, callerId, now)
			if err != nil {
				return err
			}
			if !claimed {
				return ErrGigAlreadyAssigned
			}

			won, err := s.bidRepo.CompareAndSwapStatus(txCtx, bidId, common.Pending, common.Hired, now)
			if err != nil {
				return err
			}
			if !won {
				// Rolls back the gig claim too.
				return ErrBidNotAvailable
			}

			// Safe once the gig is claimed: any bid still pending on an
			// assigned gig is by definition not the winner.
			rejected, err = s.bidRepo.BulkTransition(txCtx, gigId, bidId, common.Pending, common.Rejected,
				common.RejectedCompetitorReason, now)

			return err
		})

		if err == nil {
			return rejected, nil
		}
		if !errors.Is(err, repo_errors.ErrTransient) {
			return nil, err
		}
		if attempt == hireMaxAttempts {
			log.Printf("hire: retry budget exhausted for bid %s on gig %s", bidId, gigId)
			return nil, ErrHireContention
		}

		// Randomized backoff so colliding writers do not re-collide in step.
		backoff := hireBackoffBase + time.Duration(rand.Int63n(int64(hireBackoffSpread)))
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// dispatch hands off the hire/reject events. Best-effort: failures here are
// logged and dropped, never surfaced to the hire caller.
func (s *HiringService) dispatch(gig *entity.Gig, hired *entity.Bid, rejected []entity.Bid) {
	clientName := ""
	client, err := s.userRepo.GetUserById(context.Background(), gig.OwnerId.String())
	if err != nil {
		log.Printf("hire: lookup client name for gig %s: %v", gig.Id, err)
	} else {
		clientName = client.Name
	}

	s.dispatcher.NotifyHired(hired.FreelancerId.String(), gig.Title, clientName, hired.Price)
	for _, b := range rejected {
		s.dispatcher.NotifyRejected(b.FreelancerId.String(), gig.Title, b.RejectedReason)
	}
}
