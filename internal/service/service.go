package service

import (
	"context"

	"github.com/cs23b1093/gigflow/internal/clock"
	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/notify"
	"github.com/cs23b1093/gigflow/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

type User interface {
	Register(ctx context.Context, input *entity.RegisterUserInput) (*entity.UserOutputModel, error)
	GetUserById(ctx context.Context, id string) (*entity.UserOutputModel, error)
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput) (*entity.GigOutputModel, error)
	GetGigById(ctx context.Context, gigId string) (*entity.GigOutputModel, error)
	GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput, sort *entity.SortInput) ([]entity.GigOutputModel, error)
	GetUserGigs(ctx context.Context, ownerId string, status string, pg *entity.PaginationInput) ([]entity.GigOutputModel, error)
	UpdateGigById(ctx context.Context, gigId, callerId string, input *entity.UpdateGigInput) (*entity.GigOutputModel, error)
	DeleteGigById(ctx context.Context, gigId, callerId string) error
}

type Bid interface {
	SubmitBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	GetUserBids(ctx context.Context, freelancerId, status string, pg *entity.PaginationInput) ([]entity.BidOutputModel, int, error)
	GetGigBids(ctx context.Context, gigId, callerId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
	GetBidById(ctx context.Context, bidId, callerId string) (*entity.BidOutputModel, error)
}

// HireResult carries both records the hire transition mutated.
type HireResult struct {
	Bid *entity.BidOutputModel
	Gig *entity.GigOutputModel
}

type Hiring interface {
	Hire(ctx context.Context, bidId, callerId string) (*HireResult, error)
}

type Services struct {
	Diagnostics Diagnostics
	User        User
	Gig         Gig
	Bid         Bid
	Hiring      Hiring
}

func NewServices(repos *repo.Repositories, dispatcher notify.Dispatcher, clk clock.Clock) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		User:        NewUserService(repos),
		Gig:         NewGigService(repos),
		Bid:         NewBidService(repos, dispatcher),
		Hiring:      NewHiringService(repos, dispatcher, clk),
	}
}
