package repo

import (
	"context"
	"time"

	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/repo/pgdb"
	"github.com/cs23b1093/gigflow/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type User interface {
	CreateUser(ctx context.Context, input *entity.RegisterUserInput) (uuid.UUID, error)
	GetUserById(ctx context.Context, id string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error)
	GetGigById(ctx context.Context, id string) (*entity.Gig, error)
	GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput, sort *entity.SortInput) ([]entity.Gig, error)
	GetGigsByOwnerId(ctx context.Context, ownerId string, status string, pg *entity.PaginationInput) ([]entity.Gig, error)
	UpdateGigById(ctx context.Context, id string, input *entity.UpdateGigInput) error
	DeleteGigById(ctx context.Context, id string) error

	// CompareAndSwapStatus performs a single conditional write: the gig's
	// status is replaced (and hired_by/hired_at recorded) only if it still
	// equals expected at the moment of the update. Returns false when the
	// condition did not hold; that is a normal result, not an error.
	CompareAndSwapStatus(ctx context.Context, id string, expected, newStatus, hiredBy string, hiredAt time.Time) (bool, error)
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetBids(ctx context.Context, filter *entity.BidFilter, pg *entity.PaginationInput) ([]entity.Bid, error)
	CountBids(ctx context.Context, filter *entity.BidFilter) (int, error)

	// CompareAndSwapStatus: same conditional-write semantics as the gig
	// store's, used to claim the winning bid exactly once.
	CompareAndSwapStatus(ctx context.Context, id string, expected, newStatus string, at time.Time) (bool, error)

	// BulkTransition moves every bid on the gig whose status still equals
	// expected (excluding excludeId) to newStatus in one atomic statement,
	// returning the transitioned bids so callers can notify their owners.
	BulkTransition(ctx context.Context, gigId, excludeId, expected, newStatus, reason string, at time.Time) ([]entity.Bid, error)
}

// Transactor runs fn with a database transaction carried in the context;
// every repo call made through that context joins the same transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Repositories struct {
	Diagnostics
	User
	Gig
	Bid
	Transactor
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		User:        pgdb.NewUserRepo(p),
		Gig:         pgdb.NewGigRepo(p),
		Bid:         pgdb.NewBidRepo(p),
		Transactor:  pgdb.NewTransactor(p),
	}
}
