package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cs23b1093/gigflow/internal/common"
	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/repo/repo_errors"
	"github.com/cs23b1093/gigflow/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

const bidColumns = "id, gig_id, freelancer_id, message, price, status, rejected_reason, hired_at, rejected_at, created_at"

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("gig_id", "freelancer_id", "message", "price", "status").
		Values(input.GigId, input.FreelancerId, input.Message, input.Price, common.Pending).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	err := runnerFromContext(ctx, r.Database).QueryRowContext(ctx, createBidSql, args...).Scan(&bidId)
	if err != nil {
		// The (gig_id, freelancer_id) unique index rejects duplicate bids.
		return uuid.Nil, classify(err)
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("id = ?", uuidForm).
		ToSql()

	row := runnerFromContext(ctx, r.Database).QueryRowContext(ctx, getBidSql, args...)

	bid, err := scanBid(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return bid, nil
}

func (r *BidRepo) GetBids(ctx context.Context, filter *entity.BidFilter, pg *entity.PaginationInput) ([]entity.Bid, error) {
	query := r.SqlBuilder.
		Select(bidColumns).
		From("bid")

	query, err := applyBidFilter(query, filter)
	if err != nil {
		return nil, err
	}

	getBidsSql, args, _ := query.
		OrderBy("created_at desc").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()

	rows, err := runnerFromContext(ctx, r.Database).QueryContext(ctx, getBidsSql, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}

		bids = append(bids, *bid)
	}

	return bids, rows.Err()
}

func (r *BidRepo) CountBids(ctx context.Context, filter *entity.BidFilter) (int, error) {
	query := r.SqlBuilder.
		Select("count(*)").
		From("bid")

	query, err := applyBidFilter(query, filter)
	if err != nil {
		return 0, err
	}

	countSql, args, _ := query.ToSql()

	var total int
	if err := runnerFromContext(ctx, r.Database).QueryRowContext(ctx, countSql, args...).Scan(&total); err != nil {
		return 0, classify(err)
	}

	return total, nil
}

// CompareAndSwapStatus claims the bid with a conditional write, mirroring the
// gig store's primitive. The hired_at/rejected_at stamp follows newStatus.
func (r *BidRepo) CompareAndSwapStatus(ctx context.Context, id string, expected, newStatus string, at time.Time) (bool, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return false, repo_errors.ErrNotFound
	}

	query := r.SqlBuilder.
		Update("bid").
		Set("status", newStatus).
		Where("id = ?", uuidForm).
		Where("status = ?", expected)

	switch newStatus {
	case common.Hired:
		query = query.Set("hired_at", at)
	case common.Rejected:
		query = query.Set("rejected_at", at)
	}

	casSql, args, _ := query.ToSql()

	result, err := runnerFromContext(ctx, r.Database).ExecContext(ctx, casSql, args...)
	if err != nil {
		return false, classify(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

// BulkTransition rejects every still-matching competitor in one statement and
// returns the transitioned rows so the dispatcher can inform their owners.
func (r *BidRepo) BulkTransition(ctx context.Context, gigId, excludeId, expected, newStatus, reason string, at time.Time) ([]entity.Bid, error) {
	gigUuid, err := uuid.Parse(gigId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	excludeUuid, err := uuid.Parse(excludeId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	query := r.SqlBuilder.
		Update("bid").
		Set("status", newStatus).
		Where("gig_id = ?", gigUuid).
		Where("status = ?", expected).
		Where("id <> ?", excludeUuid)

	if newStatus == common.Rejected {
		query = query.Set("rejected_at", at).Set("rejected_reason", reason)
	}

	bulkSql, args, _ := query.
		Suffix("RETURNING " + bidColumns).
		ToSql()

	rows, err := runnerFromContext(ctx, r.Database).QueryContext(ctx, bulkSql, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}

		bids = append(bids, *bid)
	}

	return bids, rows.Err()
}

func applyBidFilter(query squirrel.SelectBuilder, filter *entity.BidFilter) (squirrel.SelectBuilder, error) {
	if filter == nil {
		return query, nil
	}

	if filter.GigId != "" {
		uuidForm, err := uuid.Parse(filter.GigId)
		if err != nil {
			return query, repo_errors.ErrNotFound
		}
		query = query.Where("gig_id = ?", uuidForm)
	}
	if filter.FreelancerId != "" {
		uuidForm, err := uuid.Parse(filter.FreelancerId)
		if err != nil {
			return query, repo_errors.ErrNotFound
		}
		query = query.Where("freelancer_id = ?", uuidForm)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	return query, nil
}

func scanBid(row rowScanner) (*entity.Bid, error) {
	var bid entity.Bid
	var reason sql.NullString
	var hiredAt, rejectedAt sql.NullTime
	var createdAt time.Time

	err := row.Scan(&bid.Id, &bid.GigId, &bid.FreelancerId, &bid.Message, &bid.Price,
		&bid.Status, &reason, &hiredAt, &rejectedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	bid.RejectedReason = reason.String
	if hiredAt.Valid {
		bid.HiredAt = hiredAt.Time.Format(time.RFC3339)
	}
	if rejectedAt.Valid {
		bid.RejectedAt = rejectedAt.Time.Format(time.RFC3339)
	}
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}
