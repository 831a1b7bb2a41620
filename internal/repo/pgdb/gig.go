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

type GigRepo struct {
	*postgres.Postgres
}

func NewGigRepo(pgdb *postgres.Postgres) *GigRepo {
	return &GigRepo{pgdb}
}

const gigColumns = "id, title, description, budget, status, owner_id, hired_by, hired_at, created_at"

func (r *GigRepo) CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error) {
	createGigSql, args, _ := r.SqlBuilder.
		Insert("gig").
		Columns("title", "description", "budget", "status", "owner_id").
		Values(input.Title, input.Description, input.Budget, common.Open, input.OwnerId).
		Suffix("RETURNING id").
		ToSql()

	var gigId uuid.UUID
	err := runnerFromContext(ctx, r.Database).QueryRowContext(ctx, createGigSql, args...).Scan(&gigId)
	if err != nil {
		return uuid.Nil, classify(err)
	}

	return gigId, nil
}

func (r *GigRepo) GetGigById(ctx context.Context, id string) (*entity.Gig, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getGigSql, args, _ := r.SqlBuilder.
		Select(gigColumns).
		From("gig").
		Where("id = ?", uuidForm).
		ToSql()

	row := runnerFromContext(ctx, r.Database).QueryRowContext(ctx, getGigSql, args...)

	gig, err := scanGig(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return gig, nil
}

func (r *GigRepo) GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput, sort *entity.SortInput) ([]entity.Gig, error) {
	query := r.SqlBuilder.
		Select(gigColumns).
		From("gig").
		Where("status = ?", common.Open)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	query = query.
		OrderBy(orderClause(sort)).
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset))

	getGigsSql, args, _ := query.ToSql()

	return r.queryGigs(ctx, getGigsSql, args)
}

func (r *GigRepo) GetGigsByOwnerId(ctx context.Context, ownerId string, status string, pg *entity.PaginationInput) ([]entity.Gig, error) {
	uuidForm, err := uuid.Parse(ownerId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	query := r.SqlBuilder.
		Select(gigColumns).
		From("gig").
		Where("owner_id = ?", uuidForm)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	getGigsSql, args, _ := query.
		OrderBy("created_at desc").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()

	return r.queryGigs(ctx, getGigsSql, args)
}

func (r *GigRepo) UpdateGigById(ctx context.Context, id string, input *entity.UpdateGigInput) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	query := r.SqlBuilder.Update("gig").Where("id = ?", uuidForm)
	if input.Title != "" {
		query = query.Set("title", input.Title)
	}
	if input.Description != "" {
		query = query.Set("description", input.Description)
	}
	if input.Budget != 0 {
		query = query.Set("budget", input.Budget)
	}

	updateGigSql, args, _ := query.ToSql()

	result, err := runnerFromContext(ctx, r.Database).ExecContext(ctx, updateGigSql, args...)
	if err != nil {
		return classify(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

func (r *GigRepo) DeleteGigById(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	deleteGigSql, args, _ := r.SqlBuilder.
		Delete("gig").
		Where("id = ?", uuidForm).
		ToSql()

	result, err := runnerFromContext(ctx, r.Database).ExecContext(ctx, deleteGigSql, args...)
	if err != nil {
		return classify(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

// CompareAndSwapStatus is a single conditional read-modify-write: the row is
// touched only if its status still equals expected. RowsAffected tells the
// caller whether it won the swap.
func (r *GigRepo) CompareAndSwapStatus(ctx context.Context, id string, expected, newStatus, hiredBy string, hiredAt time.Time) (bool, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return false, repo_errors.ErrNotFound
	}

	query := r.SqlBuilder.
		Update("gig").
		Set("status", newStatus).
		Where("id = ?", uuidForm).
		Where("status = ?", expected)

	if hiredBy != "" {
		query = query.Set("hired_by", hiredBy).Set("hired_at", hiredAt)
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

func (r *GigRepo) queryGigs(ctx context.Context, query string, args []any) ([]entity.Gig, error) {
	rows, err := runnerFromContext(ctx, r.Database).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	gigs := make([]entity.Gig, 0)
	for rows.Next() {
		gig, err := scanGig(rows)
		if err != nil {
			return nil, err
		}

		gigs = append(gigs, *gig)
	}

	return gigs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGig(row rowScanner) (*entity.Gig, error) {
	var gig entity.Gig
	var hiredBy uuid.NullUUID
	var hiredAt sql.NullTime
	var createdAt time.Time

	err := row.Scan(&gig.Id, &gig.Title, &gig.Description, &gig.Budget, &gig.Status,
		&gig.OwnerId, &hiredBy, &hiredAt, &createdAt)
	if err != nil {
		return nil, err
	}

	if hiredBy.Valid {
		gig.HiredBy = hiredBy.UUID.String()
	}
	if hiredAt.Valid {
		gig.HiredAt = hiredAt.Time.Format(time.RFC3339)
	}
	gig.CreatedAt = createdAt.Format(time.RFC3339)

	return &gig, nil
}

func orderClause(sort *entity.SortInput) string {
	column := "created_at"
	if sort != nil && sort.By == "budget" {
		column = "budget"
	}

	order := "desc"
	if sort != nil && sort.Order == "asc" {
		order = "asc"
	}

	return column + " " + order
}
