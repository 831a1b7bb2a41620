package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/repo/repo_errors"
	"github.com/cs23b1093/gigflow/pkg/postgres"

	"github.com/google/uuid"
)

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pgdb *postgres.Postgres) *UserRepo {
	return &UserRepo{pgdb}
}

func (r *UserRepo) CreateUser(ctx context.Context, input *entity.RegisterUserInput) (uuid.UUID, error) {
	createUserSql, args, _ := r.SqlBuilder.
		Insert("marketplace_user").
		Columns("name", "email", "role").
		Values(input.Name, input.Email, input.Role).
		Suffix("RETURNING id").
		ToSql()

	var userId uuid.UUID
	err := runnerFromContext(ctx, r.Database).QueryRowContext(ctx, createUserSql, args...).Scan(&userId)
	if err != nil {
		return uuid.Nil, classify(err)
	}

	return userId, nil
}

func (r *UserRepo) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getUserSql, args, _ := r.SqlBuilder.
		Select("id", "name", "email", "role", "created_at").
		From("marketplace_user").
		Where("id = ?", uuidForm).
		ToSql()

	return r.scanUserRow(ctx, getUserSql, args)
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	getUserSql, args, _ := r.SqlBuilder.
		Select("id", "name", "email", "role", "created_at").
		From("marketplace_user").
		Where("email = ?", email).
		ToSql()

	return r.scanUserRow(ctx, getUserSql, args)
}

func (r *UserRepo) scanUserRow(ctx context.Context, query string, args []any) (*entity.User, error) {
	var user entity.User
	var createdAt time.Time

	row := runnerFromContext(ctx, r.Database).QueryRowContext(ctx, query, args...)
	err := row.Scan(&user.Id, &user.Name, &user.Email, &user.Role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	user.CreatedAt = createdAt.Format(time.RFC3339)

	return &user, nil
}
