package repository

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

const selectUser = `SELECT id, name, email, password FROM users`

// GetUserWithEmail looks a user up by exact email. Callers normalize case.
func (r *UserRepository) GetUserWithEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "users.get_by_email", selectUser+` WHERE email = $1`, email)
}

func (r *UserRepository) GetUserWithID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, "users.get_by_id", selectUser+` WHERE id = $1`, id)
}

// AddUser inserts a user. payload.Password must already be hashed.
func (r *UserRepository) AddUser(ctx context.Context, payload *model.NewUser) (*model.User, error) {
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	stmt := `INSERT INTO users (name, email, password)
VALUES ($1, $2, $3)
RETURNING id, name, email, password`

	return r.getOne(ctx, "users.insert", stmt, payload.Name, payload.Email, payload.Password)
}

func (r *UserRepository) getOne(ctx context.Context, op, sql string, args ...any) (*model.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, errs.NewStoreError(op, err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, errs.NewStoreError(op, err)
	}

	return &user, nil
}
