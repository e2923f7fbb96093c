package repository

import (
	"context"

	"greenleaf/internal/database"
	"greenleaf/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, email, name, current_position, target_position, location, summary, linkedin, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, email, name, current_position, target_position, location, summary, linkedin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+userColumns,
		u.ID, u.Email, u.Name, u.CurrentPosition, u.TargetPosition, u.Location, u.Summary, u.LinkedIn,
	)
	out, err := scanUser(row)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}
	return out, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users
		 SET email = $2, name = $3, current_position = $4, target_position = $5,
		     location = $6, summary = $7, linkedin = $8, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		u.ID, u.Email, u.Name, u.CurrentPosition, u.TargetPosition, u.Location, u.Summary, u.LinkedIn,
	)
	out, err := scanUser(row)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}
	return out, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.CurrentPosition, &u.TargetPosition,
		&u.Location, &u.Summary, &u.LinkedIn, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
