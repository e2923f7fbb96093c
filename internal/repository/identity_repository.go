package repository

import (
	"context"

	"greenleaf/internal/database"
	"greenleaf/internal/domain/account"

	"github.com/google/uuid"
)

type PostgresIdentityRepository struct {
	db database.DB
}

func NewPostgresIdentityRepository(db database.DB) *PostgresIdentityRepository {
	return &PostgresIdentityRepository{db: db}
}

func (r *PostgresIdentityRepository) GetLink(ctx context.Context, provider, subject string) (account.Link, error) {
	row := r.db.QueryRow(ctx,
		`SELECT provider, subject, account_kind, account_id, COALESCE(email, ''), created_at
		 FROM identities
		 WHERE provider = $1 AND subject = $2`,
		provider, subject,
	)
	return scanLink(row)
}

func (r *PostgresIdentityRepository) GetLinkByAccount(ctx context.Context, kind account.Kind, accountID uuid.UUID) (account.Link, error) {
	row := r.db.QueryRow(ctx,
		`SELECT provider, subject, account_kind, account_id, COALESCE(email, ''), created_at
		 FROM identities
		 WHERE account_kind = $1 AND account_id = $2
		 ORDER BY created_at ASC
		 LIMIT 1`,
		string(kind), accountID,
	)
	return scanLink(row)
}

func (r *PostgresIdentityRepository) CreateLink(ctx context.Context, l account.Link) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO identities (provider, subject, account_kind, account_id, email)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
		l.Provider, l.Subject, string(l.Kind), l.AccountID, l.Email,
	)
	if database.IsUniqueViolation(err) {
		return account.ErrLinkExists
	}
	return err
}

func scanLink(row database.Row) (account.Link, error) {
	var l account.Link
	var kind string
	if err := row.Scan(&l.Provider, &l.Subject, &kind, &l.AccountID, &l.Email, &l.CreatedAt); err != nil {
		if database.IsNoRows(err) {
			return account.Link{}, account.ErrLinkNotFound
		}
		return account.Link{}, err
	}
	l.Kind = account.Kind(kind)
	return l, nil
}
