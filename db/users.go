package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"chatbackend/core"
	dbtx "chatbackend/db/tx"
	"chatbackend/models"
)

type PostgresUsersRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresUsersRepository(db *sqlx.DB, schema string) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db, schema: schema}
}

func (r *PostgresUsersRepository) GetOrCreateUser(
	ctx context.Context,
	authProvider, authProviderID, displayName string,
) (*models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s.users (id, auth_provider, auth_provider_id, display_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (auth_provider, auth_provider_id)
		DO UPDATE SET updated_at = NOW()
		RETURNING id, auth_provider, auth_provider_id, display_name, created_at, updated_at`, r.schema)

	user := &models.User{}
	err := dbtx.GetTransactional(ctx, r.db).
		QueryRowxContext(ctx, query, core.NewID("u"), authProvider, authProviderID, displayName).
		StructScan(user)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}

	return user, nil
}

func (r *PostgresUsersRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, auth_provider, auth_provider_id, display_name, created_at, updated_at
		FROM %s.users
		WHERE id = $1`, r.schema)

	user := &models.User{}
	err := dbtx.GetTransactional(ctx, r.db).GetContext(ctx, user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
