package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./tx.go -destination=./mocks/tx_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Txer opens atomic read-modify-write boundaries on the write connection.
// Lifecycle use-cases run at the store default isolation; the time-adjustment
// use-cases request serializable isolation because they read sibling
// reservations and then decide.
type Txer interface {
	WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	WithSerializableTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// NewTxer exposes the connection's transaction boundary to the service layer.
func NewTxer(conn *Connection) Txer {
	return conn
}

func (c *Connection) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return c.runInTransaction(ctx, sql.LevelDefault, fn)
}

func (c *Connection) WithSerializableTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return c.runInTransaction(ctx, sql.LevelSerializable, fn)
}

func (c *Connection) runInTransaction(ctx context.Context, isolation sql.IsolationLevel, fn func(tx *sqlx.Tx) error) error {
	tx, err := c.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: isolation})
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
