package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"university-backend/internal/repository"
)

type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	Name       string
	DisableTLS bool
	Debug      bool
}

// Database wraps the bun handle every postgres repository embeds.
type Database struct {
	*bun.DB
}

func New(cfg Config) (*Database, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithAddr(fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Name),
		pgdriver.WithInsecure(cfg.DisableTLS),
		pgdriver.WithTimeout(5*time.Second),
	)

	sqldb := sql.OpenDB(connector)
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return &Database{DB: db}, nil
}

func (d Database) Ping(ctx context.Context) error {
	return errors.Wrap(d.PingContext(ctx), "ping postgres")
}

// DeleteRow removes the row of table with the given id and reports whether
// one was found.
func (d Database) DeleteRow(ctx context.Context, table string, id any) (bool, error) {
	res, err := d.NewDelete().Table(table).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, errors.Wrapf(err, "deleting %s", table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "deleting %s", table)
	}
	return n > 0, nil
}

// Translate maps driver errors onto the repository sentinels and wraps the
// rest with msg.
func Translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation {
		return repository.ErrDuplicate
	}
	return errors.Wrap(err, msg)
}

const uniqueViolation = "23505"
