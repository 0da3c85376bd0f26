package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/pkg/errors"

	"university-backend/internal/pkg/repository/postgresql"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id text primary key,
            name text not null,
            email text not null,
            password text not null,
            role text not null check (role in ('head','admin','mazer','assistant','teacher','staff')),
            department text,
            is_active boolean not null default true
        );`,
	},
	{
		Index:       2,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            user_id text not null,
            date varchar(10) not null,
            status text not null check (status in ('present','absent','on_leave')),
            time_in varchar(5),
            time_out varchar(5),
            marked_by text not null,
            marked_at timestamptz not null default now()
        );`,
	},
	{
		Index:       3,
		Description: "Unique index: attendance(user_id, date).",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS attendance_user_date_idx ON attendance (user_id, date);`,
	},
	{
		Index:       4,
		Description: "Create table: leave_requests.",
		Query: `
        CREATE TABLE IF NOT EXISTS leave_requests (
            id serial primary key,
            user_id text not null,
            leave_type text not null check (leave_type in ('sick','annual','personal','emergency')),
            from_date varchar(10) not null,
            to_date varchar(10) not null,
            reason text not null,
            status text not null default 'pending' check (status in ('pending','approved','rejected')),
            approved_by text,
            created_at timestamptz not null default now(),
            responded_at timestamptz
        );
        CREATE INDEX IF NOT EXISTS leave_requests_status_idx ON leave_requests (status, created_at);`,
	},
	{
		Index:       5,
		Description: "Create table: schedules.",
		Query: `
        CREATE TABLE IF NOT EXISTS schedules (
            id serial primary key,
            user_id text not null,
            day_of_week text not null,
            start_time varchar(5) not null,
            end_time varchar(5) not null,
            subject text,
            work_type text
        );
        CREATE INDEX IF NOT EXISTS schedules_day_idx ON schedules (day_of_week);`,
	},
}

// MigrateUP applies every scheme entry above the recorded version. A failed
// entry leaves the version dirty and is retried first on the next run.
func MigrateUP(ctx context.Context, db *postgresql.Database) error {
	var (
		version int
		dirty   bool
		er      *string
	)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text)`); err != nil {
		return errors.Wrap(err, "migrate schema_migrations create")
	}
	err := db.QueryRowContext(ctx, "SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if _, err = db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) values (0, false)`); err != nil {
			return errors.Wrap(err, "migrate schema_migrations init")
		}
		version, dirty = 0, false
	}

	if dirty {
		for _, s := range scheme {
			if s.Index == version {
				if err = apply(ctx, db, s); err != nil {
					return err
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if err = apply(ctx, db, s); err != nil {
				return err
			}
		}
	}

	return nil
}

func apply(ctx context.Context, db *postgresql.Database, s Scheme) error {
	log.Printf("migrate: %d %s", s.Index, s.Description)

	if _, err := db.ExecContext(ctx, s.Query); err != nil {
		if _, uerr := db.ExecContext(ctx, `UPDATE schema_migrations SET error = ?, version = ?, dirty = true`, err.Error(), s.Index); uerr != nil {
			return errors.Wrap(uerr, "migrate error")
		}
		return errors.Wrap(err, fmt.Sprintf("migrate error version: %d", s.Index))
	}
	if _, err := db.ExecContext(ctx, `UPDATE schema_migrations SET version = ?, dirty = false, error = null`, s.Index); err != nil {
		return errors.Wrap(err, "migrate error")
	}

	return nil
}
