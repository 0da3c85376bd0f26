package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"university-backend/foundation/web"
	"university-backend/internal/auth"
	"university-backend/internal/commands"
	"university-backend/internal/pkg/config"
	"university-backend/internal/pkg/repository/postgresql"
	"university-backend/internal/repository"
	"university-backend/internal/repository/memory"
	"university-backend/internal/repository/postgres"
	"university-backend/internal/router"
	"university-backend/internal/seed"
	"university-backend/internal/telemetry"
)

const serviceName = "university-attendance"

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Println("error:", err)
			os.Exit(1)
		}
	}
}

// run executes "serve" (the default) or "migrate". The command, when given,
// comes before any flags.
func run(args []string) error {
	command := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	cfg, err := config.Parse(args)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(config.Usage(&cfg))
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}
	log.Printf("main: config:\n%v\n", cfg.String())

	switch command {
	case "serve":
		return serve(cfg)
	case "migrate":
		return migrate(cfg)
	}
	return errors.Errorf("unknown command %q", command)
}

func migrate(cfg config.Config) error {
	if cfg.DB.Driver != "postgres" {
		return errors.New("migrate needs ATTENDANCE_DB_DRIVER=postgres")
	}

	db, err := openPostgres(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err = commands.MigrateUP(ctx, db); err != nil {
		return err
	}
	log.Println("migrate: complete")
	return nil
}

func serve(cfg config.Config) error {
	shutdownTelemetry := telemetry.Setup(serviceName)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			log.Printf("main: telemetry shutdown: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Seed.Enabled {
		data, err := seed.Parse(seed.Default)
		if err != nil {
			return err
		}
		if _, err = seed.Load(ctx, store, data, time.Now()); err != nil {
			return errors.Wrap(err, "seeding store")
		}
	}

	sessions, closeSessions, err := openSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	a, err := auth.New(cfg.Auth.JWTKey, sessions, cfg.Auth.SessionTTL)
	if err != nil {
		return errors.Wrap(err, "constructing auth")
	}

	app := web.NewApp()
	router.NewRouter(app, store, a, router.Config{
		AllowedOrigins: cfg.Web.AllowedOrigins,
		CookieSecure:   cfg.Auth.CookieSecure,
	}).Init()

	server := &http.Server{
		Addr:         cfg.Web.Port,
		Handler:      telemetry.Handler(app, serviceName),
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("main: listening on %s", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")

	case <-ctx.Done():
		log.Println("main: shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}

	return nil
}

func openStore(ctx context.Context, cfg config.Config) (repository.Store, error) {
	if cfg.DB.Driver == "memory" {
		log.Println("main: using in-memory store")
		return memory.NewStore(), nil
	}

	db, err := openPostgres(cfg)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err = commands.MigrateUP(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("main: using postgres at %s/%s", cfg.DB.Host, cfg.DB.Name)
	return postgres.NewStore(db), nil
}

func openPostgres(cfg config.Config) (*postgresql.Database, error) {
	db, err := postgresql.New(postgresql.Config{
		User:       cfg.DB.User,
		Password:   cfg.DB.Password,
		Host:       cfg.DB.Host,
		Port:       cfg.DB.Port,
		Name:       cfg.DB.Name,
		DisableTLS: cfg.DB.DisableTLS,
		Debug:      cfg.DB.Debug,
	})
	return db, errors.Wrap(err, "connecting to postgres")
}

func openSessions(ctx context.Context, cfg config.Config) (auth.SessionStore, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Println("main: sessions kept in memory")
		return auth.NewMemorySessions(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, errors.Wrap(err, "connecting to redis")
	}

	log.Printf("main: sessions kept in redis at %s", cfg.Redis.Addr)
	return auth.NewRedisSessions(client), func() { client.Close() }, nil
}
