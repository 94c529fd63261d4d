package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"bookstores/internal/config"
	"bookstores/internal/platform/logger"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, redo, status, version, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	log := logger.MustNewLogger("text", "info")
	defer func() { _ = log.Sync() }()

	dir := migrationsDir()

	if *command == "create" {
		if *name == "" {
			log.Fatal("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.Fatal("failed to create migration", zap.Error(err))
		}
		fmt.Printf("Migration created: %s\n", *name)
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseDSN())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("failed to set dialect", zap.Error(err))
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			log.Fatal("failed to run migrations", zap.String("dir", dir), zap.Error(err))
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			log.Fatal("failed to rollback migrations", zap.String("dir", dir), zap.Error(err))
		}
		fmt.Println("Migrations rolled back successfully")
	case "redo":
		if err := goose.RedoContext(ctx, db, dir); err != nil {
			log.Fatal("failed to redo migration", zap.String("dir", dir), zap.Error(err))
		}
		fmt.Println("Last migration re-applied successfully")
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			log.Fatal("failed to check migration status", zap.Error(err))
		}
	case "version":
		if err := goose.VersionContext(ctx, db, dir); err != nil {
			log.Fatal("failed to read migration version", zap.Error(err))
		}
	default:
		log.Fatal("unknown command, use: up, down, redo, status, version, create", zap.String("command", *command))
	}
}
