package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/reasoned/internal/account"
	"github.com/mind-engage/reasoned/internal/config"
	"github.com/mind-engage/reasoned/internal/db"
	"github.com/mind-engage/reasoned/internal/logger"
	"github.com/mind-engage/reasoned/internal/material"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "reasoned",
	Short:         "Graded practice questions for UTBK and TKA",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if log, err = logger.New(cfg); err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd, metaCmd, promoteCmd)
}

// stores bundles the database handle with the stores built on it.
type stores struct {
	db        *sql.DB
	accounts  *account.Store
	materials *material.Store
}

func openStores(ctx context.Context) (*stores, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DB.Driver), cfg.DB.DSN, db.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, err
	}
	return &stores{
		db:        dbh,
		accounts:  account.NewStore(dbh, bcrypt.DefaultCost),
		materials: material.NewStore(dbh),
	}, nil
}
