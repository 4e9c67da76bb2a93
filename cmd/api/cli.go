package main

import (
	"fmt"
	"os"

	"phonebook/config"
	appfx "phonebook/internal/fx"
	"phonebook/internal/infrastructure"
	"phonebook/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var rootCmd = &cobra.Command{
	Use:   "phonebook",
	Short: "Contacts REST API with email-verified accounts",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	app := fx.New(appfx.AppModule)
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

// runMigrate opens the database, which migrates the schema on connect.
func runMigrate(cmd *cobra.Command, args []string) error {
	appfx.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg)

	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	logger.Info().Str("driver", cfg.Database.Driver).Msg("migrations applied")
	return nil
}
