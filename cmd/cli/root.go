package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abr-dev/interview-coach/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "coach-cli",
	Short: "coach-cli is the command-line interface for the interview coach.",
	Long:  `A CLI for inspecting the interview coach's session archive: listing completed sessions and printing their transcripts.`,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("db-host", "localhost", "Postgres host")
	rootCmd.PersistentFlags().Int("db-port", 5432, "Postgres port")
	rootCmd.PersistentFlags().String("db-user", "coach", "Postgres user")
	rootCmd.PersistentFlags().String("db-password", "", "Postgres password")
	rootCmd.PersistentFlags().String("db-name", "coach", "Postgres database")

	for flag, key := range map[string]string{
		"db-host":     "DB_HOST",
		"db-port":     "DB_PORT",
		"db-user":     "DB_USER",
		"db-password": "DB_PASSWORD",
		"db-name":     "DB_NAME",
	} {
		cobra.CheckErr(viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)))
	}
}

// initConfig reads the .env file and environment variables if set. Flags win
// over both.
func initConfig() {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()
	viper.AutomaticEnv()
}

// openStore connects to the session archive.
func openStore() (storage.Store, func(), error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		viper.GetString("DB_HOST"),
		viper.GetInt("DB_PORT"),
		viper.GetString("DB_USER"),
		viper.GetString("DB_PASSWORD"),
		viper.GetString("DB_NAME"),
	)

	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to archive database: %w", err)
	}
	return storage.NewStore(conn), func() { _ = conn.Close() }, nil
}
