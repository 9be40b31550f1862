package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dom/league-roulette/internal/api/middleware"
	"github.com/dom/league-roulette/internal/config"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin token for POST /api/v1/catalog/sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		token, err := middleware.IssueAdminToken(cfg.AdminJWTSecret, tokenSubject, tokenTTL)
		if err != nil {
			return fmt.Errorf("set ADMIN_JWT_SECRET first: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
