// Package main is the league-roulette command: the HTTP/WebSocket server
// plus catalog and roll utilities.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "league-roulette",
	Short: "League of Legends five-player randomizer",
	Long: `league-roulette assigns a role, champion, item and flourish to each of five
players. The server streams spinning slots to browsers over WebSocket; the
other commands manage the Data Dragon catalog from the shell.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadEnv()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file (default: .env if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(tokenCmd)
}

// loadEnv reads a .env file without overriding variables already set.
func loadEnv() {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Fatalf("failed to load %s: %v", envFile, err)
		}
		return
	}
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}
}
