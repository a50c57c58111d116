package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/premesh-10/HealthMateAI/internal/client"
)

var (
	serverURL string
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "healthmate",
	Short: "Symptom checker client for the HealthMate backend",
	Long: `healthmate submits free-text symptom descriptions for analysis and
manages the history of saved checks. Results are educational insights
only, not medical advice.`,
	SilenceUsage: true,
}

func init() {
	defaultDir, _ := os.UserHomeDir()
	defaultDir = filepath.Join(defaultDir, ".healthmate")

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "backend base URL")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDir, "directory for local cache and credentials")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(cachedCmd)
}

func newSession() *client.Session {
	return client.NewSession(serverURL, http.DefaultClient)
}

func newStore() *client.Store {
	_ = os.MkdirAll(dataDir, 0o700)
	cache := client.NewCache(filepath.Join(dataDir, "history-cache.json"))
	creds := client.FileCredentials{Path: filepath.Join(dataDir, "token")}
	return client.NewStore(serverURL, http.DefaultClient, cache, creds)
}

func localCache() *client.Cache {
	return client.NewCache(filepath.Join(dataDir, "history-cache.json"))
}

// clientSignature identifies this installation in saved-record metadata.
// Created once and reused on every save.
func clientSignature() string {
	_ = os.MkdirAll(dataDir, 0o700)
	path := filepath.Join(dataDir, "client-id")
	if data, err := os.ReadFile(path); err == nil {
		if sig := strings.TrimSpace(string(data)); sig != "" {
			return sig
		}
	}
	sig := uuid.New().String()
	_ = os.WriteFile(path, []byte(sig), 0o600)
	return sig
}
