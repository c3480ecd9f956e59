// Command oauth-init walks through the Google OAuth consent flow once and
// writes the refresh token the report exporter needs. Run it before enabling
// the Sheets export; the worker only ever reads the saved token.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"

	"fintrack/internal/config"
	"fintrack/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentSheets)
	log.SetDefault(logger)

	// Config is not validated here: a missing token file is the normal
	// starting state for this command.
	cfg := config.Load()

	var creds []byte
	var err error
	switch {
	case cfg.GoogleOAuthClientJSON != "":
		creds = []byte(cfg.GoogleOAuthClientJSON)
	case cfg.GoogleOAuthClientFile != "":
		creds, err = os.ReadFile(cfg.GoogleOAuthClientFile)
		if err != nil {
			logger.Error("Failed to read OAuth client file", "error", err, "path", cfg.GoogleOAuthClientFile)
			os.Exit(1)
		}
	default:
		logger.Error("Set GOOGLE_OAUTH_CLIENT_JSON or GOOGLE_OAUTH_CLIENT_FILE")
		os.Exit(1)
	}

	oauthCfg, err := google.ConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		logger.Error("Failed to parse OAuth client credentials", "error", err)
		os.Exit(1)
	}

	// The redirect URI must be listed in the OAuth client's authorized
	// redirect URIs.
	redirectPort := os.Getenv("OAUTH_REDIRECT_PORT")
	if redirectPort == "" {
		redirectPort = "8085"
	}
	oauthCfg.RedirectURL = "http://localhost:" + redirectPort + "/callback"

	codeCh := make(chan string, 1)
	mux := http.NewServeMux()
	srv := &http.Server{Addr: ":" + redirectPort, Handler: mux}
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if errStr := r.URL.Query().Get("error"); errStr != "" {
			http.Error(w, "OAuth error: "+errStr, http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		fmt.Fprintln(w, "You may close this window and return to the terminal.")
		codeCh <- code
		go func() { time.Sleep(500 * time.Millisecond); _ = srv.Close() }()
	})
	go func() { _ = srv.ListenAndServe() }()

	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open this URL to authorize:\n%s\n", authURL)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	select {
	case code := <-codeCh:
		tok, err := oauthCfg.Exchange(context.Background(), code)
		if err != nil {
			logger.Error("Token exchange failed", "error", err)
			os.Exit(1)
		}
		outFile := cfg.GoogleOAuthTokenFile
		if outFile == "" {
			outFile = "token.json"
		}
		if err := writeToken(outFile, tok); err != nil {
			logger.Error("Failed to save token", "error", err, "path", outFile)
			os.Exit(1)
		}
		logger.Info("Token saved", "path", outFile)
	case <-time.After(5 * time.Minute):
		logger.Error("Authorization timed out")
		os.Exit(1)
	case <-interrupt:
		logger.Error("Interrupted before authorization completed")
		os.Exit(1)
	}
}

func writeToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}
