package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/statement-reader/internal/cli"
	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/config"
	"github.com/Veraticus/statement-reader/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
		Long:  `Authenticate with external services used for exports.`,
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Print a Google consent URL to open in your browser
2. Wait for the redirect on a local callback server
3. Save the refresh token to your config file

You'll need to run this once before using --export sheets.`,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")
	cmd.Flags().Int("port", 0, "local callback port (default: any free port)")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	sheetsCfg := config.LoadSheetsConfig(viper.GetViper())
	clientID := sheetsCfg.ClientID
	clientSecret := sheetsCfg.ClientSecret

	// Override with flags if provided
	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	reader := cli.NewLineReader(cmd.InOrStdin())
	var err error
	if clientID == "" {
		if clientID, err = reader.Ask(ctx, out, "OAuth2 Client ID", ""); err != nil {
			return err
		}
	}
	if clientSecret == "" {
		if clientSecret, err = reader.Ask(ctx, out, "OAuth2 Client Secret", ""); err != nil {
			return err
		}
	}
	clientID = strings.TrimSpace(clientID)
	clientSecret = strings.TrimSpace(clientSecret)
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("%w: OAuth2 client id and secret are required (sheets.client_id, sheets.client_secret or --client-id/--client-secret)", common.ErrMissingConfig)
	}

	tokenFile, err := tokenPath()
	if err != nil {
		return err
	}
	port, _ := cmd.Flags().GetInt("port")

	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.AuthenticateOAuth2Interactive(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
		Port:         port,
	}, out)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("sheets.client_id", clientID)
	viper.Set("sheets.client_secret", clientSecret)
	viper.Set("sheets.refresh_token", token.RefreshToken)

	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		_, _ = fmt.Fprintln(out, cli.FormatWarning("Could not save the refresh token. Add this to your config.yaml:"))
		_, _ = fmt.Fprintf(out, "sheets:\n  refresh_token: %q\n", token.RefreshToken)
		return nil
	}

	_, _ = fmt.Fprintln(out, cli.FormatSuccess("Google Sheets is configured. Use --export sheets to create spreadsheets."))
	return nil
}

func configDir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "statement"), nil
}

func tokenPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sheets-token.json"), nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		configFile = filepath.Join(dir, "config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configFile), 0o750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}
