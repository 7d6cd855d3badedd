package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"migraph/internal/auth"
	"migraph/internal/storage"
)

var tokenName string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens for the HTTP server",
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new API token",
	Long: `Create a new API token for authenticating against the HTTP server.

The token is printed once and never stored; only its hash is kept.`,
	RunE: runTokenCreate,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys",
	RunE:  runTokenList,
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <key-id>",
	Short: "Revoke an API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenRevoke,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenCreateCmd)
	tokenCmd.AddCommand(tokenListCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)

	tokenCreateCmd.Flags().StringVar(&tokenName, "name", "default", "Name for the new key")
}

func runTokenCreate(cmd *cobra.Command, args []string) error {
	_, _, store := mustSetup()
	defer store.Close()

	keyID, err := auth.GenerateKeyID()
	if err != nil {
		return err
	}
	token, prefix, err := auth.GenerateToken()
	if err != nil {
		return err
	}
	hash, err := auth.HashToken(token)
	if err != nil {
		return err
	}

	key := &storage.APIKey{
		KeyID:       keyID,
		Name:        tokenName,
		TokenPrefix: prefix,
		TokenHash:   hash,
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.CreateAPIKey(key); err != nil {
		return err
	}

	fmt.Printf("Key ID: %s\n", keyID)
	fmt.Printf("Token:  %s\n", token)
	fmt.Println("\nStore this token now; it cannot be recovered later.")
	return nil
}

func runTokenList(cmd *cobra.Command, args []string) error {
	_, _, store := mustSetup()
	defer store.Close()

	keys, err := store.ListAPIKeys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("No API keys.")
		return nil
	}
	fmt.Printf("%-30s %-20s %-12s %-20s %s\n", "KEY ID", "NAME", "PREFIX", "CREATED", "STATUS")
	for _, key := range keys {
		status := "active"
		if key.RevokedAt != nil {
			status = "revoked"
		}
		fmt.Printf("%-30s %-20s %-12s %-20s %s\n",
			key.KeyID, key.Name, key.TokenPrefix,
			key.CreatedAt.Format("2006-01-02 15:04:05"), status)
	}
	return nil
}

func runTokenRevoke(cmd *cobra.Command, args []string) error {
	_, _, store := mustSetup()
	defer store.Close()

	if err := store.RevokeAPIKey(args[0]); err != nil {
		return err
	}
	fmt.Printf("Revoked %s\n", args[0])
	return nil
}
