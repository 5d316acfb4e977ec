package cmd

import (
	"fmt"

	"MusicHub/config"
	"MusicHub/core/auth"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Session token utilities",
}

var tokenVerifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Verify a session token with JWT_SECRET and print its user id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET must be set")
		}
		return verifyToken(cmd, auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL), args[0])
	},
}

func verifyToken(cmd *cobra.Command, codec *auth.TokenCodec, token string) error {
	userID, err := codec.Verify(token)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), userID)
	return nil
}

func init() {
	tokenCmd.AddCommand(tokenVerifyCmd)
	rootCmd.AddCommand(tokenCmd)
}
