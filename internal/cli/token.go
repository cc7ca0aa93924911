package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shubham90-developer/Total-Health-sub004/internal/auth"
	"github.com/shubham90-developer/Total-Health-sub004/internal/env"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API bearer tokens",
}

var (
	tokenUser string
	tokenRole string
)

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a bearer token signed with JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := env.Load()
		if err != nil {
			return err
		}
		role := auth.Role(tokenRole)
		if !role.Valid() {
			return fmt.Errorf("role must be one of user, vendor, admin")
		}

		store := auth.NewTokenStore(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTDuration)
		token, err := store.IssueToken(tokenUser, role)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)

	tokenIssueCmd.Flags().StringVar(&tokenUser, "user", "", "User ID the token is issued to")
	tokenIssueCmd.Flags().StringVar(&tokenRole, "role", string(auth.RoleUser), "Role claim: user, vendor or admin")
	_ = tokenIssueCmd.MarkFlagRequired("user")
}
