package main

import (
	"fmt"

	"github.com/biznesassistant/biznesassistant/internal/auth"
	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/spf13/cobra"
)

var flagUserID string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for local testing",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&flagUserID, "user", "", "User ID (required)")
	tokenCmd.Flags().StringVar(&flagTenantID, "tenant", "", "Tenant ID")
	tokenCmd.Flags().StringVar(&flagCompanyID, "company", "", "Company ID")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	token, err := auth.NewProvider(cfg).GenerateToken(types.Principal{
		UserID:    flagUserID,
		TenantID:  flagTenantID,
		CompanyID: flagCompanyID,
	})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
