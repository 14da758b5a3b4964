package main

import (
	"encoding/json"
	"os"

	"github.com/biznesassistant/biznesassistant/internal/api/dto"
	"github.com/biznesassistant/biznesassistant/internal/service"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/spf13/cobra"
)

var (
	flagTenantName  string
	flagTaxID       string
	flagTier        string
	flagCompanyName string
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage tenants",
}

var tenantCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a tenant with its first company",
	RunE:  runTenantCreate,
}

func init() {
	tenantCreateCmd.Flags().StringVar(&flagTenantName, "name", "", "Tenant name (required)")
	tenantCreateCmd.Flags().StringVar(&flagTaxID, "tax-id", "", "Nine digit tax ID (required)")
	tenantCreateCmd.Flags().StringVar(&flagTier, "tier", "", "Subscription tier, freemium trial when empty")
	tenantCreateCmd.Flags().StringVar(&flagCompanyName, "company-name", "", "Name of the first company, defaults to the tenant name")
	_ = tenantCreateCmd.MarkFlagRequired("name")
	_ = tenantCreateCmd.MarkFlagRequired("tax-id")

	tenantCmd.AddCommand(tenantCreateCmd)
	rootCmd.AddCommand(tenantCmd)
}

func runTenantCreate(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := service.NewTenantService(a.params).CreateTenant(ctx, dto.CreateTenantRequest{
		Name:             flagTenantName,
		TaxID:            flagTaxID,
		SubscriptionTier: types.SubscriptionTier(flagTier),
		CompanyName:      flagCompanyName,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
