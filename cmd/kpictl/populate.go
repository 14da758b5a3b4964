package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/service"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/spf13/cobra"
)

var (
	flagTenantID   string
	flagCompanyID  string
	flagPeriod     string
	flagAllPeriods bool
	flagRetries    uint64
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Replace the stored KPIs of a company for the current period",
	Long: "Recomputes all seven KPIs for the calendar period containing today and replaces the stored rows\n" +
		"in one transaction. Database failures are retried with exponential backoff.",
	RunE: runPopulate,
}

func init() {
	populateCmd.Flags().StringVar(&flagTenantID, "tenant", "", "Tenant ID (required)")
	populateCmd.Flags().StringVar(&flagCompanyID, "company", "", "Company ID (required)")
	populateCmd.Flags().StringVar(&flagPeriod, "period", string(types.KPIPeriodMonthly), "Period: daily, weekly, monthly, quarterly or yearly")
	populateCmd.Flags().BoolVar(&flagAllPeriods, "all", false, "Populate every period")
	populateCmd.Flags().Uint64Var(&flagRetries, "retries", 3, "Retries on database errors")
	_ = populateCmd.MarkFlagRequired("tenant")
	_ = populateCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(populateCmd)
}

func runPopulate(_ *cobra.Command, _ []string) error {
	period := types.KPIPeriod(flagPeriod)
	if !flagAllPeriods {
		if err := period.Validate(); err != nil {
			return err
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := commandContext()
	defer cancel()

	span, ctx := a.sentry.StartTransaction(ctx, "kpictl.populate")
	if span != nil {
		defer span.Finish()
	}

	log := a.logger.WithTenant(flagTenantID, flagCompanyID)
	populator := service.NewKPIPopulatorService(a.params)
	policy := retryPolicy{
		MaxRetries:      flagRetries,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		OnRetry: func(attempt int, err error) {
			a.sentry.AddBreadcrumb("kpictl", "population retried", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
		},
	}

	var result any
	err = retryTransient(ctx, policy, log, func(ctx context.Context) error {
		if flagAllPeriods {
			resp, err := populator.PopulateAllPeriods(ctx, flagTenantID, flagCompanyID)
			result = resp
			return err
		}
		resp, err := populator.PopulateAll(ctx, flagTenantID, flagCompanyID, period)
		result = resp
		return err
	})
	if err != nil {
		a.sentry.CaptureException(ctx, err)
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
