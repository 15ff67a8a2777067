package tenant

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"meetscribe/internal/app"
	"meetscribe/internal/app/model"
)

// tenantWriter is satisfied by the Postgres and sqlite stores.
type tenantWriter interface {
	UpsertTenant(ctx context.Context, tenant model.Tenant) error
}

var (
	tenantName string
	quotaHours float64
	usageHours float64
	validTo    string
)

func init() {
	setCmd.Flags().StringVarP(&tenantName, "tenant", "t", "", "tenant name")
	setCmd.Flags().Float64VarP(&quotaHours, "quota", "q", 0, "subscription quota in audio hours")
	setCmd.Flags().Float64VarP(&usageHours, "usage", "u", 0, "hours already consumed")
	setCmd.Flags().StringVarP(&validTo, "validTo", "e", "", "subscription expiry date, format 2006-01-02")

	setCmd.MarkFlagRequired("tenant")
	setCmd.MarkFlagRequired("quota")
	setCmd.MarkFlagRequired("validTo")

	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(showCmd)
}

// Cmd represents the tenant command
var Cmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage tenant subscriptions",
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update a tenant's quota and expiry",
	Run: func(cmd *cobra.Command, args []string) {
		expiry, err := time.Parse("2006-01-02", validTo)
		if err != nil {
			log.Fatalf("invalid validTo date: %v", err)
		}

		application, cleanup, err := app.InitializeApp()
		if err != nil {
			log.Fatalf("initialization failed: %v", err)
		}
		defer cleanup()

		writer, ok := application.TenantStore.(tenantWriter)
		if !ok {
			log.Fatal("the configured tenant store does not support updates")
		}

		err = writer.UpsertTenant(cmd.Context(), model.Tenant{
			Name:       tenantName,
			QuotaHours: quotaHours,
			UsageHours: usageHours,
			ValidTo:    expiry,
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("tenant %s: quota %.2fh, valid to %s\n", tenantName, quotaHours, validTo)
	},
}

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a tenant's quota and usage",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			log.Fatalf("initialization failed: %v", err)
		}
		defer cleanup()

		tenant, err := application.TenantStore.GetTenant(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}
		if tenant == nil {
			log.Fatalf("tenant %q is not registered", args[0])
		}
		fmt.Printf("tenant: %s\nquota: %.2fh\nusage: %.2fh\nvalid to: %s\n",
			tenant.Name, tenant.QuotaHours, tenant.UsageHours, tenant.ValidTo.Format("2006-01-02"))
	},
}
