package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tailorly/seam/internal/resource"
)

var (
	searchText string
	listLimit  int
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Customer record operations",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers, from the network or the offline cache",
	Run:   runCustomersList,
}

func init() {
	customersListCmd.Flags().StringVar(&searchText, "search", "", "substring match over name/phone/email/address")
	customersListCmd.Flags().IntVar(&listLimit, "limit", 0, "page size")
	customersCmd.AddCommand(customersListCmd)
	rootCmd.AddCommand(customersCmd)
}

func runCustomersList(cmd *cobra.Command, args []string) {
	layer, _ := setup()
	defer func() {
		_ = layer.Stop()
	}()

	ctx := context.Background()
	layer.Start(ctx)

	page, err := layer.Customers.List(ctx, resource.Query{
		SearchText: searchText,
		Limit:      listLimit,
	})
	if err != nil {
		slog.Error("Failed to list customers", "error", err)
		os.Exit(1)
	}

	if page.Stale {
		fmt.Println("(offline: served from cache)")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPHONE\tEMAIL")
	for _, c := range page.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			c.ID, c.PersonalDetails.Name, c.PersonalDetails.Phone, c.PersonalDetails.Email)
	}
	_ = w.Flush()

	if page.LastKey != "" {
		fmt.Printf("more results after %s\n", page.LastKey)
	}
}
