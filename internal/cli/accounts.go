package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridbill/gridbill/internal/domain"
)

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsListCmd)

	accountsListCmd.Flags().StringP("type", "t", "ALL", "Filter by account type (ALL, ELECTRICITY, GAS)")
	accountsListCmd.Flags().StringP("server", "s", "http://127.0.0.1:8090", "Dashboard server base URL")
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Inspect the accounts served by a running dashboard",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts from a running server",
	RunE:  runAccountsList,
}

func runAccountsList(cmd *cobra.Command, args []string) error {
	rawTag, _ := cmd.Flags().GetString("type")
	tag, err := domain.ParseFilterTag(strings.ToUpper(rawTag))
	if err != nil {
		return err
	}

	base, _ := cmd.Flags().GetString("server")
	accounts, err := fetchAccounts(base)
	if err != nil {
		return err
	}
	accounts = domain.FilterAccounts(accounts, tag)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tADDRESS\tBALANCE")
	var total float64
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", a.ID, a.Type, a.Address, a.Balance)
		total += a.Balance
	}
	fmt.Fprintf(w, "\t\tTOTAL\t%.2f\n", total)
	return w.Flush()
}

func fetchAccounts(base string) ([]domain.Account, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(strings.TrimRight(base, "/") + "/api/getAccounts")
	if err != nil {
		return nil, fmt.Errorf("fetch accounts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var accounts []domain.Account
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}
