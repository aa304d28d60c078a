package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	RunE:  runUsersList,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show server row counts (admin only)",
	RunE:  runStats,
}

func runUsersList(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	users, err := api.Users()
	if err != nil {
		return err
	}

	fmt.Printf("\n%d user(s)\n", len(users))
	fmt.Println(strings.Repeat("─", 72))
	for _, u := range users {
		fmt.Printf("  %-28s  %-24s  %-28s  %s\n", u.ID, u.Name, u.Email, u.Role)
	}
	fmt.Println()
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	users, products, err := api.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("users: %d\nproducts: %d\n", users, products)
	return nil
}
