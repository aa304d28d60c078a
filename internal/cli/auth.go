package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Manage your session with the IronStore server.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and discard the stored session",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account behind the stored session",
	RunE:  runWhoami,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(whoamiCmd)
}

func promptLine(label string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(label string) string {
	fmt.Print(label)
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return string(passwordBytes)
}

func runLogin(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	email := promptLine("Email: ")
	password := promptPassword("Password: ")

	user, err := api.Login(email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	if !api.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := api.Logout(); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	name := promptLine("Name: ")
	email := promptLine("Email: ")
	ageStr := promptLine("Age: ")
	bio := promptLine("Bio (optional): ")

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return fmt.Errorf("age must be a number")
	}

	password := promptPassword("Password: ")
	confirm := promptPassword("Confirm Password: ")
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	user, err := api.Register(email, password, name, age, bio)
	if err != nil {
		return err
	}

	fmt.Printf("Account created and logged in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	if !api.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	user, err := api.Verify()
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>  role=%s  id=%s\n", user.Name, user.Email, user.Role, user.ID)
	return nil
}
