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

// userCmd represents the user command group
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User management",
	Long:  `Manage users: create users, list users and reset passwords.`,
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read input: %v\n", err)
		os.Exit(1)
	}
	return strings.TrimSpace(line)
}

func readPassword(prompt string) string {
	fmt.Print(prompt)
	bytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: failed to read password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	return string(bytes)
}

// userCreateCmd creates a new user
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	Long:  `Interactively create a new user with a username, email and password.`,
	Run: func(cmd *cobra.Command, args []string) {
		if userService == nil {
			fmt.Fprintln(os.Stderr, "Error: user service not initialized")
			os.Exit(1)
		}

		reader := bufio.NewReader(os.Stdin)

		username := readLine(reader, "Username: ")
		if username == "" {
			fmt.Fprintln(os.Stderr, "Error: username must not be empty")
			os.Exit(1)
		}

		email := readLine(reader, "Email: ")
		if email == "" {
			fmt.Fprintln(os.Stderr, "Error: email must not be empty")
			os.Exit(1)
		}

		password := readPassword("Password (at least 6 characters): ")
		if len(password) < 6 {
			fmt.Fprintln(os.Stderr, "Error: password must be at least 6 characters")
			os.Exit(1)
		}
		if password != readPassword("Confirm password: ") {
			fmt.Fprintln(os.Stderr, "Error: passwords do not match")
			os.Exit(1)
		}

		firstName := readLine(reader, "First name (optional, press enter to skip): ")
		lastName := readLine(reader, "Last name (optional, press enter to skip): ")

		newUser, err := userService.CreateUser(username, email, password, firstName, lastName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create user: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		fmt.Println("User created successfully.")
		fmt.Printf("  ID: %d\n", newUser.ID)
		fmt.Printf("  Username: %s\n", newUser.Username)
		fmt.Printf("  Email: %s\n", newUser.Email)
	},
}

// userListCmd lists all users
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Run: func(cmd *cobra.Command, args []string) {
		if userService == nil {
			fmt.Fprintln(os.Stderr, "Error: user service not initialized")
			os.Exit(1)
		}

		users, err := userService.ListUsers()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to list users: %v\n", err)
			os.Exit(1)
		}

		if len(users) == 0 {
			fmt.Println("No users yet.")
			return
		}

		fmt.Println("Users:")
		fmt.Println("----------------------------------------")
		fmt.Printf("%-6s %-20s %-30s %s\n", "ID", "Username", "Email", "Created")
		fmt.Println("----------------------------------------")
		for _, u := range users {
			createdAt := u.CreatedAt.Format("2006-01-02 15:04:05")
			fmt.Printf("%-6d %-20s %-30s %s\n", u.ID, u.Username, u.Email, createdAt)
		}
		fmt.Println("----------------------------------------")
		fmt.Printf("%d user(s)\n", len(users))
	},
}

// userResetPwdCmd resets a user's password
var userResetPwdCmd = &cobra.Command{
	Use:   "reset-pwd",
	Short: "Reset a user's password",
	Long:  `Interactively reset the password of a given user. Asks for confirmation.`,
	Run: func(cmd *cobra.Command, args []string) {
		if userService == nil {
			fmt.Fprintln(os.Stderr, "Error: user service not initialized")
			os.Exit(1)
		}

		reader := bufio.NewReader(os.Stdin)

		users, err := userService.ListUsers()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to list users: %v\n", err)
			os.Exit(1)
		}
		if len(users) == 0 {
			fmt.Println("No users yet.")
			return
		}

		fmt.Println("Available users:")
		for _, u := range users {
			fmt.Printf("  [%d] %s (%s)\n", u.ID, u.Username, u.Email)
		}
		fmt.Println()

		idStr := readLine(reader, "ID of the user to reset: ")
		userID, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error: invalid user ID")
			os.Exit(1)
		}

		targetUser, err := userService.GetUserByID(uint(userID))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: user not found: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\nWarning: about to reset the password of '%s' (ID: %d).\n", targetUser.Username, targetUser.ID)
		confirm := readLine(reader, "Continue? (yes/no): ")
		confirm = strings.ToLower(confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Cancelled.")
			return
		}

		newPassword := readPassword("New password (at least 6 characters): ")
		if len(newPassword) < 6 {
			fmt.Fprintln(os.Stderr, "Error: password must be at least 6 characters")
			os.Exit(1)
		}
		if newPassword != readPassword("Confirm new password: ") {
			fmt.Fprintln(os.Stderr, "Error: passwords do not match")
			os.Exit(1)
		}

		if err := userService.ResetPassword(uint(userID), newPassword); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to reset password: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		fmt.Printf("Password of '%s' reset successfully.\n", targetUser.Username)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userResetPwdCmd)
}
