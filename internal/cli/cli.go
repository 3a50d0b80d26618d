// Package cli implements the administrative command line: API key
// management and user management. It is invoked when the binary is
// started with arguments; without arguments the API server runs instead.
package cli

import (
	"fmt"
	"os"

	"github.com/AvirupSahaAug/Role-Juggler/internal/api/middleware"
	"github.com/AvirupSahaAug/Role-Juggler/internal/config"
	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	cfg           *config.Config
	apiKeyManager *middleware.APIKeyManager
	userService   *services.UserService
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "role-juggler",
	Short: "Role Juggler backend service",
	Long: `Role Juggler turns a working inbox into structured work items:
updates, meetings, tasks and jobs, one profile per user.

This command line tool provides:
  - Key management: show and reset the API key
  - User management: create users, list users, reset passwords

Examples:
  role-juggler key show          # show the current API key
  role-juggler key reset         # reset the API key
  role-juggler user create       # create a new user
  role-juggler user list         # list all users
  role-juggler user reset-pwd    # reset a user's password`,
}

// Execute runs the CLI with the provided database and config
func Execute(database *gorm.DB, config *config.Config) {
	db = database
	cfg = config

	var err error
	apiKeyManager, err = middleware.NewAPIKeyManager(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize API key manager: %v\n", err)
		os.Exit(1)
	}

	userService = services.NewUserService(db, cfg.GetEncryptionKey())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(userCmd)
}
