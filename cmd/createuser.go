package cmd

import (
	"fmt"
	"log"

	"hymnal/config"
	"hymnal/core/auth"
	"hymnal/db"
	"hymnal/model"
	"hymnal/repository"

	"github.com/spf13/cobra"
)

var (
	createUserName     string
	createUserPassword string
	createUserRole     string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create or update a login user",
	Long:  `Create a login user with a bcrypt-hashed password, or replace the password and role of an existing one.`,
	Run: func(cmd *cobra.Command, args []string) {
		if createUserName == "" || createUserPassword == "" {
			log.Fatal("--username and --password are required")
		}

		cfg := config.Load()

		if err := db.ConnectDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.DB.Close()

		if err := db.InitDB(cfg); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}

		hash, err := auth.HashPassword(createUserPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		userRepo := repository.NewMySQLUserRepository(db.DB, cfg.UsersTable)
		err = userRepo.UpsertUser(&model.User{
			Username:     createUserName,
			PasswordHash: hash,
			Role:         createUserRole,
		})
		if err != nil {
			log.Fatalf("Failed to upsert user: %v", err)
		}

		fmt.Printf("User '%s' created/updated in table '%s'.\n", createUserName, cfg.UsersTable)
	},
}

func init() {
	createUserCmd.Flags().StringVar(&createUserName, "username", "", "login username")
	createUserCmd.Flags().StringVar(&createUserPassword, "password", "", "login password")
	createUserCmd.Flags().StringVar(&createUserRole, "role", "user", "user role")
	rootCmd.AddCommand(createUserCmd)
}
