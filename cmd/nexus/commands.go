package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/aussiebroadwan/nexus/internal/nexus/app"
	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "nexus",
		Short:         "PixelForge Nexus project portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile)
		},
		// serve is the default command
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newUserCmd(),
	)
	return root
}

// loadEnvFile loads path when it exists. Variables already set in the
// environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LoadConfig()

			db, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			v, dirty, err := db.SchemaVersion()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d (dirty=%t) in %s\n", v, dirty, cfg.DatabaseFile)
			return nil
		},
	}
}

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users directly in the database",
	}

	var username, password, role string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user; a password is generated when none is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := domain.ParseRole(role)
			if err != nil {
				return fmt.Errorf("--role must be one of Admin, Project Lead, Developer: %w", err)
			}

			generated := password == ""
			if generated {
				if password, err = cryptox.GeneratePassword(); err != nil {
					return err
				}
			}

			cfg := app.LoadConfig()
			cryptox.SetPepperPath(cfg.PepperFile)

			db, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			users := &service.UserService{Store: db}
			u, err := users.Create(context.Background(), username, password, r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created %s (%s) id=%s\n", u.Username, u.Role, u.ID)
			if generated {
				fmt.Fprintf(out, "password: %s\n", password)
			}
			return nil
		},
	}
	createCmd.Flags().StringVar(&username, "username", "", "login name")
	createCmd.Flags().StringVar(&password, "password", "", "password (generated when empty)")
	createCmd.Flags().StringVar(&role, "role", "Developer", `role: "Admin", "Project Lead" or "Developer"`)
	_ = createCmd.MarkFlagRequired("username")

	userCmd.AddCommand(createCmd)
	return userCmd
}
