package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"kazanion/config"
	"kazanion/internal/api"
	"kazanion/internal/types"
	"kazanion/pkg/database"
	"kazanion/pkg/logger"
	"kazanion/pkg/token"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:          "kazanctl",
		Short:        "Kazanion back office maintenance commands",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())
	rootCmd.AddCommand(snapshotCmd())
	rootCmd.AddCommand(expireStoriesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env 命令共用的配置、数据库和服务
type env struct {
	cfg      *config.Config
	db       *sqlx.DB
	services *api.Services
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return nil, err
	}
	services := api.NewServices(api.Deps{
		DB:     db,
		Tokens: token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL),
		Logger: logger.New(cfg.LogLevel),
	})
	return &env{cfg: cfg, db: db, services: services}, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables for the configured database driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			if err := database.Migrate(cmd.Context(), e.db); err != nil {
				return err
			}
			fmt.Printf("Schema is up to date (%s)\n", e.cfg.Database.Driver)
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var email, username, password, name, role string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a back office administrator",
		Example: `  kazanctl create-admin --email ops@kazanion.com --username ops --password s3cret! --name "Ops"
  kazanctl create-admin -e viewer@kazanion.com -u viewer -p s3cret! -n Viewer --role viewer`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			admin, err := e.services.AdminUser.Create(cmd.Context(), types.AdminUserRequest{
				Email:    &email,
				Username: &username,
				Password: &password,
				Name:     &name,
				Role:     &role,
			})
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Printf("Created admin #%d (%s, %s)\n", admin.ID, admin.Username, admin.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "E-mail address")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Login name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password, at least 6 characters")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name")
	cmd.Flags().StringVar(&role, "role", "admin", "Role (admin, editor, viewer)")
	for _, f := range []string{"email", "username", "password", "name"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func snapshotCmd() *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write the daily analytics snapshot now",
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now()
			if day != "" {
				parsed, err := time.Parse("2006-01-02", day)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", day, err)
				}
				at = parsed
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			snap, err := e.services.Analytics.TakeSnapshot(cmd.Context(), at)
			if err != nil {
				return err
			}
			fmt.Printf("Snapshot %s: users=%d active=%d surveys=%d earnings=%s\n",
				snap.Date.Format("2006-01-02"), snap.TotalUsers, snap.ActiveUsers, snap.CompletedSurveys, snap.TotalEarnings)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "date", "", "Snapshot day as YYYY-MM-DD, defaults to today")
	return cmd
}

func expireStoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire-stories",
		Short: "Deactivate stories whose expiry time has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			n, err := e.services.Story.DeactivateExpired(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Deactivated %d stories\n", n)
			return nil
		},
	}
}
