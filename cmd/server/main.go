package main

import (
	"context"
	"errors"
	"fmt"
	"hospital/internal/config"
	"hospital/internal/model"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "hospital",
		Short:         "Hospital appointment API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// migrateCmd 仅执行自动迁移后退出
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer repo.Close()
			logrus.WithField("db_type", cfg.DBType).Info("database schema is up to date")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var username, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			if username == "" || strings.TrimSpace(password) == "" {
				return errors.New("--username and --password are required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx := context.Background()
			_, err = repo.GetUserByUsername(ctx, username)
			switch {
			case err == nil:
				return fmt.Errorf("username %q already exists", username)
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}

			cfg.AdminUsername = username
			cfg.AdminPassword = password
			cfg.AdminName = name
			return model.SeedAdmin(ctx, repo, cfg)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin login name")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	return cmd
}

// openRepository 初始化数据库；DBType 为空时仓库为 nil，命令无法运行
func openRepository(cfg config.Config) (model.Repository, error) {
	if strings.TrimSpace(cfg.DBType) == "" {
		return nil, errors.New("DBType is not configured")
	}
	repo, err := model.InitRepository(&cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise repository: %w", err)
	}
	if repo == nil {
		return nil, errors.New("repository not initialised")
	}
	return repo, nil
}

// loadConfig 解析环境变量并初始化日志
func loadConfig() (config.Config, error) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	cfg, err := config.ParseConfig()
	if err != nil {
		return config.Config{}, err
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("log_level", cfg.LogLevel).Warn("unknown log level, falling back to info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	return cfg, nil
}
