package model

import (
	"context"
	"errors"
	"hospital/internal/auth"
	"hospital/internal/config"
	"hospital/internal/entity/db"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedAdmin ensures the configured bootstrap admin exists. It never touches an
// existing account with the same username.
func SeedAdmin(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}
	username := strings.TrimSpace(cfg.AdminUsername)
	password := cfg.AdminPassword
	if username == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	existing, err := repo.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		if existing.Role != db.UserRoleAdmin {
			logrus.WithField("username", username).Warn("seed admin username is taken by a non-admin account")
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(cfg.AdminName)
	if name == "" {
		name = username
	}

	admin := &db.User{
		Username:     username,
		PasswordHash: hash,
		Role:         db.UserRoleAdmin,
		Name:         name,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": admin.ID, "username": username}).Info("seeded admin account")
	return nil
}
