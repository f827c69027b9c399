package sql

import (
	"context"
	"fmt"
	"hospital/internal/entity"
	"hospital/internal/entity/db"
	"strings"

	"gorm.io/gorm"
)

// CreateUser persists a new user record.
func (r *GormRepository) CreateUser(ctx context.Context, user *db.User) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateUser updates an existing user entry.
func (r *GormRepository) UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user")
	}
	if updates.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// GetUserByUsername loads a user by exact username.
func (r *GormRepository) GetUserByUsername(ctx context.Context, username string) (*db.User, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if username == "" {
		return nil, fmt.Errorf("username is empty")
	}

	var user db.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID loads a user by ID.
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*db.User, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every user, newest first.
func (r *GormRepository) ListUsers(ctx context.Context) ([]db.User, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var users []db.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListUsersByRole returns users holding the given role ordered by name.
func (r *GormRepository) ListUsersByRole(ctx context.Context, role string) ([]db.User, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var users []db.User
	if err := r.db.WithContext(ctx).Where("role = ?", role).Order("name ASC").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// likeEscaper 转义 LIKE 通配符，关键字按字面匹配
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SearchPatients matches the keyword against name OR username; an empty
// keyword returns every patient.
func (r *GormRepository) SearchPatients(ctx context.Context, keyword string) ([]db.User, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&db.User{}).Where("role = ?", db.UserRolePatient)
	if trimmed := strings.TrimSpace(keyword); trimmed != "" {
		kw := "%" + likeEscaper.Replace(strings.ToLower(trimmed)) + "%"
		query = query.Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(username) LIKE ? ESCAPE '!'", kw, kw)
	}

	var users []db.User
	if err := query.Order("name ASC").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user by ID.
func (r *GormRepository) DeleteUser(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user id")
	}
	result := r.db.WithContext(ctx).Delete(&db.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAppointmentsForUser counts appointments where the user is either party.
func (r *GormRepository) CountAppointmentsForUser(ctx context.Context, userID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Appointment{}).
		Where("patient_id = ? OR doctor_id = ?", userID, userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
