package db

import "time"

const (
	UserRolePatient = "patient"
	UserRoleDoctor  = "doctor"
	UserRoleAdmin   = "admin"
)

// User 表示持久化的用户账户。
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"column:username;type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(20);index;not null" json:"role"`
	Name         string    `gorm:"column:name;type:varchar(100)" json:"name"`
	// Department 仅对医生有效，其他角色始终为 NULL
	Department *string `gorm:"column:department;type:varchar(100)" json:"department"`
	Birth      *string `gorm:"column:birth;type:varchar(10)" json:"birth"`
	Gender     *string `gorm:"column:gender;type:varchar(16)" json:"gender"`
}

// TableName 指定表名。
func (User) TableName() string {
	return "users"
}

// IsValidRole 判断角色是否合法。
func IsValidRole(role string) bool {
	switch role {
	case UserRolePatient, UserRoleDoctor, UserRoleAdmin:
		return true
	default:
		return false
	}
}

// DepartmentFor returns the department to persist for the given role.
func DepartmentFor(role string, department *string) *string {
	if role != UserRoleDoctor || department == nil {
		return nil
	}
	value := *department
	return &value
}

// AllModels lists every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Appointment{},
		&Post{},
	}
}
