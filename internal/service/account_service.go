package service

import (
	"context"
	"errors"
	"fmt"
	"hospital/internal/auth"
	"hospital/internal/entity"
	"hospital/internal/entity/db"
	"hospital/internal/entity/dto"
	"hospital/internal/model"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AccountService 负责注册、登录以及管理员的用户管理
type AccountService struct {
	repo   model.Repository
	tokens *auth.Manager
}

// NewAccountService 创建账户服务实例
func NewAccountService(repo model.Repository, tokens *auth.Manager) *AccountService {
	return &AccountService{repo: repo, tokens: tokens}
}

// Session 是登录成功后返回给客户端的令牌与用户
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *db.User
}

// newUserInput 是公开注册与管理员创建共用的字段集合
type newUserInput struct {
	Username   string
	Password   string
	Role       string
	Name       string
	Department *string
	Birth      *string
	Gender     *string
}

// Register 公开注册，只允许患者和医生角色
func (s *AccountService) Register(ctx context.Context, req dto.AuthRegisterRequest) (*db.User, error) {
	if req.Role != db.UserRolePatient && req.Role != db.UserRoleDoctor {
		return nil, invalidInput("role must be patient or doctor")
	}
	return s.createUser(ctx, newUserInput{
		Username:   req.Username,
		Password:   req.Password,
		Role:       req.Role,
		Name:       req.Name,
		Department: req.Department,
		Birth:      req.Birth,
		Gender:     req.Gender,
	})
}

// CreateUser 管理员创建任意角色的用户
func (s *AccountService) CreateUser(ctx context.Context, req dto.UserCreateRequest) (*db.User, error) {
	return s.createUser(ctx, newUserInput{
		Username:   req.Username,
		Password:   req.Password,
		Role:       req.Role,
		Name:       req.Name,
		Department: req.Department,
		Birth:      req.Birth,
		Gender:     req.Gender,
	})
}

func (s *AccountService) createUser(ctx context.Context, in newUserInput) (*db.User, error) {
	username, err := checkUsername(in.Username)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	if !db.IsValidRole(in.Role) {
		return nil, invalidInput("unsupported role %q", in.Role)
	}
	birth, err := normalizeBirth(in.Birth)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, invalidInput("invalid password")
	}

	user := &db.User{
		Username:     username,
		PasswordHash: hash,
		Role:         in.Role,
		Name:         name,
		Department:   db.DepartmentFor(in.Role, trimmedOrNil(in.Department)),
		Birth:        birth,
		Gender:       trimmedOrNil(in.Gender),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user created")
	return user, nil
}

// Login 按用户名精确匹配并校验 bcrypt 哈希，失败统一返回 ErrInvalidCredentials
func (s *AccountService) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.IssueSession(user)
}

// IssueSession 为用户签发新的 JWT
func (s *AccountService) IssueSession(user *db.User) (*Session, error) {
	if s.tokens == nil {
		return nil, ErrUnavailable
	}
	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// GetUser 按 ID 加载用户
func (s *AccountService) GetUser(ctx context.Context, id uint) (*db.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// ListDoctors 返回所有医生，按姓名排序
func (s *AccountService) ListDoctors(ctx context.Context) ([]db.User, error) {
	return s.repo.ListUsersByRole(ctx, db.UserRoleDoctor)
}

// ListUsers 返回所有用户，最新创建的在前
func (s *AccountService) ListUsers(ctx context.Context) ([]db.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateUser 管理员修改用户资料。密码会重新哈希，科室随最终角色重新计算。
func (s *AccountService) UpdateUser(ctx context.Context, actor Actor, id uint, req dto.UserUpdateRequest) (*db.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	current, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	var updates entity.UserUpdates
	if req.Username != nil {
		username, err := checkUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if err := s.ensureUsernameFree(ctx, username, id); err != nil {
			return nil, err
		}
		updates.Username = &username
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidInput("name must not be blank")
		}
		updates.Name = &name
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, invalidInput("invalid password")
		}
		updates.PasswordHash = &hash
	}

	role := current.Role
	if req.Role != nil && *req.Role != current.Role {
		if !db.IsValidRole(*req.Role) {
			return nil, invalidInput("unsupported role %q", *req.Role)
		}
		// 防止管理员把自己降级后失去管理入口
		if current.ID == actor.ID {
			return nil, ErrForbidden
		}
		// 预约引用的患者和医生必须保持原角色
		count, err := s.repo.CountAppointmentsForUser(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("count appointments: %w", err)
		}
		if count > 0 {
			return nil, ErrUserInUse
		}
		role = *req.Role
		updates.Role = &role
	}

	department := current.Department
	if req.Department != nil {
		department = trimmedOrNil(req.Department)
	}
	department = db.DepartmentFor(role, department)
	if !sameOptional(department, current.Department) {
		updates.Department = &department
	}

	if req.Birth != nil {
		birth, err := normalizeBirth(req.Birth)
		if err != nil {
			return nil, err
		}
		updates.Birth = &birth
	}
	if req.Gender != nil {
		gender := trimmedOrNil(req.Gender)
		updates.Gender = &gender
	}

	if !updates.IsEmpty() {
		if err := s.repo.UpdateUser(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrUsernameTaken
			}
			return nil, fmt.Errorf("update user: %w", err)
		}
		logrus.WithFields(logrus.Fields{"user_id": id, "admin_id": actor.ID}).Info("user updated")
	}
	return s.GetUser(ctx, id)
}

// DeleteUser 管理员删除用户；不能删除自己，也不能删除仍被预约引用的用户
func (s *AccountService) DeleteUser(ctx context.Context, actor Actor, id uint) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if id == actor.ID {
		return invalidInput("cannot delete the current account")
	}
	count, err := s.repo.CountAppointmentsForUser(ctx, id)
	if err != nil {
		return fmt.Errorf("count appointments: %w", err)
	}
	if count > 0 {
		return ErrUserInUse
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrUserNotFound
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return ErrUserInUse
		}
		return fmt.Errorf("delete user: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": id, "admin_id": actor.ID}).Info("user deleted")
	return nil
}

// checkUsername 用户名原样保存、原样登录，因此拒绝首尾空白
func checkUsername(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", invalidInput("username is required")
	}
	if strings.TrimSpace(raw) != raw {
		return "", invalidInput("username must not start or end with spaces")
	}
	return raw, nil
}

// ensureUsernameFree 提前检查用户名冲突；并发注册仍由唯一索引兜底
func (s *AccountService) ensureUsernameFree(ctx context.Context, username string, selfID uint) error {
	existing, err := s.repo.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return ErrUsernameTaken
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return fmt.Errorf("check username: %w", err)
	}
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeBirth(value *string) (*string, error) {
	birth := trimmedOrNil(value)
	if birth == nil {
		return nil, nil
	}
	parsed, err := time.Parse(db.DateLayout, *birth)
	if err != nil {
		return nil, invalidInput("birth must be formatted as YYYY-MM-DD")
	}
	formatted := parsed.Format(db.DateLayout)
	return &formatted, nil
}

func sameOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
