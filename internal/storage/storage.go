package storage

import (
	"context"
	"errors"
	"fmt"
	"hospital/internal/config"
	"strings"
)

const (
	// TypeLocal 表示本地文件系统存储。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的存储后端。
	TypeS3 = "s3"
	// TypeOSS 表示阿里云 OSS 存储。
	TypeOSS = "oss"
	// TypeCOS 表示腾讯云 COS 存储。
	TypeCOS = "cos"
	// TypeR2 表示 Cloudflare R2 存储。
	TypeR2 = "r2"
)

var (
	// ErrEmptyPayload 表示上传内容为空。
	ErrEmptyPayload = errors.New("empty payload")
	// ErrInvalidKey 表示对象键无法安全地映射到存储位置。
	ErrInvalidKey = errors.New("invalid object key")
)

// SaveOptions 控制存储后端如何持久化文件。
//
// Category 决定对象键的第一级目录，Extension 为不含前导点的扩展名。
// BaseName 为空时使用随机 UUID，ContentType 为空时按扩展名推断。
type SaveOptions struct {
	Category    string
	Extension   string
	BaseName    string
	ContentType string
}

// Storage 保存帖子附件并返回对象键，对象键写入数据库并用于拼接公开 URL。
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
	// Delete 删除对象；对象不存在时不返回错误。
	Delete(ctx context.Context, key string) error
}

// LocalBaseDirProvider 由暴露可通过 HTTP 直接提供服务的本地目录的存储驱动实现。
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage 根据配置实例化存储后端。
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
