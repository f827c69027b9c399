package api

import (
	"context"
	"hospital/internal/auth"
	"hospital/internal/config"
	"hospital/internal/model"
	"hospital/internal/service"
	"hospital/internal/storage"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 5 * time.Second

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	// 服务层
	accounts *service.AccountService
	booking  *service.BookingService
	board    *service.BoardService
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		accounts:          service.NewAccountService(repo, authManager),
		booking:           service.NewBookingService(repo),
		board:             service.NewBoardService(repo, store, cfg.MaxAttachmentBytes),
	}, nil
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// Health 存活检查，同时探测数据库连接
func (h *HTTPHandler) Health(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "database not configured")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()
	if err := h.repo.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("database ping failed")
		ServiceUnavailable(c, "database unreachable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requireRepo 数据库未配置时返回 503
func (h *HTTPHandler) requireRepo(c *gin.Context) bool {
	if h.repo == nil {
		ServiceUnavailable(c, "database not configured")
		return false
	}
	return true
}

// parseIDParam 解析路径中的正整数 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
