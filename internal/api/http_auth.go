package api

import (
	"context"
	"errors"
	"hospital/internal/entity/converter"
	"hospital/internal/entity/dto"
	"hospital/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Register 公开注册患者或医生账号，成功后直接返回会话
func (h *HTTPHandler) Register(c *gin.Context) {
	if !h.requireRepo(c) {
		return
	}

	var req dto.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.accounts.Register(ctx, req)
	if err != nil {
		ServiceError(c, err, "register user")
		return
	}

	session, err := h.accounts.IssueSession(user)
	if err != nil {
		ServiceError(c, err, "create session")
		return
	}
	c.JSON(http.StatusCreated, makeAuthResponse(session))
}

// Login 用户名密码登录
func (h *HTTPHandler) Login(c *gin.Context) {
	if !h.requireRepo(c) {
		return
	}

	var req dto.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	session, err := h.accounts.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("client_ip", c.ClientIP()).Info("login attempt failed")
		}
		ServiceError(c, err, "log in")
		return
	}
	c.JSON(http.StatusOK, makeAuthResponse(session))
}

// Me 返回当前登录用户
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	dbUser, err := h.accounts.GetUser(ctx, user.ID)
	if err != nil {
		ServiceError(c, err, "load profile")
		return
	}
	c.JSON(http.StatusOK, converter.UserToSummary(dbUser))
}

func makeAuthResponse(session *service.Session) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      converter.UserToSummary(session.User),
	}
}
