package api

import (
	"context"
	"hospital/internal/entity/converter"
	"hospital/internal/entity/dto"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers 管理员查看全部用户（不含密码哈希）
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	users, err := h.accounts.ListUsers(ctx)
	if err != nil {
		ServiceError(c, err, "load users")
		return
	}
	c.JSON(http.StatusOK, dto.UserListResponse{Users: converter.UsersToSummaries(users)})
}

// CreateUser 管理员创建任意角色的用户
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.accounts.CreateUser(ctx, req)
	if err != nil {
		ServiceError(c, err, "create user")
		return
	}
	c.JSON(http.StatusCreated, converter.UserToSummary(user))
}

// UpdateUser 管理员修改用户资料、密码或角色
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.accounts.UpdateUser(ctx, CurrentUser(c).Actor(), id, req)
	if err != nil {
		ServiceError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, converter.UserToSummary(user))
}

// DeleteUser 管理员删除用户，不能删除自己或仍有预约的用户
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.accounts.DeleteUser(ctx, CurrentUser(c).Actor(), id); err != nil {
		ServiceError(c, err, "delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDoctors 医生列表，供患者挂号时选择
func (h *HTTPHandler) ListDoctors(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	doctors, err := h.accounts.ListDoctors(ctx)
	if err != nil {
		ServiceError(c, err, "load doctors")
		return
	}
	c.JSON(http.StatusOK, dto.DoctorListResponse{Doctors: converter.UsersToDoctors(doctors)})
}
