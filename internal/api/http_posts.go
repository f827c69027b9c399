package api

import (
	"context"
	"errors"
	"hospital/internal/entity/converter"
	"hospital/internal/entity/dto"
	"hospital/internal/service"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPosts 公告板列表，最新的在前
func (h *HTTPHandler) ListPosts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	posts, err := h.board.List(ctx)
	if err != nil {
		ServiceError(c, err, "load posts")
		return
	}
	c.JSON(http.StatusOK, dto.PostListResponse{Posts: converter.PostsToItems(posts, h.storagePublicBase)})
}

// GetPost 查看单个帖子
func (h *HTTPHandler) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	post, err := h.board.Get(ctx, id)
	if err != nil {
		ServiceError(c, err, "load post")
		return
	}
	c.JSON(http.StatusOK, converter.PostToItem(post, h.storagePublicBase))
}

// CreatePost 发帖，notice 分类仅管理员可用
func (h *HTTPHandler) CreatePost(c *gin.Context) {
	var req dto.PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	post, err := h.board.Create(ctx, CurrentUser(c).Actor(), req)
	if err != nil {
		ServiceError(c, err, "create post")
		return
	}
	c.JSON(http.StatusCreated, converter.PostToItem(post, h.storagePublicBase))
}

// UpdatePost 作者编辑帖子
func (h *HTTPHandler) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	post, err := h.board.Update(ctx, CurrentUser(c).Actor(), id, req)
	if err != nil {
		ServiceError(c, err, "update post")
		return
	}
	c.JSON(http.StatusOK, converter.PostToItem(post, h.storagePublicBase))
}

// DeletePost 作者或管理员删除帖子及其附件
func (h *HTTPHandler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.board.Delete(ctx, CurrentUser(c).Actor(), id); err != nil {
		ServiceError(c, err, "delete post")
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPostAttachment 上传附件（multipart 字段 file），替换已有附件
func (h *HTTPHandler) UploadPostAttachment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			PayloadTooLarge(c)
			return
		}
		MissingField(c, "file")
		return
	}
	if h.cfg.MaxAttachmentBytes > 0 && header.Size > h.cfg.MaxAttachmentBytes {
		PayloadTooLarge(c)
		return
	}

	file, err := header.Open()
	if err != nil {
		ServiceError(c, err, "read attachment")
		return
	}
	defer file.Close()

	var reader io.Reader = file
	if h.cfg.MaxAttachmentBytes > 0 {
		reader = io.LimitReader(file, h.cfg.MaxAttachmentBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		ServiceError(c, err, "read attachment")
		return
	}

	// 存储上传可能比普通请求慢
	ctx, cancel := context.WithTimeout(c.Request.Context(), 6*requestTimeout)
	defer cancel()

	post, err := h.board.Attach(ctx, CurrentUser(c).Actor(), id, service.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		ServiceError(c, err, "upload attachment")
		return
	}
	c.JSON(http.StatusOK, converter.PostToItem(post, h.storagePublicBase))
}
