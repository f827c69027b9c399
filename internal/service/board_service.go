package service

import (
	"context"
	"errors"
	"fmt"
	"hospital/internal/entity"
	"hospital/internal/entity/db"
	"hospital/internal/entity/dto"
	"hospital/internal/model"
	"hospital/internal/storage"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const attachmentCategory = "posts"

// BoardService 公告板帖子及附件
type BoardService struct {
	repo     model.Repository
	storage  storage.Storage
	maxBytes int64
}

// NewBoardService 创建公告板服务；store 为 nil 时附件上传不可用
func NewBoardService(repo model.Repository, store storage.Storage, maxAttachmentBytes int64) *BoardService {
	return &BoardService{repo: repo, storage: store, maxBytes: maxAttachmentBytes}
}

// Attachment 是一次上传的附件内容
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// List 返回全部帖子，最新的在前
func (s *BoardService) List(ctx context.Context) ([]db.Post, error) {
	return s.repo.ListPosts(ctx)
}

// Get 加载单个帖子
func (s *BoardService) Get(ctx context.Context, id uint) (*db.Post, error) {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	return post, nil
}

// Create 发帖，作者姓名在创建时快照
func (s *BoardService) Create(ctx context.Context, actor Actor, req dto.PostCreateRequest) (*db.Post, error) {
	category, err := checkCategory(actor, req.Category)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, invalidInput("title and content are required")
	}

	author, err := s.repo.GetUserByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load author: %w", err)
	}

	post := &db.Post{
		UserID:     author.ID,
		AuthorName: author.Name,
		Category:   category,
		Title:      title,
		Content:    content,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	logrus.WithFields(logrus.Fields{"post_id": post.ID, "user_id": actor.ID}).Info("post created")
	return post, nil
}

// Update 作者编辑帖子；RemoveAttachment 为 true 时同时移除附件
func (s *BoardService) Update(ctx context.Context, actor Actor, id uint, req dto.PostUpdateRequest) (*db.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actor.ID {
		return nil, ErrForbidden
	}

	var updates entity.PostUpdates
	if req.Category != nil {
		category, err := checkCategory(actor, *req.Category)
		if err != nil {
			return nil, err
		}
		updates.Category = &category
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, invalidInput("title must not be blank")
		}
		updates.Title = &title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, invalidInput("content must not be blank")
		}
		updates.Content = &content
	}
	var removed *string
	if req.RemoveAttachment && post.FilePath != nil {
		var none *string
		updates.FilePath = &none
		removed = post.FilePath
	}

	if !updates.IsEmpty() {
		if err := s.repo.UpdatePost(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update post: %w", err)
		}
		s.removeObject(ctx, removed)
	}
	return s.Get(ctx, id)
}

// Delete 删除帖子，作者或管理员可操作；附件尽力删除
func (s *BoardService) Delete(ctx context.Context, actor Actor, id uint) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.repo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	logrus.WithFields(logrus.Fields{"post_id": id, "actor_id": actor.ID}).Info("post deleted")
	s.removeObject(ctx, post.FilePath)
	return nil
}

// Attach 上传附件并替换旧附件
func (s *BoardService) Attach(ctx context.Context, actor Actor, id uint, file Attachment) (*db.Post, error) {
	if s.storage == nil {
		return nil, ErrUnavailable
	}
	if len(file.Data) == 0 {
		return nil, invalidInput("attachment is empty")
	}
	if s.maxBytes > 0 && int64(len(file.Data)) > s.maxBytes {
		return nil, ErrPayloadTooLarge
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actor.ID {
		return nil, ErrForbidden
	}

	key, err := s.storage.Save(ctx, file.Data, storage.SaveOptions{
		Category:    attachmentCategory,
		Extension:   storage.ExtensionFromFilename(file.Filename),
		ContentType: file.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("save attachment: %w", err)
	}

	stored := &key
	updates := entity.PostUpdates{FilePath: &stored}
	if err := s.repo.UpdatePost(ctx, id, updates); err != nil {
		s.removeObject(ctx, &key)
		return nil, fmt.Errorf("update post: %w", err)
	}
	logrus.WithFields(logrus.Fields{"post_id": id, "file_path": key, "size": len(file.Data)}).Info("attachment stored")
	s.removeObject(ctx, post.FilePath)
	return s.Get(ctx, id)
}

func (s *BoardService) removeObject(ctx context.Context, key *string) {
	if key == nil || *key == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, *key); err != nil {
		logrus.WithError(err).WithField("file_path", *key).Warn("failed to remove attachment")
	}
}

// checkCategory 校验分类；notice 仅管理员可写
func checkCategory(actor Actor, category string) (string, error) {
	category = strings.TrimSpace(category)
	if !db.IsValidPostCategory(category) {
		return "", invalidInput("unsupported category %q", category)
	}
	if category == db.PostCategoryNotice && !actor.IsAdmin() {
		return "", ErrForbidden
	}
	return category, nil
}
