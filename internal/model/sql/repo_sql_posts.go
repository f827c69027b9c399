package sql

import (
	"context"
	"fmt"
	"hospital/internal/entity"
	"hospital/internal/entity/db"

	"gorm.io/gorm"
)

// CreatePost inserts a new board post.
func (r *GormRepository) CreatePost(ctx context.Context, post *db.Post) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if post == nil {
		return fmt.Errorf("post is nil")
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPost loads a post by ID.
func (r *GormRepository) GetPost(ctx context.Context, id uint) (*db.Post, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid post id")
	}
	var post db.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns every post, newest first.
func (r *GormRepository) ListPosts(ctx context.Context) ([]db.Post, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var posts []db.Post
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates post fields.
func (r *GormRepository) UpdatePost(ctx context.Context, id uint, updates entity.PostUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid post id")
	}
	if updates.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).Model(&db.Post{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// DeletePost removes a post by ID.
func (r *GormRepository) DeletePost(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid post id")
	}
	result := r.db.WithContext(ctx).Delete(&db.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
