package dto

import "time"

// PostItem is the response representation of a board post.
type PostItem struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Category   string    `json:"category"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	FilePath   *string   `json:"file_path"`
	FileURL    string    `json:"file_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PostCreateRequest is the payload for creating a post.
type PostCreateRequest struct {
	Category string `json:"category" binding:"required"`
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content" binding:"required,max=20000"`
}

// PostUpdateRequest is the payload for editing a post.
type PostUpdateRequest struct {
	Category         *string `json:"category,omitempty"`
	Title            *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Content          *string `json:"content,omitempty" binding:"omitempty,max=20000"`
	RemoveAttachment bool    `json:"remove_attachment,omitempty"`
}

// PostListResponse is the response for listing posts.
type PostListResponse struct {
	Posts []PostItem `json:"posts"`
}
