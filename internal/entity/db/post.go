package db

import "time"

const (
	PostCategoryQnA         = "Q&A"
	PostCategorySystemError = "system_error"
	PostCategoryNotice      = "notice"
)

// Post 公告板条目。AuthorName 为发帖时的快照，不随用户改名同步。
type Post struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID     uint    `gorm:"column:user_id;index;not null" json:"user_id"`
	AuthorName string  `gorm:"column:author_name;type:varchar(100)" json:"author_name"`
	Category   string  `gorm:"column:category;type:varchar(32);not null" json:"category"`
	Title      string  `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Content    string  `gorm:"column:content;type:text;not null" json:"content"`
	FilePath   *string `gorm:"column:file_path;type:varchar(512)" json:"file_path"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

// IsValidPostCategory 判断分类是否合法。
func IsValidPostCategory(category string) bool {
	switch category {
	case PostCategoryQnA, PostCategorySystemError, PostCategoryNotice:
		return true
	default:
		return false
	}
}
