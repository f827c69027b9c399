package converter

import (
	"hospital/internal/entity/db"
	"hospital/internal/entity/dto"
	"strings"
)

// PostToItem converts a db.Post; publicBase is prefixed to the attachment key.
func PostToItem(p *db.Post, publicBase string) dto.PostItem {
	if p == nil {
		return dto.PostItem{}
	}
	item := dto.PostItem{
		ID:         p.ID,
		UserID:     p.UserID,
		AuthorName: p.AuthorName,
		Category:   p.Category,
		Title:      p.Title,
		Content:    p.Content,
		FilePath:   p.FilePath,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.FilePath != nil && *p.FilePath != "" {
		item.FileURL = strings.TrimRight(publicBase, "/") + "/" + strings.TrimLeft(*p.FilePath, "/")
	}
	return item
}

// PostsToItems converts a slice of db.Post.
func PostsToItems(posts []db.Post, publicBase string) []dto.PostItem {
	items := make([]dto.PostItem, len(posts))
	for i := range posts {
		items[i] = PostToItem(&posts[i], publicBase)
	}
	return items
}
