package service

import (
	"context"
	"hospital/internal/entity/db"
	"hospital/internal/entity/dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardPostLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := NewBoardService(f.repo, newMemStorage(), 1024)
	author := actorOf(f.patient)

	post, err := board.Create(ctx, author, dto.PostCreateRequest{Category: db.PostCategoryQnA, Title: " Hours? ", Content: "When do you open?"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", post.AuthorName)
	assert.Equal(t, "Hours?", post.Title)

	// 作者改名后快照不变
	_, err = f.accounts.UpdateUser(ctx, actorOf(f.admin), f.patient.ID, dto.UserUpdateRequest{Name: strPtr("Alice Kim")})
	require.NoError(t, err)
	loaded, err := board.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", loaded.AuthorName)

	edited, err := board.Update(ctx, author, post.ID, dto.PostUpdateRequest{Content: strPtr("Opening hours please")})
	require.NoError(t, err)
	assert.Equal(t, "Opening hours please", edited.Content)
	assert.Equal(t, "Hours?", edited.Title)

	_, err = board.Update(ctx, actorOf(f.other), post.ID, dto.PostUpdateRequest{Title: strPtr("hijack")})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = board.Update(ctx, author, post.ID, dto.PostUpdateRequest{Title: strPtr("  ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.ErrorIs(t, board.Delete(ctx, actorOf(f.other), post.ID), ErrForbidden)
	require.NoError(t, board.Delete(ctx, author, post.ID))

	posts, err := board.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = board.Get(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestBoardCategoryRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := NewBoardService(f.repo, nil, 0)

	_, err := board.Create(ctx, actorOf(f.patient), dto.PostCreateRequest{Category: db.PostCategoryNotice, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = board.Create(ctx, actorOf(f.patient), dto.PostCreateRequest{Category: "gossip", Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = board.Create(ctx, actorOf(f.patient), dto.PostCreateRequest{Category: db.PostCategorySystemError, Title: "t", Content: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	notice, err := board.Create(ctx, actorOf(f.admin), dto.PostCreateRequest{Category: db.PostCategoryNotice, Title: "Closed Monday", Content: "Holiday"})
	require.NoError(t, err)
	assert.Equal(t, db.PostCategoryNotice, notice.Category)

	first, err := board.Create(ctx, actorOf(f.doctor), dto.PostCreateRequest{Category: db.PostCategoryQnA, Title: "q", Content: "a"})
	require.NoError(t, err)
	_, err = board.Update(ctx, actorOf(f.doctor), first.ID, dto.PostUpdateRequest{Category: strPtr(db.PostCategoryNotice)})
	assert.ErrorIs(t, err, ErrForbidden)

	posts, err := board.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID, "newest first")

	// 管理员可以删除他人的帖子
	require.NoError(t, board.Delete(ctx, actorOf(f.admin), first.ID))
}

func TestBoardAttachments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := newMemStorage()
	board := NewBoardService(f.repo, store, 16)
	author := actorOf(f.patient)

	post, err := board.Create(ctx, author, dto.PostCreateRequest{Category: db.PostCategorySystemError, Title: "Crash", Content: "see log"})
	require.NoError(t, err)

	withFile, err := board.Attach(ctx, author, post.ID, Attachment{Filename: "log.txt", Data: []byte("stack trace")})
	require.NoError(t, err)
	require.NotNil(t, withFile.FilePath)
	firstKey := *withFile.FilePath
	assert.True(t, store.has(firstKey))

	replaced, err := board.Attach(ctx, author, post.ID, Attachment{Filename: "shot.png", Data: []byte("png")})
	require.NoError(t, err)
	require.NotNil(t, replaced.FilePath)
	secondKey := *replaced.FilePath
	assert.NotEqual(t, firstKey, secondKey)
	assert.False(t, store.has(firstKey), "old attachment is removed")
	assert.True(t, store.has(secondKey))

	_, err = board.Attach(ctx, author, post.ID, Attachment{Filename: "big.bin", Data: make([]byte, 17)})
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	_, err = board.Attach(ctx, actorOf(f.other), post.ID, Attachment{Filename: "x.txt", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = board.Attach(ctx, author, post.ID, Attachment{Filename: "x.txt"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	cleared, err := board.Update(ctx, author, post.ID, dto.PostUpdateRequest{RemoveAttachment: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.FilePath)
	assert.False(t, store.has(secondKey))

	again, err := board.Attach(ctx, author, post.ID, Attachment{Filename: "again.txt", Data: []byte("again")})
	require.NoError(t, err)
	require.NoError(t, board.Delete(ctx, author, post.ID))
	assert.False(t, store.has(*again.FilePath))

	noStore := NewBoardService(f.repo, nil, 0)
	_, err = noStore.Attach(ctx, author, post.ID, Attachment{Filename: "x.txt", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrUnavailable)
}
