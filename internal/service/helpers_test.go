package service

import (
	"context"
	"hospital/internal/auth"
	"hospital/internal/config"
	"hospital/internal/entity/db"
	"hospital/internal/entity/dto"
	"hospital/internal/model"
	"hospital/internal/storage"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) model.Repository {
	t.Helper()
	repo, err := model.InitRepository(&config.Config{
		DBType: model.DBTypeSQLite,
		DBPath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NotNil(t, repo)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newTestAccounts(t *testing.T, repo model.Repository) *AccountService {
	t.Helper()
	tokens, err := auth.NewManager("test-secret", "hospital-test", time.Hour)
	require.NoError(t, err)
	return NewAccountService(repo, tokens)
}

type fixture struct {
	repo     model.Repository
	accounts *AccountService
	booking  *BookingService
	patient  *db.User
	other    *db.User
	doctor   *db.User
	admin    *db.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newTestRepo(t)
	accounts := newTestAccounts(t, repo)
	ctx := context.Background()

	dept := "내과"
	patient, err := accounts.Register(ctx, dto.AuthRegisterRequest{Username: "alice", Password: "pw1234", Role: db.UserRolePatient, Name: "Alice"})
	require.NoError(t, err)
	other, err := accounts.Register(ctx, dto.AuthRegisterRequest{Username: "carol", Password: "pw1234", Role: db.UserRolePatient, Name: "Carol"})
	require.NoError(t, err)
	doctor, err := accounts.Register(ctx, dto.AuthRegisterRequest{Username: "drbob", Password: "pw1234", Role: db.UserRoleDoctor, Name: "Bob", Department: &dept})
	require.NoError(t, err)
	admin, err := accounts.CreateUser(ctx, dto.UserCreateRequest{Username: "root", Password: "pw1234", Role: db.UserRoleAdmin, Name: "Root"})
	require.NoError(t, err)

	return &fixture{
		repo:     repo,
		accounts: accounts,
		booking:  NewBookingService(repo),
		patient:  patient,
		other:    other,
		doctor:   doctor,
		admin:    admin,
	}
}

func actorOf(u *db.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// memStorage 是内存中的 storage.Storage 实现
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) Save(_ context.Context, data []byte, opts storage.SaveOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := opts.Category + "/" + uuid.NewString() + "." + opts.Extension
	m.objects[key] = append([]byte(nil), data...)
	return key, nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}
