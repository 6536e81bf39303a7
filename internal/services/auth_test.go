package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/domain"
)

type mockUserRepository struct {
	users     map[string]*domain.User
	roles     map[string][]string
	createErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*domain.User{}, roles: map[string][]string{}}
}

func (m *mockUserRepository) Create(_ context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) AssignRole(_ context.Context, userID, roleID string) error {
	m.roles[userID] = append(m.roles[userID], roleID)
	return nil
}

type mockRoleRepository struct {
	users *mockUserRepository
}

func (m *mockRoleRepository) GetByCode(_ context.Context, code string) (*domain.Role, error) {
	return domain.NewRole("role-"+code, code), nil
}

func (m *mockRoleRepository) ListByUserID(_ context.Context, userID string) ([]*domain.Role, error) {
	var out []*domain.Role
	for _, id := range m.users.roles[userID] {
		out = append(out, domain.NewRole(id, strings.TrimPrefix(id, "role-")))
	}
	return out, nil
}

// plainHasher prefixes passwords so tests avoid bcrypt cost.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }

func (plainHasher) Compare(hash, pw string) error {
	if hash != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type mockIssuer struct {
	lastRoles  []string
	lastExpiry time.Duration
}

func (m *mockIssuer) Issue(userID, _ string, roles []string, expiry time.Duration) (string, error) {
	m.lastRoles = roles
	m.lastExpiry = expiry
	return "token-" + userID, nil
}

func newTestAuthService() (domain.AuthService, *mockUserRepository, *mockIssuer) {
	users := newMockUserRepository()
	issuer := &mockIssuer{}
	svc := NewAuthService(users, &mockRoleRepository{users: users}, plainHasher{}, issuer, time.Hour)
	return svc, users, issuer
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, users, issuer := newTestAuthService()

	user, err := svc.Register(ctx, "  Alice@X.com ", "secret", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Equal(t, []string{"role-attendee"}, users.roles[user.ID])

	res, err := svc.Login(ctx, "ALICE@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-"+user.ID, res.Token)
	assert.Equal(t, []string{domain.RoleAttendee}, res.Roles)
	assert.Equal(t, time.Hour, issuer.lastExpiry)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		_, err := svc.Register(ctx, "a@x.com", "", "Alice")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		_, err := svc.Register(ctx, "a@x.com", "pw", "Alice")
		require.NoError(t, err)
		_, err = svc.Register(ctx, "A@x.com", "pw", "Alice")
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, users, _ := newTestAuthService()
		users.createErr = errors.New("connection reset")
		_, err := svc.Register(ctx, "a@x.com", "pw", "Alice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()
	_, err := svc.Register(ctx, "a@x.com", "pw", "Alice")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@x.com", "pw")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
