package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, errors.New("record not found")
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.users[user.Email] = user
	return nil
}

func testUser(t *testing.T, svc *Service, password string) *models.User {
	t.Helper()
	hash, err := svc.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		Password:  hash,
		Role:      models.RoleManager,
		IsActive:  true,
	}
}

func TestLoginAndValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(newFakeUserRepo())
	user := testUser(t, svc, "hunter22")
	require.NoError(t, svc.userRepo.Create(user))

	resp, err := svc.Login(LoginRequest{Email: user.Email, Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.Token, resp.RefreshToken)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(newFakeUserRepo())
	user := testUser(t, svc, "hunter22")
	require.NoError(t, svc.userRepo.Create(user))

	_, err := svc.Login(LoginRequest{Email: user.Email, Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeInvalidCredentials))
	assert.Equal(t, 401, apierr.HTTPStatus(err))
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(newFakeUserRepo())

	_, err := svc.Login(LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeInvalidCredentials))
}

func TestLoginDisabledUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(newFakeUserRepo())
	user := testUser(t, svc, "hunter22")
	user.IsActive = false
	require.NoError(t, svc.userRepo.Create(user))

	_, err := svc.Login(LoginRequest{Email: user.Email, Password: "hunter22"})
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeForbidden))
}

func TestRefreshRotatesTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(newFakeUserRepo())
	user := testUser(t, svc, "hunter22")
	require.NoError(t, svc.userRepo.Create(user))

	login, err := svc.Login(LoginRequest{Email: user.Email, Password: "hunter22"})
	require.NoError(t, err)

	resp, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(newFakeUserRepo())
	user := testUser(t, svc, "hunter22")
	require.NoError(t, svc.userRepo.Create(user))

	login, err := svc.Login(LoginRequest{Email: user.Email, Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Refresh(login.Token)
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeRefreshTokenExpired))
}

func TestRefreshExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_REFRESH_DURATION", "-1s")

	svc := NewService(newFakeUserRepo())
	user := testUser(t, svc, "hunter22")
	require.NoError(t, svc.userRepo.Create(user))

	resp, err := svc.issueTokens(user)
	require.NoError(t, err)

	_, err = svc.Refresh(resp.RefreshToken)
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeRefreshTokenExpired))
}

func TestChangePassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(newFakeUserRepo())
	user := testUser(t, svc, "hunter22")
	require.NoError(t, svc.userRepo.Create(user))

	err := svc.ChangePassword(user.ID, "wrong", "newpassword")
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeValidation))

	require.NoError(t, svc.ChangePassword(user.ID, "hunter22", "newpassword"))

	_, err = svc.Login(LoginRequest{Email: user.Email, Password: "newpassword"})
	require.NoError(t, err)
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(newFakeUserRepo())
	user := testUser(t, svc, "hunter22")
	require.NoError(t, svc.userRepo.Create(user))

	before := time.Now()
	_, err := svc.Login(LoginRequest{Email: user.Email, Password: "hunter22"})
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)
	assert.False(t, user.LastLoginAt.Before(before.Add(-time.Second)))
}
