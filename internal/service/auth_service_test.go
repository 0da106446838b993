package service

import (
	"context"
	"testing"
	"time"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "test-secret"

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if _, ok := r.users[user.Email]; ok {
		return primitive.NilObjectID, repository.ErrDuplicateKey
	}
	id := primitive.NewObjectID()
	copied := *user
	copied.ID = id
	r.users[user.Email] = &copied
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123", domain.RoleUser)
	assert.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)
	assert.False(t, user.ID.IsZero())

	token, loggedIn, err := svc.Login(context.Background(), "alice@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123", domain.RoleUser)
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other Alice", "alice@example.com", "different-pw", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123", domain.RoleUser)
	assert.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginTokenCarriesClaims(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Sue", "sue@example.com", "password123", domain.RoleSuperAdmin)
	assert.NoError(t, err)

	token, _, err := svc.Login(context.Background(), "sue@example.com", "password123")
	assert.NoError(t, err)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, domain.RoleSuperAdmin, claims.Role)
	assert.Equal(t, "coaching-app", claims.Issuer)
}
