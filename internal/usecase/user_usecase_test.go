package usecase

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/qrave1/meetspace/internal/domain/apperrors"
	"github.com/qrave1/meetspace/internal/domain/models"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return apperrors.ErrEmailTaken
	}

	cp := *user
	f.byEmail[user.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}

	cp := *user
	return &cp, nil
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUsecase([]byte("secret"), repo)

	user, err := uc.Register(context.Background(), "Ana", "ana@x.com", "s3nh4-forte")
	require.NoError(t, err)
	assert.Empty(t, user.Password)

	stored := repo.byEmail["ana@x.com"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3nh4-forte")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUsecase([]byte("secret"), repo)

	_, err := uc.Register(context.Background(), "Ana", "ana@x.com", "s3nh4-forte")
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), "Outra Ana", "ana@x.com", "outra-senha")
	require.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestValidateCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUsecase([]byte("secret"), repo)

	_, err := uc.Register(context.Background(), "Ana", "ana@x.com", "s3nh4-forte")
	require.NoError(t, err)

	user, err := uc.ValidateCredentials(context.Background(), "ana@x.com", "s3nh4-forte")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", user.Email)

	_, err = uc.ValidateCredentials(context.Background(), "ana@x.com", "errada")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = uc.ValidateCredentials(context.Background(), "ninguem@x.com", "s3nh4-forte")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestGenerateJWT_SubjectIsUserID(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUsecase([]byte("secret"), repo)

	user, err := uc.Register(context.Background(), "Ana", "ana@x.com", "s3nh4-forte")
	require.NoError(t, err)

	tokenStr, err := uc.GenerateJWT(user)
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims.Subject)
}
