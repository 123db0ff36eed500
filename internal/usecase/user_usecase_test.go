package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/planinfo-service/internal/domain"
	apperrors "github.com/planinfo-service/internal/pkg/errors"
	"github.com/planinfo-service/internal/usecase"
	"github.com/planinfo-service/internal/usecase/dto"
)

const userTTL = 5 * time.Minute

func newUser(name, email string) *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and stores the user", func(t *testing.T) {
		repo := &MockUserRepository{}
		repo.On("GetByEmail", ctx, "kari@example.no").Return(nil, domain.ErrUserNotFound).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == "Kari Nordmann" && u.Email == "kari@example.no" && *u.Age == 42
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = uuid.New()
		}).Return(nil).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		user, err := uc.Create(ctx, dto.CreateUserRequest{
			Name:  "  Kari Nordmann ",
			Email: " Kari@Example.NO",
			Age:   ptrInt(42),
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "kari@example.no", user.Email)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &MockUserRepository{}
		repo.On("GetByEmail", ctx, "ola@example.no").Return(newUser("Ola", "ola@example.no"), nil).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		_, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ola", Email: "OLA@example.no"})
		assert.True(t, errors.Is(err, apperrors.ErrUserAlreadyExists))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique violation from the database", func(t *testing.T) {
		repo := &MockUserRepository{}
		repo.On("GetByEmail", ctx, "ola@example.no").Return(nil, domain.ErrUserNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(domain.ErrUserExists).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		_, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ola", Email: "ola@example.no"})
		assert.True(t, errors.Is(err, apperrors.ErrUserAlreadyExists))
	})

	t.Run("blank name", func(t *testing.T) {
		repo := &MockUserRepository{}
		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		_, err := uc.Create(ctx, dto.CreateUserRequest{Name: "   ", Email: "ola@example.no"})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
	})

	t.Run("database error", func(t *testing.T) {
		repo := &MockUserRepository{}
		repo.On("GetByEmail", ctx, "ola@example.no").Return(nil, errors.New("connection refused")).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		_, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ola", Email: "ola@example.no"})
		assert.True(t, errors.Is(err, apperrors.ErrDatabaseError))
	})
}

func TestUserUseCase_Get(t *testing.T) {
	ctx := context.Background()
	user := newUser("Kari", "kari@example.no")
	key := "user:" + user.ID.String()

	t.Run("cache hit skips the database", func(t *testing.T) {
		repo := &MockUserRepository{}
		cache := &MockCacheRepository{}
		data, _ := json.Marshal(user)
		cache.On("Get", ctx, key).Return(data, nil).Once()

		uc := usecase.NewUserUseCase(repo, cache, zap.NewNop(), userTTL)

		got, err := uc.Get(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss loads and caches", func(t *testing.T) {
		repo := &MockUserRepository{}
		cache := &MockCacheRepository{}
		cache.On("Get", ctx, key).Return(nil, nil).Once()
		repo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		cache.On("Set", ctx, key, mock.Anything, userTTL).Return(nil).Once()

		uc := usecase.NewUserUseCase(repo, cache, zap.NewNop(), userTTL)

		got, err := uc.Get(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache failure falls back to the database", func(t *testing.T) {
		repo := &MockUserRepository{}
		cache := &MockCacheRepository{}
		cache.On("Get", ctx, key).Return(nil, errors.New("redis down")).Once()
		repo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		cache.On("Set", ctx, key, mock.Anything, userTTL).Return(errors.New("redis down")).Once()

		uc := usecase.NewUserUseCase(repo, cache, zap.NewNop(), userTTL)

		got, err := uc.Get(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &MockUserRepository{}
		id := uuid.New()
		repo.On("GetByID", ctx, id).Return(nil, domain.ErrUserNotFound).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		_, err := uc.Get(ctx, id)
		assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
	})
}

func TestUserUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other fields and invalidates cache", func(t *testing.T) {
		user := newUser("Kari", "kari@example.no")
		user.Age = ptrInt(30)

		repo := &MockUserRepository{}
		cache := &MockCacheRepository{}
		repo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == "Kari Hansen" && u.Email == "kari@example.no" && *u.Age == 30
		})).Return(nil).Once()
		cache.On("Delete", ctx, "user:"+user.ID.String()).Return(nil).Once()

		uc := usecase.NewUserUseCase(repo, cache, zap.NewNop(), userTTL)

		got, err := uc.Update(ctx, user.ID, dto.UpdateUserRequest{Name: "Kari Hansen"})
		require.NoError(t, err)
		assert.Equal(t, "Kari Hansen", got.Name)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("age zero is applied", func(t *testing.T) {
		user := newUser("Kari", "kari@example.no")
		user.Age = ptrInt(30)

		repo := &MockUserRepository{}
		repo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		got, err := uc.Update(ctx, user.ID, dto.UpdateUserRequest{Age: ptrInt(0)})
		require.NoError(t, err)
		require.NotNil(t, got.Age)
		assert.Equal(t, 0, *got.Age)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		user := newUser("Kari", "kari@example.no")
		other := newUser("Ola", "ola@example.no")

		repo := &MockUserRepository{}
		repo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		repo.On("GetByEmail", ctx, "ola@example.no").Return(other, nil).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		_, err := uc.Update(ctx, user.ID, dto.UpdateUserRequest{Email: "Ola@example.no"})
		assert.True(t, errors.Is(err, apperrors.ErrUserAlreadyExists))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		id := uuid.New()
		repo := &MockUserRepository{}
		repo.On("GetByID", ctx, id).Return(nil, domain.ErrUserNotFound).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		_, err := uc.Update(ctx, id, dto.UpdateUserRequest{Name: "X"})
		assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
	})
}

func TestUserUseCase_DeleteAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("delete invalidates cache", func(t *testing.T) {
		id := uuid.New()
		repo := &MockUserRepository{}
		cache := &MockCacheRepository{}
		repo.On("Delete", ctx, id).Return(nil).Once()
		cache.On("Delete", ctx, "user:"+id.String()).Return(nil).Once()

		uc := usecase.NewUserUseCase(repo, cache, zap.NewNop(), userTTL)

		require.NoError(t, uc.Delete(ctx, id))
		cache.AssertExpectations(t)
	})

	t.Run("delete unknown user", func(t *testing.T) {
		id := uuid.New()
		repo := &MockUserRepository{}
		repo.On("Delete", ctx, id).Return(domain.ErrUserNotFound).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		assert.True(t, errors.Is(uc.Delete(ctx, id), apperrors.ErrUserNotFound))
	})

	t.Run("list", func(t *testing.T) {
		repo := &MockUserRepository{}
		users := []*domain.User{newUser("A", "a@example.no"), newUser("B", "b@example.no")}
		repo.On("List", ctx).Return(users, nil).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		got, err := uc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("list database error", func(t *testing.T) {
		repo := &MockUserRepository{}
		repo.On("List", ctx).Return(nil, errors.New("boom")).Once()

		uc := usecase.NewUserUseCase(repo, nil, zap.NewNop(), userTTL)

		_, err := uc.List(ctx)
		assert.True(t, errors.Is(err, apperrors.ErrDatabaseError))
	})
}
