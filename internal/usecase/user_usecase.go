package usecase

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/planinfo-service/internal/domain"
	"github.com/planinfo-service/internal/domain/repository"
	"github.com/planinfo-service/internal/pkg/errors"
	"github.com/planinfo-service/internal/pkg/metrics"
	"github.com/planinfo-service/internal/usecase/dto"
)

// UserUseCase - CRUD for users with a read-through cache
type UserUseCase struct {
	userRepo  repository.UserRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewUserUseCase - cacheRepo may be nil to disable caching
func NewUserUseCase(
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *UserUseCase {
	return &UserUseCase{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

func userCacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}

// List returns all users
func (uc *UserUseCase) List(ctx context.Context) ([]*domain.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list users", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return users, nil
}

// Get returns one user, served from cache when possible
func (uc *UserUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if cached := uc.getCached(ctx, id); cached != nil {
		return cached, nil
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.mapRepoError(err, "get user", id)
	}

	uc.setCached(ctx, user)
	return user, nil
}

// Create adds a user; the email must be unique after normalization
func (uc *UserUseCase) Create(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	user := &domain.User{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	}
	user.Normalize()

	if user.Name == "" {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"name": "is required"})
	}

	existing, err := uc.userRepo.GetByEmail(ctx, user.Email)
	if err != nil && !stderrors.Is(err, domain.ErrUserNotFound) {
		uc.logger.Error("Failed to check email", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, uc.mapRepoError(err, "create user", uuid.Nil)
	}

	uc.logger.Info("User created", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Update changes the provided fields; empty fields keep their stored value
func (uc *UserUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.mapRepoError(err, "get user for update", id)
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := domain.NormalizeEmail(req.Email); email != "" && email != user.Email {
		other, err := uc.userRepo.GetByEmail(ctx, email)
		if err != nil && !stderrors.Is(err, domain.ErrUserNotFound) {
			uc.logger.Error("Failed to check email", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		if other != nil && other.ID != user.ID {
			return nil, errors.ErrUserAlreadyExists
		}
		user.Email = email
	}
	if req.Age != nil {
		age := *req.Age
		user.Age = &age
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, uc.mapRepoError(err, "update user", id)
	}

	uc.invalidate(ctx, id)
	return user, nil
}

// Delete removes a user
func (uc *UserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return uc.mapRepoError(err, "delete user", id)
	}

	uc.invalidate(ctx, id)
	uc.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func (uc *UserUseCase) mapRepoError(err error, op string, id uuid.UUID) error {
	switch {
	case stderrors.Is(err, domain.ErrUserNotFound):
		return errors.ErrUserNotFound
	case stderrors.Is(err, domain.ErrUserExists):
		return errors.ErrUserAlreadyExists
	default:
		uc.logger.Error("User repository error",
			zap.String("op", op),
			zap.String("user_id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
}

func (uc *UserUseCase) getCached(ctx context.Context, id uuid.UUID) *domain.User {
	if uc.cacheRepo == nil {
		return nil
	}

	data, err := uc.cacheRepo.Get(ctx, userCacheKey(id))
	if err != nil {
		uc.logger.Warn("Failed to read user from cache", zap.Error(err))
		return nil
	}
	if data == nil {
		metrics.CacheMisses.WithLabelValues("user").Inc()
		return nil
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		uc.logger.Warn("Corrupted user cache entry", zap.String("user_id", id.String()), zap.Error(err))
		return nil
	}

	metrics.CacheHits.WithLabelValues("user").Inc()
	return &user
}

func (uc *UserUseCase) setCached(ctx context.Context, user *domain.User) {
	if uc.cacheRepo == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		uc.logger.Warn("Failed to marshal user for cache", zap.Error(err))
		return
	}
	if err := uc.cacheRepo.Set(ctx, userCacheKey(user.ID), data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache user", zap.Error(err))
	}
}

func (uc *UserUseCase) invalidate(ctx context.Context, id uuid.UUID) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.Delete(ctx, userCacheKey(id)); err != nil {
		uc.logger.Warn("Failed to invalidate user cache", zap.String("user_id", id.String()), zap.Error(err))
	}
}
