package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"postboard/internal/apperr"
	"postboard/internal/domain"
	"postboard/internal/repository"
)

// UserService coordina registro, login y resolución de identidad.
type UserService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	hasher  *PasswordHasher
	tokens  *TokenService
	limiter LoginRateLimiter
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, hasher *PasswordHasher, tokens *TokenService, limiter LoginRateLimiter) *UserService {
	return &UserService{
		logger:  logger,
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
	}
}

type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Register valida unicidad, hashea la contraseña y persiste el usuario.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	email := normalizeEmail(input.Email)
	username := strings.TrimSpace(input.Username)
	if email == "" || username == "" || input.Password == "" {
		return domain.User{}, apperr.InvalidInput("email, username and password are required")
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, apperr.Conflict("user already exists with same email or username")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login autentica por email+password y emite un token.
// Email desconocido y contraseña incorrecta devuelven la misma falla,
// para no permitir enumerar cuentas.
func (s *UserService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.User{}, apperr.InvalidInput("email and password are required fields")
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, email) {
		return "", domain.User{}, apperr.Unauthenticated("too many login attempts")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.User{}, apperr.Unauthenticated("invalid credentials")
		}
		return "", domain.User{}, err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return "", domain.User{}, apperr.Unauthenticated("invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// ResolveByID carga la identidad actual persistida, sin caché.
func (s *UserService) ResolveByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, apperr.NotFound("user not found")
		}
		return domain.User{}, err
	}
	return user, nil
}

// ResolveByEmail carga la identidad actual persistida, sin caché.
func (s *UserService) ResolveByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, apperr.NotFound("user not found")
		}
		return domain.User{}, err
	}
	return user, nil
}

// Delete elimina la cuenta; solo el propio dueño puede hacerlo.
func (s *UserService) Delete(ctx context.Context, callerID, targetID string) error {
	if callerID != targetID {
		return apperr.Unauthorized("cannot delete another user's account")
	}
	return s.users.Delete(ctx, targetID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
