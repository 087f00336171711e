package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-clinic/internal/data/entity"
	"vet-clinic/internal/data/repository"
	"vet-clinic/internal/metrics"
	"vet-clinic/pkg/utils"
	"vet-clinic/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterInput carries the fields of a self-service registration. Role
// may be empty, which selects entity.RoleReceptionist.
type RegisterInput struct {
	FullName string
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService verifies credentials, registers accounts and rotates
// passwords. Domain outcomes are the entity.Err* sentinels and
// validation.Errors; anything else is an infrastructure failure from the
// store or the hasher and is returned wrapped, never retried.
type AuthService interface {
	// ValidateCredentials returns (nil, nil) for an unknown username, an
	// inactive account and a wrong password alike.
	ValidateCredentials(ctx context.Context, username, password string) (*entity.User, error)
	RegisterUser(ctx context.Context, in RegisterInput) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

type authService struct {
	users          repository.UserRepository
	hasher         utils.PasswordHasher
	clock          utils.Clock
	minPasswordLen int
	log            *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	hasher utils.PasswordHasher,
	clock utils.Clock,
	minPasswordLen int,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:          users,
		hasher:         hasher,
		clock:          clock,
		minPasswordLen: minPasswordLen,
		log:            log.With(zap.String("service", "auth")),
	}
}

func (s *authService) ValidateCredentials(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		metrics.RecordAuthOutcome(metrics.OpLogin, metrics.OutcomeError)
		return nil, fmt.Errorf("find user by username: %w", err)
	}

	if user == nil || !user.Active || !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("username", username))
		metrics.RecordAuthOutcome(metrics.OpLogin, metrics.OutcomeNoMatch)
		return nil, nil
	}

	now := s.clock.Now()
	if err := s.users.UpdateLastAccess(ctx, user.ID, now); err != nil {
		metrics.RecordAuthOutcome(metrics.OpLogin, metrics.OutcomeError)
		return nil, fmt.Errorf("record last access: %w", err)
	}
	user.LastAccessAt = &now

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))
	metrics.RecordAuthOutcome(metrics.OpLogin, metrics.OutcomeSuccess)

	return user, nil
}

func (s *authService) RegisterUser(ctx context.Context, in RegisterInput) (*entity.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	username := entity.NormalizeIdentifier(in.Username)
	email := entity.NormalizeIdentifier(in.Email)

	if errs := validation.Run(
		validation.Required("full_name", fullName),
		validation.Required("username", username),
		validation.Required("email", email),
		validation.Required("password", in.Password),
		validation.MinLength("password", in.Password, s.minPasswordLen),
		validation.MaxBytes("password", in.Password, utils.MaxPasswordBytes),
	); errs != nil {
		metrics.RecordAuthOutcome(metrics.OpRegister, metrics.OutcomeInvalid)
		return nil, errs
	}

	role, err := roleOrDefault(in.Role)
	if err != nil {
		metrics.RecordAuthOutcome(metrics.OpRegister, metrics.OutcomeInvalid)
		return nil, err
	}

	if err := checkAvailable(ctx, s.users, uuid.Nil, username, email); err != nil {
		s.recordRegisterFailure(err)
		return nil, err
	}

	hash, err := hashTimed(s.hasher, in.Password)
	if err != nil {
		metrics.RecordAuthOutcome(metrics.OpRegister, metrics.OutcomeError)
		return nil, err
	}

	user := &entity.User{
		BaseNoUpdate: entity.BaseNoUpdate{CreatedAt: s.clock.Now()},
		FullName:     fullName,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.recordRegisterFailure(err)
		if isTaken(err) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	metrics.RecordAuthOutcome(metrics.OpRegister, metrics.OutcomeSuccess)

	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if errs := validation.Run(
		validation.Required("new_password", newPassword),
		validation.MinLength("new_password", newPassword, s.minPasswordLen),
		validation.MaxBytes("new_password", newPassword, utils.MaxPasswordBytes),
	); errs != nil {
		metrics.RecordAuthOutcome(metrics.OpChangePassword, metrics.OutcomeInvalid)
		return errs
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		metrics.RecordAuthOutcome(metrics.OpChangePassword, metrics.OutcomeError)
		return fmt.Errorf("find user by id: %w", err)
	}
	if user == nil {
		metrics.RecordAuthOutcome(metrics.OpChangePassword, metrics.OutcomeNotFound)
		return entity.ErrUserNotFound
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		s.log.Warn("Password change rejected", zap.String("user_id", userID.String()))
		metrics.RecordAuthOutcome(metrics.OpChangePassword, metrics.OutcomeWrongPassword)
		return entity.ErrWrongPassword
	}

	hash, err := hashTimed(s.hasher, newPassword)
	if err != nil {
		metrics.RecordAuthOutcome(metrics.OpChangePassword, metrics.OutcomeError)
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			metrics.RecordAuthOutcome(metrics.OpChangePassword, metrics.OutcomeNotFound)
			return err
		}
		metrics.RecordAuthOutcome(metrics.OpChangePassword, metrics.OutcomeError)
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info("Password changed", zap.String("user_id", userID.String()))
	metrics.RecordAuthOutcome(metrics.OpChangePassword, metrics.OutcomeSuccess)
	return nil
}

func (s *authService) recordRegisterFailure(err error) {
	switch {
	case errors.Is(err, entity.ErrUsernameTaken):
		metrics.RecordAuthOutcome(metrics.OpRegister, metrics.OutcomeUsernameTaken)
	case errors.Is(err, entity.ErrEmailTaken):
		metrics.RecordAuthOutcome(metrics.OpRegister, metrics.OutcomeEmailTaken)
	default:
		metrics.RecordAuthOutcome(metrics.OpRegister, metrics.OutcomeError)
	}
}

// ==================== HELPERS ====================

// checkAvailable reports ErrUsernameTaken or ErrEmailTaken when another
// account (any account but exclude) already holds the identifier. Username
// is checked first. The unique indexes stay the authority; this only gives
// an early answer.
func checkAvailable(ctx context.Context, users repository.UserRepository, exclude uuid.UUID, username, email string) error {
	existing, err := users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if existing != nil && existing.ID != exclude {
		return entity.ErrUsernameTaken
	}

	existing, err = users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if existing != nil && existing.ID != exclude {
		return entity.ErrEmailTaken
	}

	return nil
}

func isTaken(err error) bool {
	return errors.Is(err, entity.ErrUsernameTaken) || errors.Is(err, entity.ErrEmailTaken)
}

func roleOrDefault(s string) (entity.UserRole, error) {
	if strings.TrimSpace(s) == "" {
		return entity.RoleReceptionist, nil
	}
	return entity.ParseRole(s)
}

func hashTimed(hasher utils.PasswordHasher, password string) (string, error) {
	start := time.Now()
	hash, err := hasher.Hash(password)
	metrics.ObservePasswordHash(time.Since(start))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
