package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vet-clinic/internal/data/entity"
	"vet-clinic/internal/data/repository"
	"vet-clinic/internal/dto/request"
	"vet-clinic/internal/dto/response"
	"vet-clinic/pkg/utils"
	"vet-clinic/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Administrative passwords follow the back-office form rule.
const adminMinPasswordLength = 8

type UserService interface {
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	hasher   utils.PasswordHasher
	clock    utils.Clock
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, hasher utils.PasswordHasher, clock utils.Clock, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	req.Page, req.PerPage = utils.NormalizePage(req.Page, req.PerPage, 10, 100)

	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
		zap.Int("total_pages", utils.CalculateTotalPages(total, req.PerPage)),
	)

	return response.NewPaginatedResponse(response.UsersToResponse(users), req.Page, req.PerPage, total), nil
}

func (us *userService) GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	user, err := us.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// CreateUser is the back-office creation path. Unlike registration the
// administrator picks the role and the initial active flag.
func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	username := entity.NormalizeIdentifier(req.Username)
	email := entity.NormalizeIdentifier(req.Email)

	if errs := validation.Run(
		validation.Required("full_name", fullName),
		validation.Required("username", username),
		validation.Required("email", email),
		validation.Required("password", req.Password),
		validation.MinLength("password", req.Password, adminMinPasswordLength),
		validation.MaxBytes("password", req.Password, utils.MaxPasswordBytes),
	); errs != nil {
		return nil, errs
	}

	role, err := roleOrDefault(req.Role)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	if err := checkAvailable(ctx, us.userRepo, uuid.Nil, username, email); err != nil {
		return nil, err
	}

	hash, err := hashTimed(us.hasher, req.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		BaseNoUpdate: entity.BaseNoUpdate{CreatedAt: us.clock.Now()},
		FullName:     fullName,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       active,
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		if isTaken(err) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	us.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateUser replaces the editable fields. Uniqueness is checked against
// every other account. A blank or whitespace-only password keeps the
// current hash.
func (us *userService) UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	username := entity.NormalizeIdentifier(req.Username)
	email := entity.NormalizeIdentifier(req.Email)

	password := req.Password
	if strings.TrimSpace(password) == "" {
		password = ""
	}

	if errs := validation.Run(
		validation.Required("full_name", fullName),
		validation.Required("username", username),
		validation.Required("email", email),
		validation.MinLength("password", password, adminMinPasswordLength),
		validation.MaxBytes("password", password, utils.MaxPasswordBytes),
	); errs != nil {
		return nil, errs
	}

	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	user, err := us.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkAvailable(ctx, us.userRepo, id, username, email); err != nil {
		return nil, err
	}

	user.FullName = fullName
	user.Username = username
	user.Email = email
	user.Role = role
	user.Active = req.Active

	var hash string
	if password != "" {
		if hash, err = hashTimed(us.hasher, password); err != nil {
			return nil, err
		}
	}

	if err := us.save(ctx, user); err != nil {
		return nil, err
	}

	if hash != "" {
		if err := us.userRepo.UpdatePassword(ctx, id, hash); err != nil {
			if errors.Is(err, entity.ErrUserNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("reset password: %w", err)
		}
		user.PasswordHash = hash
	}

	us.log.Info("User updated",
		zap.String("user_id", id.String()),
		zap.Bool("password_reset", hash != ""))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*response.UserResponse, error) {
	user, err := us.find(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Active = active
	if err := us.save(ctx, user); err != nil {
		return nil, err
	}

	us.log.Info("User active flag changed", zap.String("user_id", id.String()), zap.Bool("active", active))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := us.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (us *userService) find(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

func (us *userService) save(ctx context.Context, user *entity.User) error {
	if err := us.userRepo.Update(ctx, user); err != nil {
		if isTaken(err) || errors.Is(err, entity.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
