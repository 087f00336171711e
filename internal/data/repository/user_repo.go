package repository

import (
	"context"
	"errors"
	"time"

	"vet-clinic/internal/data/entity"
	"vet-clinic/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
	"go.uber.org/zap"
)

// Unique index names from the users migration.
const (
	usernameUniqueIndex = "users_username_lower_key"
	emailUniqueIndex    = "users_email_lower_key"
)

const userColumns = `id, full_name, username, email, password_hash, role,
		       active, created_at, last_access_at`

// UserRepository is the credential store. Lookups return (nil, nil) when
// nothing matches. Username and email comparisons are case-insensitive, and
// a duplicate on write surfaces as entity.ErrUsernameTaken or
// entity.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user. A zero ID is replaced with a fresh UUID.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := `
		INSERT INTO users (id, full_name, username, email, password_hash, role,
		                   active, created_at, last_access_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Username,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.Active,
		user.CreatedAt,
		user.LastAccessAt,
	)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			ur.log.Warn("Duplicate user on create", zap.String("username", user.Username), zap.Error(dup))
			return oops.Code("USER_DUPLICATE").
				With("username", user.Username).
				Wrap(dup)
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("username", user.Username).
			Wrap(err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID", zap.Error(err), zap.String("user_id", id.String()))
		return nil, oops.Code("USER_FIND_FAILED").
			With("operation", "find user by id").
			With("user_id", id.String()).
			Wrap(err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, oops.Code("USER_FIND_FAILED").
			With("operation", "find user by email").
			With("email", email).
			Wrap(err)
	}

	return user, nil
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`

	user, err := scanUser(ur.db.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by username", zap.Error(err), zap.String("username", username))
		return nil, oops.Code("USER_FIND_FAILED").
			With("operation", "find user by username").
			With("username", username).
			Wrap(err)
	}

	return user, nil
}

// FindAll returns one page of users ordered by full name.
func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		ORDER BY full_name, username
		LIMIT $1 OFFSET $2`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to list users", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, oops.Code("USER_LIST_FAILED").
			With("limit", limit).
			With("offset", offset).
			Wrap(err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, oops.Code("USER_LIST_FAILED").With("operation", "scan user row").Wrap(err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, oops.Code("USER_LIST_FAILED").With("operation", "iterate user rows").Wrap(err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := ur.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		ur.log.Error("Failed to count users", zap.Error(err))
		return 0, oops.Code("USER_COUNT_FAILED").Wrap(err)
	}
	return count, nil
}

// Update writes the profile columns. The password hash and last access
// stamp have their own targeted updates so a stale read never rewrites them.
func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET full_name = $2, username = $3, email = $4, role = $5, active = $6
		WHERE id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Username,
		user.Email,
		string(user.Role),
		user.Active,
	)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			ur.log.Warn("Duplicate user on update", zap.String("user_id", user.ID.String()), zap.Error(dup))
			return oops.Code("USER_DUPLICATE").
				With("user_id", user.ID.String()).
				Wrap(dup)
		}
		ur.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return oops.Code("USER_UPDATE_FAILED").
			With("operation", "update user").
			With("user_id", user.ID.String()).
			Wrap(err)
	}

	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("user_id", user.ID.String()).
			Wrap(entity.ErrUserNotFound)
	}

	return nil
}

// UpdatePassword updates only the password hash.
func (ur *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := ur.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		ur.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", id.String()))
		return oops.Code("USER_UPDATE_PASSWORD_FAILED").
			With("operation", "update password").
			With("user_id", id.String()).
			Wrap(err)
	}

	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("user_id", id.String()).
			Wrap(entity.ErrUserNotFound)
	}

	return nil
}

// UpdateLastAccess stamps a successful login.
func (ur *userRepository) UpdateLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := ur.db.Exec(ctx, `UPDATE users SET last_access_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		ur.log.Error("Failed to record last access", zap.Error(err), zap.String("user_id", id.String()))
		return oops.Code("USER_UPDATE_ACCESS_FAILED").
			With("operation", "update last access").
			With("user_id", id.String()).
			Wrap(err)
	}

	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("user_id", id.String()).
			Wrap(entity.ErrUserNotFound)
	}

	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := ur.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", id.String()))
		return oops.Code("USER_DELETE_FAILED").
			With("user_id", id.String()).
			Wrap(err)
	}

	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("user_id", id.String()).
			Wrap(entity.ErrUserNotFound)
	}

	ur.log.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		user entity.User
		role string
	)
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.Active,
		&user.CreatedAt,
		&user.LastAccessAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = entity.UserRole(role)
	return &user, nil
}

// duplicateError maps a unique violation on the users indexes to the
// matching domain error. It returns nil for any other error.
func duplicateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	switch pgErr.ConstraintName {
	case usernameUniqueIndex:
		return entity.ErrUsernameTaken
	case emailUniqueIndex:
		return entity.ErrEmailTaken
	default:
		return nil
	}
}
