package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"authbase/internal/apperror"
	"authbase/internal/model"
)

// mysqlDuplicateEntry is the MySQL error number for unique index violations.
const mysqlDuplicateEntry = 1062

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFound("user not found", nil)
	}
	return nil
}

// translateError maps driver and GORM failure shapes into the application
// error taxonomy. Raw driver errors never cross the repository boundary.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFound("user not found", err)
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		// Classify by the violated index name, never by the full message:
		// the message also carries the duplicated value, which could itself
		// contain "username" or "email" (e.g. username@example.com).
		switch key := duplicateKeyName(mysqlErr.Message); {
		case strings.Contains(key, "username"):
			return apperror.NewConflict("username already taken", err)
		case strings.Contains(key, "email"):
			return apperror.NewConflict("email already registered", err)
		default:
			return apperror.NewConflict("duplicate record", err)
		}
	}
	return apperror.NewInternal("storage failure", err)
}

// duplicateKeyName extracts the index name from a duplicate entry message,
// e.g. "Duplicate entry 'alice' for key 'users.idx_users_username'" yields
// "users.idx_users_username". Returns "" when the message has no key segment.
func duplicateKeyName(message string) string {
	const marker = " for key '"
	i := strings.LastIndex(message, marker)
	if i == -1 {
		return ""
	}
	rest := message[i+len(marker):]
	if j := strings.IndexByte(rest, '\''); j != -1 {
		return rest[:j]
	}
	return ""
}
