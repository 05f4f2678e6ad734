package stores

import (
	"context"
	"errors"
	"strings"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a new user. The password must already be hashed.
func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	user.Email = normalizeEmail(user.Email)
	if user.Role != models.RoleCustomer && user.Role != models.RoleFarmer {
		return models.User{}, validationError("role must be customer or farmer")
	}
	if user.Role == models.RoleFarmer && strings.TrimSpace(user.Location) == "" {
		return models.User{}, validationError("farmers must provide a location")
	}

	exists, err := s.EmailExists(ctx, user.Email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrUserExists
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", normalizeEmail(email)).Count(&count).Error
	return count > 0, err
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (s *UserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// FindByIDs returns the known users among ids, keyed by id.
func (s *UserStore) FindByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	users := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var found []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	for _, user := range found {
		users[user.ID] = user
	}
	return users, nil
}
