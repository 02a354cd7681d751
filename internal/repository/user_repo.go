package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/mentora-go-api/internal/models"
)

// UserRepository exposes the directory lookups the task core depends on.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	FindByNamesAndRole(ctx context.Context, names []string, role string) ([]models.User, error)
	FindByIDsAndRole(ctx context.Context, ids []uint, role string) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a GORM-backed directory repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByNamesAndRole(ctx context.Context, names []string, role string) ([]models.User, error) {
	if len(names) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("name IN ? AND role = ?", names, role).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByIDsAndRole(ctx context.Context, ids []uint, role string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND role = ?", ids, role).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
