package repository

import (
	"context"
	"errors"
	"fmt"

	"MusicHub/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormUserRepository implements UserRepository on top of GORM (MySQL in
// production, SQLite in tests).
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a GORM backed user repository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *gormUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormUserRepository) first(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

type gormStreamRepository struct {
	db *gorm.DB
}

// NewGormStreamRepository creates a GORM backed stream counter repository.
func NewGormStreamRepository(db *gorm.DB) StreamRepository {
	return &gormStreamRepository{db: db}
}

func (r *gormStreamRepository) Increment(ctx context.Context, songID string) (*model.StreamCount, error) {
	var out model.StreamCount
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// INSERT ... ON CONFLICT / ON DUPLICATE KEY UPDATE streams = streams + 1
		row := model.StreamCount{SongID: songID, Streams: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "song_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"streams": gorm.Expr("streams + 1")}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.Where("song_id = ?", songID).First(&out).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to increment stream %s: %w", songID, err)
	}
	return &out, nil
}

func (r *gormStreamRepository) ListAll(ctx context.Context) ([]model.StreamCount, error) {
	var out []model.StreamCount
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list streams: %w", err)
	}
	return out, nil
}
