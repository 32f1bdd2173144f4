package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/hoteldesk/internal/company/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Find(ctx context.Context, db *gorm.DB) (*domain.Profile, error) {
	var profile domain.Profile
	err := db.WithContext(ctx).Where("id = ?", domain.ProfileID).Take(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	profile.ID = domain.ProfileID
	return db.WithContext(ctx).Save(profile).Error
}
