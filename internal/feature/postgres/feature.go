package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/adminboard/internal/feature"
	"gorm.io/gorm"
)

type FeatureRepository struct {
	db *gorm.DB
}

func NewFeatureRepository(db *gorm.DB) feature.RepositoryAPI {
	return &FeatureRepository{db: db}
}

func (r *FeatureRepository) GetAll(ctx context.Context) ([]feature.Feature, error) {
	var features []feature.Feature
	err := r.db.WithContext(ctx).Order("name ASC").Find(&features).Error
	return features, err
}

func (r *FeatureRepository) GetByName(ctx context.Context, name string) (*feature.Feature, error) {
	var f feature.Feature
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *FeatureRepository) Create(ctx context.Context, f *feature.Feature) error {
	now := time.Now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = now
	}
	return r.db.WithContext(ctx).Create(f).Error
}
