package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shakil5281/TallyKhata-sub000/internal/model"
)

// ProfileRepository persists the two installation singletons. Reads return
// nil (not an error) when the row is absent; the service layer substitutes
// defaults. Saves take an optional tx so callers can couple them to a larger
// DB transaction (nil falls back to the repo's own handle).
type ProfileRepository interface {
	GetProfile(ctx context.Context) (*model.UserProfile, error)
	SaveProfile(ctx context.Context, tx *gorm.DB, p *model.UserProfile) error
	GetSettings(ctx context.Context) (*model.AppSettings, error)
	SaveSettings(ctx context.Context, tx *gorm.DB, s *model.AppSettings) error
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepo{db: db} }

func (r *profileRepo) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	var p model.UserProfile
	err := r.db.WithContext(ctx).First(&p, model.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) SaveProfile(ctx context.Context, tx *gorm.DB, p *model.UserProfile) error {
	if tx == nil {
		tx = r.db
	}
	p.ID = model.SingletonID
	return tx.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(p).Error
}

func (r *profileRepo) GetSettings(ctx context.Context) (*model.AppSettings, error) {
	var s model.AppSettings
	err := r.db.WithContext(ctx).First(&s, model.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *profileRepo) SaveSettings(ctx context.Context, tx *gorm.DB, s *model.AppSettings) error {
	if tx == nil {
		tx = r.db
	}
	s.ID = model.SingletonID
	return tx.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(s).Error
}
