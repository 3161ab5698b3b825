package repo

import (
	"context"

	"github.com/Skotchmaster/shop_demo/internal/models"
)

func (r *GormRepo) CreateSession(ctx context.Context, s *models.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) RevokeSession(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Update("revoked", true).Error
}

// DeleteExpiredSessions drops sessions that expired before now (unix seconds).
func (r *GormRepo) DeleteExpiredSessions(ctx context.Context, now int64) (int64, error) {
	res := r.DB.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
