package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormStore keeps sessions in the admin_sessions table.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (g *GormStore) Save(ctx context.Context, s Session) error {
	err := g.db.WithContext(ctx).Create(&s).Error
	if isUniqueViolation(err) {
		err = g.db.WithContext(ctx).Save(&s).Error
	}
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (g *GormStore) Get(ctx context.Context, id string) (Session, error) {
	var s Session
	err := g.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, g.now()).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("loading session: %w", err)
	}
	return s, nil
}

func (g *GormStore) Delete(ctx context.Context, id string) error {
	if err := g.db.WithContext(ctx).Where("id = ?", id).Delete(&Session{}).Error; err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows and returns their ids.
func (g *GormStore) PurgeExpired(ctx context.Context) ([]string, error) {
	var ids []string
	now := g.now()
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Session{}).Where("expires_at <= ?", now).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Where("id IN ?", ids).Delete(&Session{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("purging sessions: %w", err)
	}
	return ids, nil
}
