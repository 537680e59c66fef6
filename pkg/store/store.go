// Package store is the persistence layer behind the HTTP handlers. Handlers
// receive a Store; GormStore implements it on top of a *gorm.DB.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"zoo_management/pkg/apperror"
	"zoo_management/pkg/database"
	"zoo_management/pkg/models"
	"zoo_management/pkg/resources"
)

type Store interface {
	List(ctx context.Context, res *resources.Resource) ([]map[string]any, error)
	Create(ctx context.Context, res *resources.Resource, row map[string]any) error
	Update(ctx context.Context, res *resources.Resource, id string, row map[string]any) error
	Delete(ctx context.Context, res *resources.Resource, id string) error

	ZooInfo(ctx context.Context) (map[string]any, error)
	DashboardStats(ctx context.Context) (DashboardStats, error)
	RecordSale(ctx context.Context, sale Sale) error
	RegisterForEvent(ctx context.Context, eventID string, quantity int64) (map[string]any, error)

	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	Ping(ctx context.Context) error
}

type DashboardStats struct {
	Animals   int64   `json:"animals"`
	Employees int64   `json:"employees"`
	Cages     int64   `json:"cages"`
	Revenue   float64 `json:"revenue"`
}

// Sale is a ticket sale to record. Row holds the storage-case sale columns.
// A non-empty EventID also books Quantity places on that event.
type Sale struct {
	Row      map[string]any
	EventID  string
	Quantity int64
}

var ErrSoldOut = apperror.Conflict("Event is sold out")

type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (s *GormStore) List(ctx context.Context, res *resources.Resource) ([]map[string]any, error) {
	var rows []map[string]any
	if err := s.db.WithContext(ctx).Model(res.NewModel()).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", res.Path, err)
	}
	return rows, nil
}

func (s *GormStore) Create(ctx context.Context, res *resources.Resource, row map[string]any) error {
	if err := s.db.WithContext(ctx).Model(res.NewModel()).Create(row).Error; err != nil {
		return fmt.Errorf("insert %s: %w", res.Path, err)
	}
	return nil
}

// Update replaces the given columns of row id. A missing row is not an error.
func (s *GormStore) Update(ctx context.Context, res *resources.Resource, id string, row map[string]any) error {
	err := s.db.WithContext(ctx).Model(res.NewModel()).Where("id = ?", id).Updates(row).Error
	if err != nil {
		return fmt.Errorf("update %s %s: %w", res.Path, id, err)
	}
	return nil
}

// Delete removes row id without touching rows that reference it.
func (s *GormStore) Delete(ctx context.Context, res *resources.Resource, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(res.NewModel()).Error; err != nil {
		return fmt.Errorf("delete %s %s: %w", res.Path, id, err)
	}
	return nil
}

func (s *GormStore) ZooInfo(ctx context.Context) (map[string]any, error) {
	var rows []map[string]any
	err := s.db.WithContext(ctx).Model(&models.ZooInfo{}).Order("id").Limit(1).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("zoo info: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperror.NotFound("Zoo info not configured")
	}
	return rows[0], nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindUserByEmail returns an apperror NotFound when no user has the email.
func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	return database.Ping(ctx, s.db)
}
