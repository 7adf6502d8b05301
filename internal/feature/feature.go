package feature

import (
	"context"
	"time"
)

// Status gates UI-level behavior. The server only lists flags; enforcement
// beyond listing happens client-side.
type Status string

const (
	StatusOn      Status = "on"
	StatusOff     Status = "off"
	StatusTesters Status = "testers"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOn, StatusOff, StatusTesters:
		return true
	}
	return false
}

type Feature struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id"`
	Name        string    `json:"name" gorm:"column:name;uniqueIndex"`
	Status      Status    `json:"status" gorm:"column:status"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
	CreatedByID *string   `json:"created_by_id,omitempty" gorm:"column:created_by_id"`
	UpdatedByID *string   `json:"updated_by_id,omitempty" gorm:"column:updated_by_id"`
}

func (Feature) TableName() string { return "features" }

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]Feature, error)
	Create(ctx context.Context, f *Feature) error
	GetByName(ctx context.Context, name string) (*Feature, error)
}
