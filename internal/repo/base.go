package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/lushka-backend/pkg/pagination"
)

// Base is embedded by gorm-backed repositories.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Newest orders by column descending and applies a bounded limit.
func Newest(column string, limit int) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(column + " DESC").Limit(pagination.NormalizeLimit(limit))
	}
}
