package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// lookupStockRow はテスト用のstocksテーブル行です。
// 本体のスキーマはstocksフィーチャーが管理します。
type lookupStockRow struct {
	ID     uint   `gorm:"primaryKey"`
	Ticker string `gorm:"size:20;not null;uniqueIndex"`
	Name   string
	Market string
}

func (lookupStockRow) TableName() string {
	return "stocks"
}

func setupLookupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&lookupStockRow{}), "failed to migrate stocks table")
	return db
}

func TestStockLookupGorm_LookupID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success: returns the stored id", func(t *testing.T) {
		db := setupLookupDB(t)
		require.NoError(t, db.Create(&lookupStockRow{Ticker: "AAPL", Name: "Apple Inc.", Market: "US"}).Error)

		lookup := NewStockLookup(db)
		id, found, err := lookup.LookupID(ctx, "AAPL")

		require.NoError(t, err)
		assert.True(t, found)
		assert.NotZero(t, id)
	})

	t.Run("not found: returns false without error", func(t *testing.T) {
		db := setupLookupDB(t)

		lookup := NewStockLookup(db)
		_, found, err := lookup.LookupID(ctx, "ZZZZ")

		require.NoError(t, err)
		assert.False(t, found)
	})
}
