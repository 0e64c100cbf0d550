package db

import (
	"context"

	"gorm.io/gorm"
)

// Pinger はgorm接続のヘルスチェック用ラッパーです。
type Pinger struct {
	db *gorm.DB
}

// NewPinger は指定されたDB接続でPingerの新しいインスタンスを生成します。
func NewPinger(db *gorm.DB) *Pinger {
	return &Pinger{db: db}
}

// Ping は背後のコネクションプールに対して到達確認を行います。
func (p *Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
