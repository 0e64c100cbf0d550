package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	analysisadapters "stock_collector/internal/feature/analysis/adapters"
	newsadapters "stock_collector/internal/feature/news/adapters"
	stocksadapters "stock_collector/internal/feature/stocks/adapters"
)

// OpenDB は環境変数からPostgreSQLへの接続を確立します。
// 起動直後はDBがまだ受け付け可能でない場合があるため、60秒までリトライします。
func OpenDB() *gorm.DB {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, user, pass, name)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（Stock, PricePoint, News など）
		if err := db.AutoMigrate(
			&stocksadapters.StockModel{},
			&stocksadapters.PriceModel{},
			&stocksadapters.QuoteModel{},
			&newsadapters.NewsModel{},
			&analysisadapters.RecommendationModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
