package db

import (
	"fmt"
	"os"

	"uniket/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectはDBに接続して *gorm.DB を返す。
// 接続情報はconfig.Loadで検証済みの値を使う
func Connect(cfg config.Config) (*gorm.DB, error) {
	// DATABASE_URL があれば最優先で使う
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresDB,
		sslMode(),
	)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func sslMode() string {
	if v := os.Getenv("POSTGRES_SSLMODE"); v != "" {
		return v
	}
	return "disable"
}
