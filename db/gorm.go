package db

import (
	"fmt"
	"log"
	"time"

	"hymnal/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormDB is the GORM database handle backing the key-partitioned record
// stores. It coexists with DB (*sql.DB), which the user repository uses.
var GormDB *gorm.DB

// ConnectGormDB establishes the GORM database connection.
func ConnectGormDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	GormDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),

		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect database with GORM: %w", err)
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to the database with GORM.")
	return nil
}

// CloseGormDB closes the GORM database connection.
func CloseGormDB() error {
	if GormDB == nil {
		return nil
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// InitEntityTables ensures the key-partitioned record tables exist. Each
// logical table holds entities as (partition_key, row_key, properties).
func InitEntityTables(tables ...string) error {
	if GormDB == nil {
		return fmt.Errorf("GORM database not initialized")
	}

	for _, table := range tables {
		query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			partition_key VARCHAR(255) NOT NULL,
			row_key VARCHAR(255) NOT NULL,
			properties TEXT,
			PRIMARY KEY (partition_key, row_key),
			INDEX idx_row_key (row_key)
		);
		`, table)
		if err := GormDB.Exec(query).Error; err != nil {
			return fmt.Errorf("failed to create entity table %s: %w", table, err)
		}
	}

	log.Println("Entity tables initialized successfully (or already exist).")
	return nil
}
