package config

import (
	"fmt"
	"strings"

	"github.com/francosciascia/expert-giggle/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects to the configured store. Unique violations come back as
// gorm.ErrDuplicatedKey.
func OpenDB(c DatabaseConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var dialector gorm.Dialector
	switch c.Driver {
	case "sqlite":
		dialector = sqlite.Open(SQLiteDSN(c.DSN))
	default:
		dialector = postgres.Open(c.PostgresDSN())
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", c.Driver, err)
	}
	if c.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// SQLiteDSN turns a path into a DSN with foreign keys enforced, which the
// cascade deletes rely on.
func SQLiteDSN(path string) string {
	if path == "" {
		path = "rutinas.db"
	}
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + "_foreign_keys=on"
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Rutina{},
		&models.Ejercicio{},
		&models.PlanSemanal{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := backfillSearchKeys(db, &models.Rutina{}); err != nil {
		return err
	}
	return backfillSearchKeys(db, &models.Ejercicio{})
}

type searchRow struct {
	ID     uint
	Nombre string
}

// backfillSearchKeys fills nombre_busca on rows written before the column
// existed.
func backfillSearchKeys(db *gorm.DB, model interface{}) error {
	var rows []searchRow
	if err := db.Model(model).
		Select("id, nombre").
		Where("nombre_busca = '' AND nombre <> ''").
		Scan(&rows).Error; err != nil {
		return fmt.Errorf("find rows to backfill: %w", err)
	}
	for _, r := range rows {
		if err := db.Model(model).Where("id = ?", r.ID).
			UpdateColumn("nombre_busca", models.SearchKey(r.Nombre)).Error; err != nil {
			return fmt.Errorf("backfill %d: %w", r.ID, err)
		}
	}
	return nil
}
