package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/francosciascia/expert-giggle/config"
	"github.com/francosciascia/expert-giggle/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func ptr[T any](v T) *T { return &v }

func ex(nombre string, dia models.DiaSemana, orden int) models.EjercicioCreate {
	return models.EjercicioCreate{
		Nombre:       nombre,
		DiaSemana:    dia,
		Series:       3,
		Repeticiones: 10,
		Orden:        ptr(orden),
	}
}

func mustCreate(t *testing.T, svc *RutinaService, nombre string, ejercicios ...models.EjercicioCreate) *models.Rutina {
	t.Helper()
	r, err := svc.Create(context.Background(), models.RutinaCreate{Nombre: nombre, Ejercicios: ejercicios})
	require.NoError(t, err)
	return r
}
