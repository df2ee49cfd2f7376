package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/francosciascia/expert-giggle/models"

	"gorm.io/gorm"
)

type EjercicioService struct {
	db *gorm.DB
}

func NewEjercicioService(db *gorm.DB) *EjercicioService {
	return &EjercicioService{db: db}
}

// Update applies only the fields present in in.
func (s *EjercicioService) Update(ctx context.Context, id uint, in models.EjercicioUpdate) (*models.Ejercicio, error) {
	db := s.db.WithContext(ctx)
	e, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if changes := in.Changes(); len(changes) > 0 {
		if err := db.Model(e).Updates(changes).Error; err != nil {
			return nil, fmt.Errorf("update ejercicio %d: %w", id, err)
		}
	}
	return s.find(db, id)
}

func (s *EjercicioService) Delete(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)
	e, err := s.find(db, id)
	if err != nil {
		return err
	}
	if err := db.Delete(e).Error; err != nil {
		return fmt.Errorf("delete ejercicio %d: %w", id, err)
	}
	return nil
}

func (s *EjercicioService) find(db *gorm.DB, id uint) (*models.Ejercicio, error) {
	var e models.Ejercicio
	err := db.First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(MsgEjercicioNoEncontrado)
	}
	if err != nil {
		return nil, fmt.Errorf("find ejercicio %d: %w", id, err)
	}
	return &e, nil
}
