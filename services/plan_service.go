package services

import (
	"context"
	"fmt"

	"github.com/francosciascia/expert-giggle/models"

	"gorm.io/gorm"
)

const PlanUpdated = "plan.updated"

type PlanService struct {
	db  *gorm.DB
	hub *PlanHub
}

// NewPlanService builds the service; hub may be nil.
func NewPlanService(db *gorm.DB, hub *PlanHub) *PlanService {
	return &PlanService{db: db, hub: hub}
}

// GetWeek returns seven entries, Monday first.
func (s *PlanService) GetWeek(ctx context.Context) ([]models.PlanDiaRead, error) {
	var entries []models.PlanSemanal
	if err := s.db.WithContext(ctx).Preload("Rutina").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	byDay := make(map[models.DiaSemana]models.PlanSemanal, len(entries))
	for _, e := range entries {
		byDay[e.DiaSemana] = e
	}

	out := make([]models.PlanDiaRead, 0, len(models.DiasSemana))
	for _, dia := range models.DiasSemana {
		read := models.PlanDiaRead{DiaSemana: dia}
		if e, ok := byDay[dia]; ok {
			id := e.RutinaID
			read.RutinaID = &id
			if e.Rutina != nil {
				name := e.Rutina.Nombre
				read.RutinaNombre = &name
			}
		}
		out = append(out, read)
	}
	return out, nil
}

// Assign points dia at the routine, replacing any previous assignment.
func (s *PlanService) Assign(ctx context.Context, in models.PlanDiaUpdate) (*models.PlanDiaRead, error) {
	if !in.DiaSemana.Valid() {
		return nil, badRequest("dia_semana inválido")
	}
	db := s.db.WithContext(ctx)

	var rutina models.Rutina
	if err := findRutina(db, in.RutinaID, &rutina); err != nil {
		return nil, err
	}

	var entry models.PlanSemanal
	err := db.Where(models.PlanSemanal{DiaSemana: in.DiaSemana}).
		Assign(models.PlanSemanal{RutinaID: rutina.ID}).
		FirstOrCreate(&entry).Error
	if err != nil {
		return nil, fmt.Errorf("assign %s: %w", in.DiaSemana, err)
	}

	id, name := rutina.ID, rutina.Nombre
	read := &models.PlanDiaRead{DiaSemana: in.DiaSemana, RutinaID: &id, RutinaNombre: &name}
	s.publish(*read)
	return read, nil
}

// Clear frees dia. Clearing a free day is not an error.
func (s *PlanService) Clear(ctx context.Context, dia models.DiaSemana) error {
	if !dia.Valid() {
		return badRequest("dia_semana inválido")
	}
	res := s.db.WithContext(ctx).Where("dia_semana = ?", dia).Delete(&models.PlanSemanal{})
	if res.Error != nil {
		return fmt.Errorf("clear %s: %w", dia, res.Error)
	}
	if res.RowsAffected > 0 {
		s.publish(models.PlanDiaRead{DiaSemana: dia})
	}
	return nil
}

func (s *PlanService) publish(read models.PlanDiaRead) {
	publishPlan(s.hub, read)
}

func publishPlan(hub *PlanHub, read models.PlanDiaRead) {
	if hub == nil {
		return
	}
	hub.Publish(PlanEvent{Kind: PlanUpdated, Dia: read})
}
