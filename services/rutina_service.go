package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/francosciascia/expert-giggle/models"

	"gorm.io/gorm"
)

type RutinaService struct {
	db  *gorm.DB
	hub *PlanHub
}

// NewRutinaService builds the service; hub may be nil.
func NewRutinaService(db *gorm.DB, hub *PlanHub) *RutinaService {
	return &RutinaService{db: db, hub: hub}
}

// List returns one page of routines matching f plus the unpaginated total.
func (s *RutinaService) List(ctx context.Context, f RutinaFilter) (*models.RutinaListResponse, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var total int64
	if err := f.scope(db).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count rutinas: %w", err)
	}

	var rutinas []models.Rutina
	if err := f.scope(db).
		Order("rutinas.id ASC").
		Offset(f.Skip).
		Limit(f.Limit).
		Find(&rutinas).Error; err != nil {
		return nil, fmt.Errorf("list rutinas: %w", err)
	}

	ids := make([]uint, 0, len(rutinas))
	for _, r := range rutinas {
		ids = append(ids, r.ID)
	}
	counts, err := countExercises(db, ids)
	if err != nil {
		return nil, fmt.Errorf("count ejercicios: %w", err)
	}

	items := make([]models.RutinaListItem, 0, len(rutinas))
	for _, r := range rutinas {
		items = append(items, models.RutinaListItem{
			ID:              r.ID,
			Nombre:          r.Nombre,
			Descripcion:     r.Descripcion,
			FechaCreacion:   r.FechaCreacion,
			TotalEjercicios: counts[r.ID],
		})
	}
	return &models.RutinaListResponse{Items: items, Total: total, Skip: f.Skip, Limit: f.Limit}, nil
}

// Search is List with a mandatory routine-name substring.
func (s *RutinaService) Search(ctx context.Context, f RutinaFilter) (*models.RutinaListResponse, error) {
	if strings.TrimSpace(f.Nombre) == "" {
		return nil, badRequest("El parámetro nombre es obligatorio")
	}
	return s.List(ctx, f)
}

// Get returns the routine with exercises ordered by orden.
func (s *RutinaService) Get(ctx context.Context, id uint) (*models.Rutina, error) {
	return s.load(s.db.WithContext(ctx), id, "orden ASC, id ASC")
}

func (s *RutinaService) load(db *gorm.DB, id uint, order string) (*models.Rutina, error) {
	var rutina models.Rutina
	err := db.Preload("Ejercicios", func(q *gorm.DB) *gorm.DB {
		return q.Order(order)
	}).First(&rutina, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(MsgRutinaNoEncontrada)
	}
	if err != nil {
		return nil, fmt.Errorf("load rutina %d: %w", id, err)
	}
	if rutina.Ejercicios == nil {
		rutina.Ejercicios = []models.Ejercicio{}
	}
	return &rutina, nil
}

// loadByWeekday returns the routine with exercises sorted by weekday then
// orden, the order used by reorder responses and exports.
func (s *RutinaService) loadByWeekday(db *gorm.DB, id uint) (*models.Rutina, error) {
	rutina, err := s.load(db, id, "orden ASC, id ASC")
	if err != nil {
		return nil, err
	}
	sortByWeekday(rutina.Ejercicios)
	return rutina, nil
}

func sortDias(dias []models.DiaSemana) {
	sort.Slice(dias, func(i, j int) bool { return dias[i].Index() < dias[j].Index() })
}

func sortByWeekday(ej []models.Ejercicio) {
	sort.SliceStable(ej, func(i, j int) bool {
		di, dj := ej[i].DiaSemana.Index(), ej[j].DiaSemana.Index()
		if di != dj {
			return di < dj
		}
		return ej[i].Orden < ej[j].Orden
	})
}

func (s *RutinaService) Create(ctx context.Context, in models.RutinaCreate) (*models.Rutina, error) {
	rutina := models.Rutina{
		Nombre:        in.Nombre,
		Descripcion:   in.Descripcion,
		FechaCreacion: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNameFree(tx, in.Nombre, 0); err != nil {
			return err
		}
		if err := tx.Omit("Ejercicios").Create(&rutina).Error; err != nil {
			return translateWriteErr(err)
		}
		ejercicios := make([]models.Ejercicio, 0, len(in.Ejercicios))
		for _, e := range in.Ejercicios {
			ejercicios = append(ejercicios, e.ToModel(rutina.ID))
		}
		if len(ejercicios) > 0 {
			if err := tx.Create(&ejercicios).Error; err != nil {
				return fmt.Errorf("create ejercicios: %w", err)
			}
		}
		rutina.Ejercicios = ejercicios
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rutina, nil
}

// Update changes nombre and/or descripcion. An empty nombre is ignored.
func (s *RutinaService) Update(ctx context.Context, id uint, in models.RutinaUpdate) (*models.Rutina, error) {
	db := s.db.WithContext(ctx)
	var rutina models.Rutina
	if err := findRutina(db, id, &rutina); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if in.Nombre != nil && *in.Nombre != "" && *in.Nombre != rutina.Nombre {
		if err := ensureNameFree(db, *in.Nombre, rutina.ID); err != nil {
			return nil, err
		}
		changes["nombre"] = *in.Nombre
		changes["nombre_busca"] = models.SearchKey(*in.Nombre)
	}
	if in.Descripcion != nil {
		changes["descripcion"] = *in.Descripcion
	}
	if len(changes) > 0 {
		if err := db.Model(&rutina).Updates(changes).Error; err != nil {
			return nil, translateWriteErr(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the routine, its exercises and any plan entry pointing at it.
// Days freed that way are published as cleared.
func (s *RutinaService) Delete(ctx context.Context, id uint) error {
	var freed []models.DiaSemana
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rutina models.Rutina
		if err := findRutina(tx, id, &rutina); err != nil {
			return err
		}
		if err := tx.Model(&models.PlanSemanal{}).Where("rutina_id = ?", id).Pluck("dia_semana", &freed).Error; err != nil {
			return fmt.Errorf("find plan entries: %w", err)
		}
		if err := tx.Where("rutina_id = ?", id).Delete(&models.PlanSemanal{}).Error; err != nil {
			return fmt.Errorf("delete plan entries: %w", err)
		}
		if err := tx.Where("rutina_id = ?", id).Delete(&models.Ejercicio{}).Error; err != nil {
			return fmt.Errorf("delete ejercicios: %w", err)
		}
		if err := tx.Delete(&rutina).Error; err != nil {
			return fmt.Errorf("delete rutina: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sortDias(freed)
	for _, dia := range freed {
		publishPlan(s.hub, models.PlanDiaRead{DiaSemana: dia})
	}
	return nil
}

func (s *RutinaService) AddExercise(ctx context.Context, rutinaID uint, in models.EjercicioCreate) (*models.Ejercicio, error) {
	db := s.db.WithContext(ctx)
	var rutina models.Rutina
	if err := findRutina(db, rutinaID, &rutina); err != nil {
		return nil, err
	}
	e := in.ToModel(rutina.ID)
	if err := db.Create(&e).Error; err != nil {
		return nil, fmt.Errorf("create ejercicio: %w", err)
	}
	return &e, nil
}

// ReorderExercises sets orden on every listed exercise, or on none of them.
func (s *RutinaService) ReorderExercises(ctx context.Context, rutinaID uint, items []models.EjercicioOrden) (*models.Rutina, error) {
	db := s.db.WithContext(ctx)
	var rutina models.Rutina
	if err := findRutina(db, rutinaID, &rutina); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, badRequest(MsgReordenVacio)
	}

	ids := make([]uint, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return nil, badRequest(MsgReordenAjeno)
		}
		seen[it.ID] = struct{}{}
		ids = append(ids, it.ID)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&models.Ejercicio{}).
			Where("id IN ? AND rutina_id = ?", ids, rutinaID).
			Count(&owned).Error; err != nil {
			return fmt.Errorf("check ejercicios: %w", err)
		}
		if owned != int64(len(ids)) {
			return badRequest(MsgReordenAjeno)
		}
		for _, it := range items {
			if err := tx.Model(&models.Ejercicio{}).
				Where("id = ? AND rutina_id = ?", it.ID, rutinaID).
				Update("orden", it.Orden).Error; err != nil {
				return fmt.Errorf("update orden %d: %w", it.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.loadByWeekday(db, rutinaID)
}

// Duplicate deep-copies a routine under the first free "(copia N)" name.
func (s *RutinaService) Duplicate(ctx context.Context, id uint) (*models.Rutina, error) {
	var copia models.Rutina
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		src, err := s.load(tx, id, "orden ASC, id ASC")
		if err != nil {
			return err
		}
		name, err := copyName(tx, src.Nombre)
		if err != nil {
			return err
		}

		copia = models.Rutina{
			Nombre:        name,
			Descripcion:   src.Descripcion,
			FechaCreacion: time.Now().UTC(),
		}
		if err := tx.Omit("Ejercicios").Create(&copia).Error; err != nil {
			return translateWriteErr(err)
		}

		ejercicios := make([]models.Ejercicio, 0, len(src.Ejercicios))
		for _, e := range src.Ejercicios {
			e.ID = 0
			e.RutinaID = copia.ID
			ejercicios = append(ejercicios, e)
		}
		if len(ejercicios) > 0 {
			if err := tx.Create(&ejercicios).Error; err != nil {
				return fmt.Errorf("copy ejercicios: %w", err)
			}
		}
		copia.Ejercicios = ejercicios
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &copia, nil
}

// copyName returns "<base> (copia)", or "<base> (copia N)" for the first
// free N starting at 2.
func copyName(db *gorm.DB, base string) (string, error) {
	candidate := base + " (copia)"
	for n := 2; ; n++ {
		taken, err := nameTaken(db, candidate, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (copia %d)", base, n)
	}
}

func findRutina(db *gorm.DB, id uint, out *models.Rutina) error {
	err := db.First(out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(MsgRutinaNoEncontrada)
	}
	if err != nil {
		return fmt.Errorf("find rutina %d: %w", id, err)
	}
	return nil
}

func nameTaken(db *gorm.DB, name string, exceptID uint) (bool, error) {
	var n int64
	q := db.Model(&models.Rutina{}).Where("nombre = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check nombre: %w", err)
	}
	return n > 0, nil
}

func ensureNameFree(db *gorm.DB, name string, exceptID uint) error {
	taken, err := nameTaken(db, name, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return conflict(MsgNombreDuplicado, nil)
	}
	return nil
}

// translateWriteErr maps a unique violation that slipped past the pre-check
// (a concurrent writer) to a conflict.
func translateWriteErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict(MsgNombreDuplicado, err)
	}
	return fmt.Errorf("write rutina: %w", err)
}
