package services

import (
	"github.com/francosciascia/expert-giggle/models"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 100
	MaxLimit     = 200
)

// RutinaFilter narrows list and search. Empty fields do not filter.
type RutinaFilter struct {
	Nombre          string
	DiaSemana       models.DiaSemana
	EjercicioNombre string
	Skip            int
	Limit           int
}

func (f RutinaFilter) validate() error {
	if f.Skip < 0 {
		return badRequest("skip debe ser mayor o igual a 0")
	}
	if f.Limit < 1 || f.Limit > MaxLimit {
		return badRequest("limit debe estar entre 1 y 200")
	}
	if f.DiaSemana != "" && !f.DiaSemana.Valid() {
		return badRequest("dia_semana inválido")
	}
	return nil
}

// scope composes the WHERE clauses on rutinas. Exercise filters go through
// an IN subquery so each routine appears once however many exercises match.
func (f RutinaFilter) scope(db *gorm.DB) *gorm.DB {
	q := db.Model(&models.Rutina{})
	if f.Nombre != "" {
		q = q.Where("rutinas.nombre_busca LIKE ?", containsPattern(f.Nombre))
	}
	if f.DiaSemana != "" || f.EjercicioNombre != "" {
		sub := db.Model(&models.Ejercicio{}).Select("ejercicios.rutina_id")
		if f.DiaSemana != "" {
			sub = sub.Where("ejercicios.dia_semana = ?", f.DiaSemana)
		}
		if f.EjercicioNombre != "" {
			sub = sub.Where("ejercicios.nombre_busca LIKE ?", containsPattern(f.EjercicioNombre))
		}
		q = q.Where("rutinas.id IN (?)", sub)
	}
	return q
}

func containsPattern(s string) string {
	return "%" + models.SearchKey(s) + "%"
}

type exerciseCount struct {
	RutinaID uint
	Total    int64
}

// countExercises returns exercise totals keyed by routine id.
func countExercises(db *gorm.DB, ids []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []exerciseCount
	err := db.Model(&models.Ejercicio{}).
		Select("rutina_id, COUNT(*) AS total").
		Where("rutina_id IN ?", ids).
		Group("rutina_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.RutinaID] = r.Total
	}
	return out, nil
}
