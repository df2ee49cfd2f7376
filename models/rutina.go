package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Rutina is a named training routine. Its exercises and plan entries are
// removed with it.
type Rutina struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Nombre        string      `gorm:"type:varchar(200);uniqueIndex;not null" json:"nombre"`
	NombreBusca   string      `gorm:"type:varchar(200);index;not null;default:''" json:"-"`
	Descripcion   *string     `gorm:"type:varchar(1000)" json:"descripcion"`
	FechaCreacion time.Time   `gorm:"not null" json:"fecha_creacion"`
	Ejercicios    []Ejercicio `gorm:"foreignKey:RutinaID;constraint:OnDelete:CASCADE" json:"ejercicios"`
}

func (Rutina) TableName() string { return "rutinas" }

func (r *Rutina) BeforeCreate(*gorm.DB) error {
	r.NombreBusca = SearchKey(r.Nombre)
	return nil
}

// SearchKey is the folded form stored next to searchable names. SQLite's
// LOWER only folds ASCII, so matching runs on this column instead.
func SearchKey(s string) string {
	return strings.ToLower(s)
}

// RutinaListItem is the row returned by list and search.
type RutinaListItem struct {
	ID              uint      `json:"id"`
	Nombre          string    `json:"nombre"`
	Descripcion     *string   `json:"descripcion"`
	FechaCreacion   time.Time `json:"fecha_creacion"`
	TotalEjercicios int64     `json:"total_ejercicios"`
}

type RutinaListResponse struct {
	Items []RutinaListItem `json:"items"`
	Total int64            `json:"total"`
	Skip  int              `json:"skip"`
	Limit int              `json:"limit"`
}

type RutinaCreate struct {
	Nombre      string            `json:"nombre" binding:"required,min=1,max=200"`
	Descripcion *string           `json:"descripcion" binding:"omitempty,max=1000"`
	Ejercicios  []EjercicioCreate `json:"ejercicios" binding:"omitempty,dive"`
}

type RutinaUpdate struct {
	Nombre      *string `json:"nombre" binding:"omitempty,min=1,max=200"`
	Descripcion *string `json:"descripcion" binding:"omitempty,max=1000"`
}
