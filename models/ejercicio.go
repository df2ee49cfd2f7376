package models

import (
	"bytes"
	"encoding/json"

	"gorm.io/gorm"
)

// Ejercicio is one training item of a routine, scheduled on a weekday.
type Ejercicio struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RutinaID     uint      `gorm:"index;not null" json:"rutina_id"`
	Nombre       string    `gorm:"type:varchar(200);not null" json:"nombre"`
	NombreBusca  string    `gorm:"type:varchar(200);index;not null;default:''" json:"-"`
	DiaSemana    DiaSemana `gorm:"type:varchar(16);index;not null" json:"dia_semana"`
	Series       int       `gorm:"not null" json:"series"`
	Repeticiones int       `gorm:"not null" json:"repeticiones"`
	Peso         *float64  `json:"peso"`
	Notas        *string   `gorm:"type:varchar(500)" json:"notas"`
	Orden        int       `gorm:"not null;default:0" json:"orden"`
}

func (Ejercicio) TableName() string { return "ejercicios" }

func (e *Ejercicio) BeforeCreate(*gorm.DB) error {
	e.NombreBusca = SearchKey(e.Nombre)
	return nil
}

type EjercicioCreate struct {
	Nombre       string    `json:"nombre" binding:"required,min=1,max=200"`
	DiaSemana    DiaSemana `json:"dia_semana" binding:"required"`
	Series       int       `json:"series" binding:"required,gt=0"`
	Repeticiones int       `json:"repeticiones" binding:"required,gt=0"`
	Peso         *float64  `json:"peso" binding:"omitempty,gte=0"`
	Notas        *string   `json:"notas" binding:"omitempty,max=500"`
	Orden        *int      `json:"orden" binding:"omitempty,gte=0"`
}

// ToModel builds the row for routine rutinaID.
func (in EjercicioCreate) ToModel(rutinaID uint) Ejercicio {
	e := Ejercicio{
		RutinaID:     rutinaID,
		Nombre:       in.Nombre,
		DiaSemana:    in.DiaSemana,
		Series:       in.Series,
		Repeticiones: in.Repeticiones,
		Peso:         in.Peso,
		Notas:        in.Notas,
	}
	if in.Orden != nil {
		e.Orden = *in.Orden
	}
	return e
}

// EjercicioUpdate carries only the fields the client sent.
type EjercicioUpdate struct {
	Nombre       *string    `json:"nombre" binding:"omitempty,min=1,max=200"`
	DiaSemana    *DiaSemana `json:"dia_semana"`
	Series       *int       `json:"series" binding:"omitempty,gt=0"`
	Repeticiones *int       `json:"repeticiones" binding:"omitempty,gt=0"`
	Peso         *float64   `json:"peso" binding:"omitempty,gte=0"`
	Notas        *string    `json:"notas" binding:"omitempty,max=500"`
	Orden        *int       `json:"orden" binding:"omitempty,gte=0"`

	// nullable columns sent as an explicit null
	nulls map[string]bool
}

var ejercicioNullable = []string{"peso", "notas"}

// UnmarshalJSON keeps track of peso and notas sent as null, which clear the
// stored value, as opposed to being left out.
func (in *EjercicioUpdate) UnmarshalJSON(b []byte) error {
	type plain EjercicioUpdate
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*in = EjercicioUpdate(p)
	for _, k := range ejercicioNullable {
		if v, ok := raw[k]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			in.Clear(k)
		}
	}
	return nil
}

// Clear marks a nullable column (peso, notas) to be set to NULL.
func (in *EjercicioUpdate) Clear(column string) {
	if in.nulls == nil {
		in.nulls = map[string]bool{}
	}
	in.nulls[column] = true
}

// Changes returns the column map for a partial update.
func (in EjercicioUpdate) Changes() map[string]interface{} {
	m := map[string]interface{}{}
	if in.Nombre != nil {
		m["nombre"] = *in.Nombre
		m["nombre_busca"] = SearchKey(*in.Nombre)
	}
	if in.DiaSemana != nil {
		m["dia_semana"] = *in.DiaSemana
	}
	if in.Series != nil {
		m["series"] = *in.Series
	}
	if in.Repeticiones != nil {
		m["repeticiones"] = *in.Repeticiones
	}
	if in.Peso != nil {
		m["peso"] = *in.Peso
	}
	if in.Notas != nil {
		m["notas"] = *in.Notas
	}
	if in.Orden != nil {
		m["orden"] = *in.Orden
	}
	for k := range in.nulls {
		m[k] = nil
	}
	return m
}

type EjercicioOrden struct {
	ID    uint `json:"id" binding:"required"`
	Orden int  `json:"orden" binding:"gte=0"`
}

type ReordenPayload struct {
	Items []EjercicioOrden `json:"items" binding:"dive"`
}
