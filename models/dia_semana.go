package models

import (
	"encoding/json"
	"fmt"
)

// DiaSemana is a weekday as stored and exchanged by the API.
type DiaSemana string

const (
	Lunes     DiaSemana = "Lunes"
	Martes    DiaSemana = "Martes"
	Miercoles DiaSemana = "Miércoles"
	Jueves    DiaSemana = "Jueves"
	Viernes   DiaSemana = "Viernes"
	Sabado    DiaSemana = "Sábado"
	Domingo   DiaSemana = "Domingo"
)

// DiasSemana lists every weekday in calendar order, Monday first.
var DiasSemana = []DiaSemana{Lunes, Martes, Miercoles, Jueves, Viernes, Sabado, Domingo}

// ParseDiaSemana accepts only the exact weekday names.
func ParseDiaSemana(s string) (DiaSemana, error) {
	d := DiaSemana(s)
	if !d.Valid() {
		return "", fmt.Errorf("dia_semana inválido: %q", s)
	}
	return d, nil
}

func (d DiaSemana) Valid() bool {
	return d.Index() >= 0
}

// Index is the position of d in DiasSemana, or -1.
func (d DiaSemana) Index() int {
	for i, v := range DiasSemana {
		if v == d {
			return i
		}
	}
	return -1
}

func (d *DiaSemana) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("dia_semana debe ser texto: %w", err)
	}
	parsed, err := ParseDiaSemana(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
