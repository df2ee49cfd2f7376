package models

// PlanSemanal assigns one routine to a weekday. A missing row means the day
// is free.
type PlanSemanal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DiaSemana DiaSemana `gorm:"type:varchar(16);uniqueIndex;not null" json:"dia_semana"`
	RutinaID  uint      `gorm:"index;not null" json:"rutina_id"`
	Rutina    *Rutina   `gorm:"foreignKey:RutinaID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PlanSemanal) TableName() string { return "plan_semanal" }

type PlanDiaRead struct {
	DiaSemana    DiaSemana `json:"dia_semana"`
	RutinaID     *uint     `json:"rutina_id"`
	RutinaNombre *string   `json:"rutina_nombre"`
}

type PlanDiaUpdate struct {
	DiaSemana DiaSemana `json:"dia_semana" binding:"required"`
	RutinaID  uint      `json:"rutina_id" binding:"required"`
}
