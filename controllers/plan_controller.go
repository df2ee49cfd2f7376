package controllers

import (
	"net/http"

	"github.com/francosciascia/expert-giggle/models"
	"github.com/francosciascia/expert-giggle/services"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	Plan *services.PlanService
}

func NewPlanController(s *services.PlanService) *PlanController {
	return &PlanController{Plan: s}
}

func (pc *PlanController) GetWeek(c *gin.Context) {
	week, err := pc.Plan.GetWeek(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

func (pc *PlanController) Assign(c *gin.Context) {
	var body models.PlanDiaUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	read, err := pc.Plan.Assign(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, read)
}

func (pc *PlanController) Clear(c *gin.Context) {
	dia, err := models.ParseDiaSemana(c.Param("dia_semana"))
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := pc.Plan.Clear(c.Request.Context(), dia); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
