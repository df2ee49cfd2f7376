package controllers

import (
	"net/http"

	"github.com/francosciascia/expert-giggle/models"
	"github.com/francosciascia/expert-giggle/services"

	"github.com/gin-gonic/gin"
)

type EjercicioController struct {
	Ejercicios *services.EjercicioService
}

func NewEjercicioController(s *services.EjercicioService) *EjercicioController {
	return &EjercicioController{Ejercicios: s}
}

func (ec *EjercicioController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body models.EjercicioUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	e, err := ec.Ejercicios.Update(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (ec *EjercicioController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ec.Ejercicios.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
