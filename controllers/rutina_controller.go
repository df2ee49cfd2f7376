package controllers

import (
	"fmt"
	"net/http"

	"github.com/francosciascia/expert-giggle/models"
	"github.com/francosciascia/expert-giggle/services"

	"github.com/gin-gonic/gin"
)

type RutinaController struct {
	Rutinas *services.RutinaService
	Export  *services.ExportService
}

func NewRutinaController(r *services.RutinaService, e *services.ExportService) *RutinaController {
	return &RutinaController{Rutinas: r, Export: e}
}

type listQuery struct {
	Nombre          string  `form:"nombre"`
	Skip            int     `form:"skip,default=0"`
	Limit           int     `form:"limit,default=100"`
	DiaSemana       string  `form:"dia_semana"`
	EjercicioNombre *string `form:"ejercicio_nombre"`
}

func (q listQuery) filter() (services.RutinaFilter, error) {
	f := services.RutinaFilter{Nombre: q.Nombre, Skip: q.Skip, Limit: q.Limit}
	if q.DiaSemana != "" {
		dia, err := models.ParseDiaSemana(q.DiaSemana)
		if err != nil {
			return f, err
		}
		f.DiaSemana = dia
	}
	if q.EjercicioNombre != nil {
		if *q.EjercicioNombre == "" {
			return f, fmt.Errorf("ejercicio_nombre no puede estar vacío")
		}
		f.EjercicioNombre = *q.EjercicioNombre
	}
	return f, nil
}

func (rc *RutinaController) bindFilter(c *gin.Context) (services.RutinaFilter, bool) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return services.RutinaFilter{}, false
	}
	f, err := q.filter()
	if err != nil {
		badRequest(c, err)
		return services.RutinaFilter{}, false
	}
	return f, true
}

func (rc *RutinaController) List(c *gin.Context) {
	f, ok := rc.bindFilter(c)
	if !ok {
		return
	}
	// list ignores the name filter; that is what /buscar is for
	f.Nombre = ""
	res, err := rc.Rutinas.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rc *RutinaController) Search(c *gin.Context) {
	f, ok := rc.bindFilter(c)
	if !ok {
		return
	}
	res, err := rc.Rutinas.Search(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rc *RutinaController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rutina, err := rc.Rutinas.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rutina)
}

func (rc *RutinaController) Create(c *gin.Context) {
	var body models.RutinaCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	rutina, err := rc.Rutinas.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rutina)
}

func (rc *RutinaController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body models.RutinaUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	rutina, err := rc.Rutinas.Update(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rutina)
}

func (rc *RutinaController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := rc.Rutinas.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rc *RutinaController) AddExercise(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body models.EjercicioCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	e, err := rc.Rutinas.AddExercise(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (rc *RutinaController) Reorder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body models.ReordenPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	rutina, err := rc.Rutinas.ReorderExercises(c.Request.Context(), id, body.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rutina)
}

func (rc *RutinaController) Duplicate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rutina, err := rc.Rutinas.Duplicate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rutina)
}

func (rc *RutinaController) ExportFile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := rc.Export.Export(c.Request.Context(), id, c.DefaultQuery("formato", services.FormatoPDF))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Body)
}
