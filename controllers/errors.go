package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/francosciascia/expert-giggle/middlewares"
	"github.com/francosciascia/expert-giggle/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service error kinds to status codes. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var se *services.ServiceError
	switch {
	case errors.As(err, &se) && errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": se.Msg})
	case errors.As(err, &se) && errors.Is(err, services.ErrConflict):
		// conflicts are reported as 400 like the rest of the API
		c.JSON(http.StatusBadRequest, gin.H{"detail": se.Msg})
	case errors.As(err, &se) && errors.Is(err, services.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"detail": se.Msg})
	default:
		middlewares.Logger(c).Error("handler.error", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error interno del servidor"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Identificador inválido"})
		return 0, false
	}
	return uint(id), true
}
