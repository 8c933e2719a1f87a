package controller

import (
	"net/http"
	"strconv"

	"pedidos-service/internal/dto"
	"pedidos-service/internal/service"

	"github.com/gin-gonic/gin"
)

type HistorialController struct {
	Service *service.HistorialService
}

func NewHistorialController(s *service.HistorialService) *HistorialController {
	return &HistorialController{Service: s}
}

// GET /historial/:id_usuario?estado=
func (ctl *HistorialController) GetHistorialByUser(c *gin.Context) {
	idUsuario, err := strconv.Atoi(c.Param("id_usuario"))
	if err != nil {
		respondError(c, &service.Error{Kind: service.KindInvalidArgument, Message: "id_usuario must be an integer"})
		return
	}

	entries, svcErr := ctl.Service.GetForUser(c.Request.Context(), idUsuario, c.Query("estado"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// POST /pedidos/:id_pedido/historial
func (ctl *HistorialController) RegistrarHistorial(c *gin.Context) {
	var req dto.RegistrarHistorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := ctl.Service.Registrar(c.Request.Context(), c.Param("id_pedido"), req.Estado, req.Comentarios, req.FechaEvento)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
