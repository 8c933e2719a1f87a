package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pedidos-service/internal/dto"
	"pedidos-service/internal/model"
	"pedidos-service/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidoController struct {
	Service *service.PedidoService
}

func NewPedidoController(s *service.PedidoService) *PedidoController {
	return &PedidoController{Service: s}
}

// POST /pedidos
func (ctl *PedidoController) CreatePedido(c *gin.Context) {
	var req dto.CreatePedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pedido, err := ctl.Service.Create(c.Request.Context(), req.IDUsuario, toProductos(req.Productos), *req.Total)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pedido)
}

// GET /pedidos/user/:id_usuario?estado=
func (ctl *PedidoController) GetPedidosByUser(c *gin.Context) {
	idUsuario, err := strconv.Atoi(c.Param("id_usuario"))
	if err != nil {
		respondError(c, &service.Error{Kind: service.KindInvalidArgument, Message: "id_usuario must be an integer"})
		return
	}

	pedidos, svcErr := ctl.Service.GetByUser(c.Request.Context(), idUsuario, c.Query("estado"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, pedidos)
}

// GET /pedidos/:id_pedido
func (ctl *PedidoController) GetPedidoByID(c *gin.Context) {
	pedido, err := ctl.Service.GetByID(c.Request.Context(), c.Param("id_pedido"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedido)
}

// PUT /pedidos/:id_pedido/estado
func (ctl *PedidoController) UpdateEstado(c *gin.Context) {
	var req dto.UpdateEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pedido, err := ctl.Service.UpdateEstado(c.Request.Context(), c.Param("id_pedido"), req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedido)
}

// PUT /pedidos/:id_pedido
func (ctl *PedidoController) UpdatePedido(c *gin.Context) {
	var req dto.UpdatePedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var productos []model.Producto
	if req.Productos != nil {
		productos = toProductos(req.Productos)
	}

	pedido, err := ctl.Service.UpdateDetalles(c.Request.Context(), c.Param("id_pedido"), productos, req.Total)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedido)
}

// DELETE /pedidos/:id_pedido — cancela, no borra.
func (ctl *PedidoController) CancelPedido(c *gin.Context) {
	pedido, err := ctl.Service.Cancel(c.Request.Context(), c.Param("id_pedido"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedido)
}

// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "pedidos-service running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func toProductos(in []dto.ProductoDTO) []model.Producto {
	out := make([]model.Producto, 0, len(in))
	for _, p := range in {
		precio := 0.0
		if p.PrecioUnitario != nil {
			precio = *p.PrecioUnitario
		}
		out = append(out, model.Producto{
			IDProducto:     p.IDProducto,
			Cantidad:       p.Cantidad,
			PrecioUnitario: precio,
		})
	}
	return out
}

// respondError traduce el Kind del error de negocio al status HTTP.
// Nunca se filtran detalles internos ni stack traces al cliente.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		svcErr = &service.Error{Kind: service.KindInternal, Message: "unexpected error"}
	}
	c.JSON(statusFor(svcErr.Kind), gin.H{
		"error":   string(svcErr.Kind),
		"message": svcErr.Message,
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   string(service.KindInvalidArgument),
		"message": err.Error(),
	})
}

func statusFor(k service.Kind) int {
	switch k {
	case service.KindInvalidArgument:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
