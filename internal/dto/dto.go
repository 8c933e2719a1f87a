// dto.go
package dto

import "time"

// ProductoDTO es una línea del pedido tal como llega en el body.
// precio_unitario va como puntero para distinguir "ausente" de 0.
type ProductoDTO struct {
	IDProducto     int      `json:"id_producto" binding:"required"`
	Cantidad       int      `json:"cantidad" binding:"required"`
	PrecioUnitario *float64 `json:"precio_unitario" binding:"required"`
}

type CreatePedidoRequest struct {
	IDUsuario int           `json:"id_usuario" binding:"required"`
	Productos []ProductoDTO `json:"productos" binding:"required"`
	Total     *float64      `json:"total" binding:"required"`
}

type UpdateEstadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// UpdatePedidoRequest actualiza detalles; ambos campos son opcionales pero
// al menos uno debe venir.
type UpdatePedidoRequest struct {
	Productos []ProductoDTO `json:"productos"`
	Total     *float64      `json:"total"`
}

type RegistrarHistorialRequest struct {
	Estado      string     `json:"estado" binding:"required"`
	Comentarios string     `json:"comentarios"`
	FechaEvento *time.Time `json:"fecha_evento"`
}
