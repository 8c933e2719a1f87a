// models.go
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Estados válidos de un pedido. No hay catálogo en BD.
const (
	EstadoPending   = "pending"
	EstadoDelivered = "delivered"
	EstadoCancelled = "cancelled"
)

var validEstados = map[string]bool{
	EstadoPending:   true,
	EstadoDelivered: true,
	EstadoCancelled: true,
}

func IsValidEstado(s string) bool {
	return validEstados[s]
}

// Producto es una línea del pedido (referencia al catálogo del microservicio de productos).
type Producto struct {
	IDProducto     int     `bson:"id_producto" json:"id_producto"`
	Cantidad       int     `bson:"cantidad" json:"cantidad"`
	PrecioUnitario float64 `bson:"precio_unitario" json:"precio_unitario"`
}

type Pedido struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IDUsuario   int                `bson:"id_usuario" json:"id_usuario"`
	FechaPedido time.Time          `bson:"fecha_pedido" json:"fecha_pedido"`
	Estado      string             `bson:"estado" json:"estado"`
	Total       float64            `bson:"total" json:"total"`
	Productos   []Producto         `bson:"productos" json:"productos"`
}

// HistorialPedido es append-only: se inserta un registro por cada cambio de
// estado o de detalles y nunca se actualiza ni se borra.
type HistorialPedido struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IDPedido    primitive.ObjectID `bson:"id_pedido" json:"id_pedido"`
	IDUsuario   int                `bson:"id_usuario" json:"id_usuario"`
	FechaEvento time.Time          `bson:"fecha_evento" json:"fecha_evento"`
	Estado      string             `bson:"estado" json:"estado"`
	Comentarios string             `bson:"comentarios" json:"comentarios"`
}
