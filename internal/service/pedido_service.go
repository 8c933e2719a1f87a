package service

import (
	"context"
	"errors"
	"time"

	"pedidos-service/internal/model"
	"pedidos-service/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interfaces que debe implementar repository
type PedidoRepository interface {
	Insert(ctx context.Context, p *model.Pedido) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Pedido, error)
	FindByUser(ctx context.Context, idUsuario int, estado string) ([]*model.Pedido, error)
	UpdateEstado(ctx context.Context, id primitive.ObjectID, estado string) error
	UpdateDetalles(ctx context.Context, id primitive.ObjectID, productos []model.Producto, total *float64) error
}

type HistorialRepository interface {
	Insert(ctx context.Context, h *model.HistorialPedido) error
	FindByUser(ctx context.Context, idUsuario int, estado string) ([]*model.HistorialPedido, error)
}

// EventPublisher publica eventos de ciclo de vida del pedido (best effort).
type EventPublisher interface {
	PublishPedidoEvent(ctx context.Context, event string, p *model.Pedido) error
}

// Eventos publicados en el exchange de pedidos.
const (
	EventPedidoCreated       = "pedido.created"
	EventPedidoEstadoChanged = "pedido.estado_changed"
	EventPedidoCancelled     = "pedido.cancelled"
)

type PedidoService struct {
	pedidos   PedidoRepository
	historial HistorialRepository
	validator Validator
	events    EventPublisher // puede ser nil
	log       *logrus.Logger
}

func NewPedidoService(pedidos PedidoRepository, historial HistorialRepository, validator Validator, events EventPublisher, log *logrus.Logger) *PedidoService {
	return &PedidoService{
		pedidos:   pedidos,
		historial: historial,
		validator: validator,
		events:    events,
		log:       log,
	}
}

// Create valida la forma del pedido, verifica usuario y productos contra los
// microservicios externos y recién entonces persiste. Se escribe el pedido y
// después su entrada de historial; no hay transacción entre ambas escrituras.
func (s *PedidoService) Create(ctx context.Context, idUsuario int, productos []model.Producto, total float64) (*model.Pedido, error) {
	if idUsuario <= 0 {
		return nil, invalidArgumentf("id_usuario must be a positive integer")
	}
	if len(productos) == 0 {
		return nil, invalidArgumentf("productos must be a non-empty list")
	}
	if err := validateProductos(productos); err != nil {
		return nil, err
	}
	if total < 0 {
		return nil, invalidArgumentf("total must be non-negative")
	}

	if err := s.validator.ValidateUser(ctx, idUsuario); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateProductos(ctx, productoIDs(productos)); err != nil {
		return nil, err
	}

	pedido := &model.Pedido{
		IDUsuario:   idUsuario,
		FechaPedido: time.Now().UTC(),
		Estado:      model.EstadoPending,
		Total:       total,
		Productos:   productos,
	}

	if err := s.pedidos.Insert(ctx, pedido); err != nil {
		s.log.WithError(err).Error("error insertando pedido")
		return nil, internalf("could not persist order")
	}

	if err := s.appendHistorial(ctx, pedido, model.EstadoPending, "order created"); err != nil {
		return nil, err
	}

	s.publish(ctx, EventPedidoCreated, pedido)
	return pedido, nil
}

// GetByUser lista los pedidos de un usuario; estado vacío = sin filtro.
// Lista vacía no es error.
func (s *PedidoService) GetByUser(ctx context.Context, idUsuario int, estado string) ([]*model.Pedido, error) {
	if idUsuario <= 0 {
		return nil, invalidArgumentf("id_usuario must be a positive integer")
	}
	if estado != "" && !model.IsValidEstado(estado) {
		return nil, invalidArgumentf("invalid estado %q: must be pending, delivered or cancelled", estado)
	}

	pedidos, err := s.pedidos.FindByUser(ctx, idUsuario, estado)
	if err != nil {
		s.log.WithError(err).Error("error listando pedidos")
		return nil, internalf("could not list orders")
	}
	if pedidos == nil {
		pedidos = []*model.Pedido{}
	}
	return pedidos, nil
}

func (s *PedidoService) GetByID(ctx context.Context, idPedido string) (*model.Pedido, error) {
	oid, err := parsePedidoID(idPedido)
	if err != nil {
		return nil, err
	}
	return s.findPedido(ctx, oid)
}

// UpdateEstado cambia el estado in place y agrega la entrada de historial
// correspondiente con un comentario generado.
func (s *PedidoService) UpdateEstado(ctx context.Context, idPedido, estado string) (*model.Pedido, error) {
	if !model.IsValidEstado(estado) {
		return nil, invalidArgumentf("invalid estado %q: must be pending, delivered or cancelled", estado)
	}

	oid, err := parsePedidoID(idPedido)
	if err != nil {
		return nil, err
	}
	pedido, err := s.findPedido(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := s.pedidos.UpdateEstado(ctx, oid, estado); err != nil {
		return nil, s.mapStoreErr(err, "error actualizando estado")
	}
	pedido.Estado = estado

	if err := s.appendHistorial(ctx, pedido, estado, "status changed to: "+estado); err != nil {
		return nil, err
	}

	s.publish(ctx, EventPedidoEstadoChanged, pedido)
	return pedido, nil
}

// UpdateDetalles actualiza productos y/o total. Los productos nuevos se
// revalidan contra el microservicio de productos juntando todos los ids
// inexistentes. El estado no cambia; el historial registra el estado actual.
func (s *PedidoService) UpdateDetalles(ctx context.Context, idPedido string, productos []model.Producto, total *float64) (*model.Pedido, error) {
	if productos == nil && total == nil {
		return nil, invalidArgumentf("nothing to update: supply productos and/or total")
	}
	if productos != nil {
		if len(productos) == 0 {
			return nil, invalidArgumentf("productos must be a non-empty list")
		}
		if err := validateProductos(productos); err != nil {
			return nil, err
		}
	}
	if total != nil && *total < 0 {
		return nil, invalidArgumentf("total must be non-negative")
	}

	oid, err := parsePedidoID(idPedido)
	if err != nil {
		return nil, err
	}
	pedido, err := s.findPedido(ctx, oid)
	if err != nil {
		return nil, err
	}

	if productos != nil {
		if err := s.validator.ValidateProductos(ctx, productoIDs(productos)); err != nil {
			return nil, err
		}
	}

	if err := s.pedidos.UpdateDetalles(ctx, oid, productos, total); err != nil {
		return nil, s.mapStoreErr(err, "error actualizando detalles")
	}
	if productos != nil {
		pedido.Productos = productos
	}
	if total != nil {
		pedido.Total = *total
	}

	if err := s.appendHistorial(ctx, pedido, pedido.Estado, "order details updated"); err != nil {
		return nil, err
	}
	return pedido, nil
}

// Cancel es una transición de estado, no un borrado. No está protegido contra
// repeticiones: cancelar dos veces agrega dos entradas de historial.
func (s *PedidoService) Cancel(ctx context.Context, idPedido string) (*model.Pedido, error) {
	oid, err := parsePedidoID(idPedido)
	if err != nil {
		return nil, err
	}
	pedido, err := s.findPedido(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := s.pedidos.UpdateEstado(ctx, oid, model.EstadoCancelled); err != nil {
		return nil, s.mapStoreErr(err, "error cancelando pedido")
	}
	pedido.Estado = model.EstadoCancelled

	if err := s.appendHistorial(ctx, pedido, model.EstadoCancelled, "order cancelled"); err != nil {
		return nil, err
	}

	s.publish(ctx, EventPedidoCancelled, pedido)
	return pedido, nil
}

func (s *PedidoService) findPedido(ctx context.Context, oid primitive.ObjectID) (*model.Pedido, error) {
	pedido, err := s.pedidos.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("order %s not found", oid.Hex())
		}
		s.log.WithError(err).Error("error buscando pedido")
		return nil, internalf("could not fetch order")
	}
	return pedido, nil
}

func (s *PedidoService) appendHistorial(ctx context.Context, p *model.Pedido, estado, comentarios string) error {
	entry := &model.HistorialPedido{
		IDPedido:    p.ID,
		IDUsuario:   p.IDUsuario,
		FechaEvento: time.Now().UTC(),
		Estado:      estado,
		Comentarios: comentarios,
	}
	if err := s.historial.Insert(ctx, entry); err != nil {
		// El pedido ya quedó escrito; no hay rollback entre ambas escrituras.
		s.log.WithError(err).WithField("id_pedido", p.ID.Hex()).Error("error insertando historial")
		return internalf("could not record order history")
	}
	return nil
}

func (s *PedidoService) publish(ctx context.Context, event string, p *model.Pedido) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishPedidoEvent(ctx, event, p); err != nil {
		s.log.WithError(err).WithField("event", event).Warn("no se pudo publicar evento")
	}
}

func (s *PedidoService) mapStoreErr(err error, logMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundf("order not found")
	}
	s.log.WithError(err).Error(logMsg)
	return internalf("could not update order")
}

func validateProductos(productos []model.Producto) error {
	for _, p := range productos {
		if p.IDProducto <= 0 {
			return invalidArgumentf("id_producto must be a positive integer")
		}
		if p.Cantidad <= 0 {
			return invalidArgumentf("cantidad must be a positive integer")
		}
		if p.PrecioUnitario < 0 {
			return invalidArgumentf("precio_unitario must be non-negative")
		}
	}
	return nil
}

func productoIDs(productos []model.Producto) []int {
	ids := make([]int, 0, len(productos))
	for _, p := range productos {
		ids = append(ids, p.IDProducto)
	}
	return ids
}

func parsePedidoID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, invalidArgumentf("invalid order id %q", id)
	}
	return oid, nil
}
