package service

import (
	"context"
	"errors"
	"time"

	"pedidos-service/internal/model"
	"pedidos-service/internal/repository"

	"github.com/sirupsen/logrus"
)

type HistorialService struct {
	historial HistorialRepository
	pedidos   PedidoRepository
	log       *logrus.Logger
}

func NewHistorialService(historial HistorialRepository, pedidos PedidoRepository, log *logrus.Logger) *HistorialService {
	return &HistorialService{
		historial: historial,
		pedidos:   pedidos,
		log:       log,
	}
}

// GetForUser devuelve el historial de un usuario ordenado por fecha de evento.
// Un usuario sin historial recibe lista vacía, no un 404.
func (s *HistorialService) GetForUser(ctx context.Context, idUsuario int, estado string) ([]*model.HistorialPedido, error) {
	if idUsuario <= 0 {
		return nil, invalidArgumentf("id_usuario must be a positive integer")
	}
	if estado != "" && !model.IsValidEstado(estado) {
		return nil, invalidArgumentf("invalid estado %q: must be pending, delivered or cancelled", estado)
	}

	entries, err := s.historial.FindByUser(ctx, idUsuario, estado)
	if err != nil {
		s.log.WithError(err).Error("error listando historial")
		return nil, internalf("could not list order history")
	}
	if entries == nil {
		entries = []*model.HistorialPedido{}
	}
	return entries, nil
}

// Registrar agrega una entrada manual al historial de un pedido existente.
// Sin comentario se genera uno por defecto; sin fecha se usa la actual.
func (s *HistorialService) Registrar(ctx context.Context, idPedido, estado, comentarios string, fechaEvento *time.Time) (*model.HistorialPedido, error) {
	if !model.IsValidEstado(estado) {
		return nil, invalidArgumentf("invalid estado %q: must be pending, delivered or cancelled", estado)
	}

	oid, err := parsePedidoID(idPedido)
	if err != nil {
		return nil, err
	}

	pedido, err := s.pedidos.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("order %s not found", oid.Hex())
		}
		s.log.WithError(err).Error("error buscando pedido")
		return nil, internalf("could not fetch order")
	}

	when := time.Now().UTC()
	if fechaEvento != nil {
		when = fechaEvento.UTC()
	}
	if comentarios == "" {
		comentarios = "status changed to: " + estado
	}

	entry := &model.HistorialPedido{
		IDPedido:    oid,
		IDUsuario:   pedido.IDUsuario,
		FechaEvento: when,
		Estado:      estado,
		Comentarios: comentarios,
	}
	if err := s.historial.Insert(ctx, entry); err != nil {
		s.log.WithError(err).Error("error insertando historial")
		return nil, internalf("could not record order history")
	}
	return entry, nil
}
