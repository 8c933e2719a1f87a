package service_test

import (
	"context"
	"testing"
	"time"

	"pedidos-service/internal/model"
	"pedidos-service/internal/repository"
	"pedidos-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newHistorialService() (*service.HistorialService, *MockHistorialRepository, *MockPedidoRepository) {
	historialRepo := new(MockHistorialRepository)
	pedidoRepo := new(MockPedidoRepository)
	svc := service.NewHistorialService(historialRepo, pedidoRepo, testLogger())
	return svc, historialRepo, pedidoRepo
}

func TestHistorialService_GetForUser(t *testing.T) {
	svc, historialRepo, _ := newHistorialService()

	expected := []*model.HistorialPedido{
		{IDUsuario: 14, Estado: model.EstadoPending, Comentarios: "order created"},
		{IDUsuario: 14, Estado: model.EstadoDelivered, Comentarios: "status changed to: delivered"},
	}
	historialRepo.On("FindByUser", mock.Anything, 14, "").Return(expected, nil).Once()

	entries, err := svc.GetForUser(context.Background(), 14, "")

	require.NoError(t, err)
	assert.Equal(t, expected, entries)
	historialRepo.AssertExpectations(t)
}

func TestHistorialService_GetForUser_NoEntriesIsEmptyList(t *testing.T) {
	svc, historialRepo, _ := newHistorialService()

	historialRepo.On("FindByUser", mock.Anything, 14, "").Return(nil, nil).Once()

	entries, err := svc.GetForUser(context.Background(), 14, "")

	// Usuario sin historial: lista vacía, nunca un not-found.
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestHistorialService_GetForUser_EstadoFilter(t *testing.T) {
	svc, historialRepo, _ := newHistorialService()

	historialRepo.On("FindByUser", mock.Anything, 14, "cancelled").
		Return([]*model.HistorialPedido{{IDUsuario: 14, Estado: model.EstadoCancelled}}, nil).Once()

	entries, err := svc.GetForUser(context.Background(), 14, "cancelled")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.EstadoCancelled, entries[0].Estado)
}

func TestHistorialService_GetForUser_InvalidArguments(t *testing.T) {
	svc, historialRepo, _ := newHistorialService()

	_, err := svc.GetForUser(context.Background(), -1, "")
	assert.Equal(t, service.KindInvalidArgument, kindOf(t, err))

	_, err = svc.GetForUser(context.Background(), 14, "returned")
	assert.Equal(t, service.KindInvalidArgument, kindOf(t, err))

	historialRepo.AssertNotCalled(t, "FindByUser")
}

func TestHistorialService_Registrar(t *testing.T) {
	svc, historialRepo, pedidoRepo := newHistorialService()

	oid := primitive.NewObjectID()
	pedido := &model.Pedido{ID: oid, IDUsuario: 14, Estado: model.EstadoPending}
	pedidoRepo.On("FindByID", mock.Anything, oid).Return(pedido, nil).Once()

	historialRepo.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := svc.Registrar(context.Background(), oid.Hex(), model.EstadoDelivered, "", nil)

	require.NoError(t, err)
	assert.Equal(t, oid, entry.IDPedido)
	// id_usuario se copia del pedido, no viene en el request
	assert.Equal(t, 14, entry.IDUsuario)
	assert.Equal(t, model.EstadoDelivered, entry.Estado)
	assert.Equal(t, "status changed to: delivered", entry.Comentarios)
	assert.WithinDuration(t, time.Now().UTC(), entry.FechaEvento, 2*time.Second)
}

func TestHistorialService_Registrar_ExplicitCommentAndDate(t *testing.T) {
	svc, historialRepo, pedidoRepo := newHistorialService()

	oid := primitive.NewObjectID()
	pedido := &model.Pedido{ID: oid, IDUsuario: 7, Estado: model.EstadoPending}
	pedidoRepo.On("FindByID", mock.Anything, oid).Return(pedido, nil).Once()
	historialRepo.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	when := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entry, err := svc.Registrar(context.Background(), oid.Hex(), model.EstadoCancelled, "cliente se arrepintió", &when)

	require.NoError(t, err)
	assert.Equal(t, "cliente se arrepintió", entry.Comentarios)
	assert.Equal(t, when, entry.FechaEvento)
}

func TestHistorialService_Registrar_InvalidEstado(t *testing.T) {
	svc, _, pedidoRepo := newHistorialService()

	_, err := svc.Registrar(context.Background(), primitive.NewObjectID().Hex(), "lost", "", nil)

	assert.Equal(t, service.KindInvalidArgument, kindOf(t, err))
	pedidoRepo.AssertNotCalled(t, "FindByID")
}

func TestHistorialService_Registrar_MalformedID(t *testing.T) {
	svc, _, pedidoRepo := newHistorialService()

	_, err := svc.Registrar(context.Background(), "zzz", model.EstadoPending, "", nil)

	assert.Equal(t, service.KindInvalidArgument, kindOf(t, err))
	pedidoRepo.AssertNotCalled(t, "FindByID")
}

func TestHistorialService_Registrar_PedidoNotFound(t *testing.T) {
	svc, historialRepo, pedidoRepo := newHistorialService()

	oid := primitive.NewObjectID()
	pedidoRepo.On("FindByID", mock.Anything, oid).Return(nil, repository.ErrNotFound).Once()

	_, err := svc.Registrar(context.Background(), oid.Hex(), model.EstadoDelivered, "", nil)

	assert.Equal(t, service.KindNotFound, kindOf(t, err))
	historialRepo.AssertNotCalled(t, "Insert")
}
