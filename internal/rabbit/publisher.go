// publisher.go
package rabbit

import (
	"context"
	"encoding/json"
	"time"

	"pedidos-service/internal/model"

	"github.com/rabbitmq/amqp091-go"
)

const exchangeName = "pedido_events"

// Publisher publica eventos de ciclo de vida de pedidos en un exchange fanout,
// para que otros microservicios puedan reaccionar a cambios de estado.
type Publisher struct {
	ch *amqp091.Channel
}

func NewPublisher(ch *amqp091.Channel) (*Publisher, error) {
	// Declarar el exchange fanout (idempotente)
	err := ch.ExchangeDeclare(
		exchangeName,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{ch: ch}, nil
}

type pedidoEvent struct {
	Event       string    `json:"event"`
	IDPedido    string    `json:"id_pedido"`
	IDUsuario   int       `json:"id_usuario"`
	Estado      string    `json:"estado"`
	Total       float64   `json:"total"`
	FechaEvento time.Time `json:"fecha_evento"`
}

func newPedidoEvent(event string, p *model.Pedido) pedidoEvent {
	return pedidoEvent{
		Event:       event,
		IDPedido:    p.ID.Hex(),
		IDUsuario:   p.IDUsuario,
		Estado:      p.Estado,
		Total:       p.Total,
		FechaEvento: time.Now().UTC(),
	}
}

func (pub *Publisher) PublishPedidoEvent(ctx context.Context, event string, p *model.Pedido) error {
	body, err := json.Marshal(newPedidoEvent(event, p))
	if err != nil {
		return err
	}

	return pub.ch.PublishWithContext(ctx,
		exchangeName,
		"", // fanout ignora routing key
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
