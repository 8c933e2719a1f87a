package repository

import (
	"context"
	"errors"

	"pedidos-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("pedido no encontrado")

// Mongo implementation
type MongoPedidoRepository struct {
	col *mongo.Collection
}

func NewMongoPedidoRepository(db *mongo.Database) *MongoPedidoRepository {
	return &MongoPedidoRepository{col: db.Collection("pedidos")}
}

func (m *MongoPedidoRepository) Insert(ctx context.Context, p *model.Pedido) error {
	res, err := m.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (m *MongoPedidoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Pedido, error) {
	var res model.Pedido
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// FindByUser devuelve los pedidos de un usuario; estado vacío = sin filtro.
func (m *MongoPedidoRepository) FindByUser(ctx context.Context, idUsuario int, estado string) ([]*model.Pedido, error) {
	filter := bson.M{"id_usuario": idUsuario}
	if estado != "" {
		filter["estado"] = estado
	}

	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Pedido
	for cur.Next(ctx) {
		var v model.Pedido
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func (m *MongoPedidoRepository) UpdateEstado(ctx context.Context, id primitive.ObjectID, estado string) error {
	res, err := m.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"estado": estado}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateDetalles actualiza productos y/o total; los campos nil se dejan como están.
func (m *MongoPedidoRepository) UpdateDetalles(ctx context.Context, id primitive.ObjectID, productos []model.Producto, total *float64) error {
	set := bson.M{}
	if productos != nil {
		set["productos"] = productos
	}
	if total != nil {
		set["total"] = *total
	}
	if len(set) == 0 {
		return nil
	}

	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
