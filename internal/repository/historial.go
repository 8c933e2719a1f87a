package repository

import (
	"context"

	"pedidos-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoHistorialRepository struct {
	col *mongo.Collection
}

func NewMongoHistorialRepository(db *mongo.Database) *MongoHistorialRepository {
	return &MongoHistorialRepository{col: db.Collection("historial_pedidos")}
}

func (m *MongoHistorialRepository) Insert(ctx context.Context, h *model.HistorialPedido) error {
	res, err := m.col.InsertOne(ctx, h)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		h.ID = oid
	}
	return nil
}

// FindByUser devuelve el historial de un usuario ordenado por fecha de evento.
func (m *MongoHistorialRepository) FindByUser(ctx context.Context, idUsuario int, estado string) ([]*model.HistorialPedido, error) {
	filter := bson.M{"id_usuario": idUsuario}
	if estado != "" {
		filter["estado"] = estado
	}

	opts := options.Find().SetSort(bson.D{{Key: "fecha_evento", Value: 1}})
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.HistorialPedido
	for cur.Next(ctx) {
		var v model.HistorialPedido
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}
