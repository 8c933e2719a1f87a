package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pedidos-service/internal/config"
	"pedidos-service/internal/controller"
	"pedidos-service/internal/middleware"
	"pedidos-service/internal/rabbit"
	"pedidos-service/internal/repository"
	"pedidos-service/internal/service"
)

func main() {
	cfg := config.Load()
	log := logrus.New()

	// Conexión a MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.MongoDBName)

	// Repositorios, validadores y servicios
	pedidoRepo := repository.NewMongoPedidoRepository(db)
	historialRepo := repository.NewMongoHistorialRepository(db)
	validator := service.NewValidatorService(cfg.UsersURL, cfg.ProductsURL)

	// Publisher de eventos: opcional, sólo si hay RabbitMQ configurado
	var events service.EventPublisher
	if cfg.RabbitURL != "" {
		conn, err := amqp091.Dial(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("Error conectando a RabbitMQ: %v", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			log.Fatalf("Error creando canal en RabbitMQ: %v", err)
		}
		pub, err := rabbit.NewPublisher(ch)
		if err != nil {
			log.Fatalf("Error declarando exchange en RabbitMQ: %v", err)
		}
		events = pub
	}

	pedidoService := service.NewPedidoService(pedidoRepo, historialRepo, validator, events, log)
	historialService := service.NewHistorialService(historialRepo, pedidoRepo, log)

	// Handlers
	pedidoCtrl := controller.NewPedidoController(pedidoService)
	historialCtrl := controller.NewHistorialController(historialService)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	corsCfg := cors.DefaultConfig()
	if cfg.CORSOrigin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSOrigin}
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", controller.Health)

	// Rutas de pedidos
	r.POST("/pedidos", pedidoCtrl.CreatePedido)
	r.GET("/pedidos/user/:id_usuario", pedidoCtrl.GetPedidosByUser)
	r.GET("/pedidos/:id_pedido", pedidoCtrl.GetPedidoByID)
	r.PUT("/pedidos/:id_pedido/estado", pedidoCtrl.UpdateEstado)
	r.PUT("/pedidos/:id_pedido", pedidoCtrl.UpdatePedido)
	r.DELETE("/pedidos/:id_pedido", pedidoCtrl.CancelPedido)

	// Rutas de historial
	r.GET("/historial/:id_usuario", historialCtrl.GetHistorialByUser)
	r.POST("/pedidos/:id_pedido/historial", historialCtrl.RegistrarHistorial)

	// Ejecutar servidor
	log.Printf("Pedidos Service ejecutándose en puerto %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
