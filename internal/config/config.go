// config.go
package config

import "os"

type Config struct {
	Port        string
	MongoURI    string
	MongoDBName string
	UsersURL    string
	ProductsURL string
	CORSOrigin  string
	RabbitURL   string // vacío = eventos deshabilitados
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3003"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "pedidos_db"),
		UsersURL:    getEnv("USERS_SERVICE_URL", "http://localhost:3001"),
		ProductsURL: getEnv("PRODUCTS_SERVICE_URL", "http://localhost:3002"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		RabbitURL:   getEnv("RABBIT_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
