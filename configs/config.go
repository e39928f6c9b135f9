package configs

import (
	"fmt"
	"os"
)

type Config struct {
	AppPort    string
	CORSOrigin string
	StaticDir  string

	JWTSecret string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisHost string
	RedisPort string

	KafkaBrokerURL string
	KafkaTopic     string
	KafkaGroupID   string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
}

func LoadConfig() *Config {
	return &Config{
		AppPort:    getEnv("ECO3_APP_PORT", ":8080"),
		CORSOrigin: getEnv("ECO3_CORS_ORIGIN", "*"),
		StaticDir:  getEnv("ECO3_STATIC_DIR", "web"),

		JWTSecret: getEnv("ECO3_JWT_SECRET", ""),

		DBHost: getEnv("ECO3_DB_HOST", "localhost"),
		DBPort: getEnv("ECO3_DB_PORT", "5432"),
		DBUser: getEnv("ECO3_DB_USER", "postgres"),
		DBPass: getEnv("ECO3_DB_PASS", "postgres"),
		DBName: getEnv("ECO3_DB_NAME", "eco3_db"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		// empty broker URL disables the activity pipeline
		KafkaBrokerURL: getEnv("KAFKA_BROKER_URL", ""),
		KafkaTopic:     getEnv("KAFKA_TOPIC_ACTIVITY", "eco3.activity"),
		KafkaGroupID:   getEnv("KAFKA_GROUP_ID", "eco3-server"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", "eco3-media"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
