package messaging

import (
	"fmt"
	"log"

	"hims-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
)

// NewRabbitMQ carries the department notification events. The sink itself is
// best-effort at runtime, but a broker that is unreachable at boot is a
// deployment fault and stops startup.
func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	amqpURL := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)

	conn, err := amqp091.Dial(amqpURL)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ: %s", err.Error())
	}
	log.Println("Successfully connected to rabbitMQ")
	return conn
}
