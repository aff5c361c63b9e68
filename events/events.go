package events

import (
	"os"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"hackacure-backend/log"
)

const (
	ScoresExchange = "scores"
	JobsExchange   = "jobs"
)

type Events struct {
	Conn *amqp.Connection

	lock sync.Mutex
}

var e *Events

// EnsureEvents connects to RabbitMQ and declares the exchanges. Publishing
// is optional: when RABBITMQ_CONNSTRING is unset the publishers no-op, so
// the API keeps working without a broker.
func EnsureEvents() {
	if e != nil {
		return
	}

	s, ok := os.LookupEnv("RABBITMQ_CONNSTRING")
	if !ok || s == "" {
		log.Logger.Info("RABBITMQ_CONNSTRING not set, event publishing disabled")
		return
	}

	log.Logger.Info("Trying to connect to rabbitmq...")

	var conn *amqp.Connection
	t := time.Second
	for i := 0; i < 6; i++ {
		var err error
		conn, err = amqp.Dial(s)
		if err != nil {
			if i == 5 {
				panic(err)
			}
			time.Sleep(t)
			t *= 2

			continue
		}

		break
	}
	log.Logger.Info("Connected to rabbitmq")

	ch, err := conn.Channel()
	if err != nil {
		panic(err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		ScoresExchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic(err)
	}

	err = ch.ExchangeDeclare(
		JobsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic(err)
	}

	e = &Events{
		Conn: conn,
	}
}
