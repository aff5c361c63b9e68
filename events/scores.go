package events

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"hackacure-backend/log"
)

type ScoreEvent struct {
	UserID    string
	TeamName  string
	BestScore float64
	At        time.Time
}

type JobEvent struct {
	UserID   string
	TeamName string
	JobID    string
	URL      string
	At       time.Time
}

// PublishScore fans a best-score change out to live scoreboard consumers.
// Best effort: failures are logged, never surfaced to the request.
func PublishScore(event *ScoreEvent) {
	if e == nil {
		return
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	publish(ScoresExchange, "", event)
}

// PublishJob announces a dispatched job under the "job.dispatched" key.
func PublishJob(event *JobEvent) {
	if e == nil {
		return
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	publish(JobsExchange, "job.dispatched", event)
}

func publish(exchange, key string, event interface{}) {
	ch, err := e.Conn.Channel()
	if err != nil {
		log.Logger.Error("queue error", zap.Error(err))
		return
	}
	defer ch.Close()

	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(event); err != nil {
		log.Logger.Error("encode error", zap.Error(err))
		return
	}

	err = ch.Publish(exchange, key, false, false, amqp.Publishing{
		ContentType: "application/x-gob",
		Body:        buf.Bytes(),
	})
	if err != nil {
		log.Logger.Error("queue error", zap.Error(err))
	}
}
