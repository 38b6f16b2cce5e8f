package queue

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartActivityConsumer connects to RabbitMQ, declares the three
// domain-event queues and appends every received message to
// logs/activity.log in a single-line format. It runs a reconnect
// loop with exponential backoff and never returns under normal
// operation; processing errors are logged and the offending message
// rejected so the server keeps running.
func StartActivityConsumer() error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("activity-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("activity-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	queues := []string{OrderPlacedQueue, BillIssuedQueue, TableReservedQueue}
	deliveries := make(chan delivery)
	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare %s: %w", q, err)
		}
		msgs, err := ch.Consume(q, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", q, err)
		}
		go func(queueName string, msgs <-chan amqp.Delivery) {
			for m := range msgs {
				deliveries <- delivery{queue: queueName, msg: m}
			}
		}(q, msgs)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case d := <-deliveries:
			if err := appendActivity(d.queue, d.msg.Body); err != nil {
				log.Printf("activity-consumer: write failed: %v", err)
				_ = d.msg.Nack(false, false)
				continue
			}
			_ = d.msg.Ack(false)
		case err := <-closed:
			return fmt.Errorf("connection closed: %v", err)
		}
	}
}

type delivery struct {
	queue string
	msg   amqp.Delivery
}

// appendActivity writes one line per event to logs/activity.log,
// creating the directory on first use.
func appendActivity(queueName string, body []byte) error {
	dir := "logs"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "activity.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("%s %s %s\n",
		time.Now().UTC().Format(time.RFC3339), queueName, string(body))
	_, err = f.WriteString(line)
	return err
}
