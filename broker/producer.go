package broker

import (
	"log"

	"github.com/nats-io/nats.go"
)

// Publisher abstracts the message bus so services and tests do not need a
// running NATS server.
type Publisher interface {
	Publish(subject string, data []byte) error
	Close()
}

type NatsProducer struct {
	conn *nats.Conn
}

func NewNatsProducer(url string) (*NatsProducer, error) {
	conn, err := nats.Connect(url,
		nats.Name("pagebinder"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS at %s", url)
	return &NatsProducer{conn: conn}, nil
}

func (p *NatsProducer) Publish(subject string, data []byte) error {
	return p.conn.Publish(subject, data)
}

func (p *NatsProducer) Close() {
	if p.conn != nil {
		p.conn.Drain()
	}
}
