// Package rabbitmq publica los eventos CRUD en un exchange topic durable.
// El relay es fire-and-forget: un broker caído degrada a warn y descarta,
// nunca propaga el fallo a la operación que originó el evento.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/pkg/config"
	"github.com/jhoicas/Stock-api/pkg/logger"
)

var _ events.Publisher = (*Publisher)(nil)

const publishTimeout = 5 * time.Second

// Publisher publica eventos con routing key <app>.<tabla>.<acción>.
type Publisher struct {
	cfg config.AMQPConfig
	log *logger.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher conecta al broker y declara el exchange. Si la conexión
// inicial falla se devuelve el error para que el arranque decida; las caídas
// posteriores se reintentan en cada Publish.
func NewPublisher(cfg config.AMQPConfig, log *logger.Logger) (*Publisher, error) {
	p := &Publisher{cfg: cfg, log: log}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// Publish serializa el evento y lo entrega como mensaje persistente. Los
// fallos se registran y se descartan.
func (p *Publisher) Publish(event events.Event) {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn().Err(err).Str("table", event.Table).Msg("evento no serializable, descartado")
		return
	}
	routingKey := fmt.Sprintf("%s.%s.%s", p.cfg.AppName, event.Table, event.Action)

	if err := p.publish(routingKey, body); err != nil {
		p.log.Warn().Err(err).
			Str("routing_key", routingKey).
			Msg("no se pudo publicar el evento, descartado")
	}
}

// Close cierra canal y conexión.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *Publisher) publish(routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.conn == nil || p.conn.IsClosed() {
		if err := p.reconnectLocked(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	err := p.channel.PublishWithContext(ctx, p.cfg.Exchange, routingKey, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		// Un intento de reconexión por publicación; si también falla, se descarta.
		if rerr := p.reconnectLocked(); rerr != nil {
			return err
		}
		return p.channel.PublishWithContext(ctx, p.cfg.Exchange, routingKey, false, false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now().UTC(),
				Body:         body,
			})
	}
	return nil
}

func (p *Publisher) connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reconnectLocked()
}

// reconnectLocked abre conexión y canal y declara el exchange. Requiere mu.
func (p *Publisher) reconnectLocked() error {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil && !p.conn.IsClosed() {
		_ = p.conn.Close()
	}

	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return fmt.Errorf("conectar a RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("abrir canal: %w", err)
	}
	if err := channel.ExchangeDeclare(p.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return fmt.Errorf("declarar exchange: %w", err)
	}
	p.conn = conn
	p.channel = channel
	return nil
}
