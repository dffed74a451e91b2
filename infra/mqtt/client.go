package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/tallerix/scheduling/core/model"
	"github.com/tallerix/scheduling/infra/logger"
)

// Config holds the MQTT connection and topic settings.
type Config struct {
	Broker         string `json:"broker"`
	ClientID       string `json:"client_id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	OrdersTopic    string `json:"orders_topic"`
	EstimatesTopic string `json:"estimates_topic"`
	QoS            byte   `json:"qos"`
	UseTLS         bool   `json:"use_tls"`
	ClientCert     string `json:"client_cert"`
	ClientKey      string `json:"client_key"`
	CABundle       string `json:"ca_bundle"`
	MaxRetries     int    `json:"max_retries"`
	BackoffMS      int    `json:"backoff_ms"`

	TLSConfig *tls.Config `json:"-"`
}

// SetDefaults applies sane defaults for the scheduling topics.
func (c *Config) SetDefaults() {
	if c.OrdersTopic == "" {
		c.OrdersTopic = "taller/orders/+/items"
	}
	if c.EstimatesTopic == "" {
		c.EstimatesTopic = "taller/estimates"
	}
	if c.ClientID == "" {
		c.ClientID = "delivery-scheduler"
	}
}

// OrderEvent is the payload published whenever an order's items, technician
// or support set changes. Receiving one triggers a recalculation.
type OrderEvent struct {
	OrderID      string                    `json:"order_id"`
	TechnicianID string                    `json:"technician_id"`
	Items        []model.OrderItem         `json:"items"`
	Support      []model.SupportTechnician `json:"support,omitempty"`
	CreatedAt    time.Time                 `json:"created_at"`
}

// Handler consumes decoded order events.
type Handler func(OrderEvent)

// EstimatePublisher publishes computed estimates for downstream consumers.
type EstimatePublisher interface {
	PublishEstimate(orderID string, est model.DeliveryEstimate) error
}

// pahoClient narrows the paho API for test injection.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoClient subscribes to order-change events and publishes estimates
// using Eclipse Paho.
type PahoClient struct {
	cli        pahoClient
	cfg        Config
	handler    Handler
	logger     logger.Logger
	maxRetries int
	backoff    time.Duration
}

// NewPahoClient connects to the broker and subscribes to the orders topic.
// The handler is invoked for every decoded order event.
func NewPahoClient(cfg Config, handler Handler) (*PahoClient, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt_client")
	pc := &PahoClient{
		cfg:        cfg,
		handler:    handler,
		logger:     log,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
	}

	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		if pc.handler == nil {
			return
		}
		if token := c.Subscribe(cfg.OrdersTopic, cfg.QoS, pc.onOrder); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	pc.cli = c
	return pc, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

func (p *PahoClient) onOrder(_ paho.Client, msg paho.Message) {
	var ev OrderEvent
	if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
		p.logger.Errorf("failed to decode order event: %v", err)
		return
	}
	if ev.OrderID == "" {
		p.logger.Warnf("order event without order_id on %s", msg.Topic())
		return
	}
	p.handler(ev)
}

// PublishEstimate publishes the estimate on the per-order estimates topic,
// retrying with backoff when the broker rejects the publish.
func (p *PahoClient) PublishEstimate(orderID string, est model.DeliveryEstimate) error {
	payload, err := json.Marshal(struct {
		OrderID string `json:"order_id"`
		model.DeliveryEstimate
		DeliveryDate string `json:"delivery_date"`
		DeliveryTime string `json:"delivery_time"`
	}{
		OrderID:          orderID,
		DeliveryEstimate: est,
		DeliveryDate:     est.DeliveryDate(),
		DeliveryTime:     est.DeliveryTime(),
	})
	if err != nil {
		return err
	}

	topic := fmt.Sprintf("%s/%s", p.cfg.EstimatesTopic, orderID)
	attempts := p.maxRetries + 1
	var lastErr error
	for i := 0; i < attempts; i++ {
		token := p.cli.Publish(topic, p.cfg.QoS, false, payload)
		if token.Wait() && token.Error() == nil {
			return nil
		}
		lastErr = token.Error()
		if p.backoff > 0 && i < attempts-1 {
			time.Sleep(p.backoff)
		}
	}
	return fmt.Errorf("publish estimate for %s: %w", orderID, lastErr)
}

// Close disconnects from the broker.
func (p *PahoClient) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
