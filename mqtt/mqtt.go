// Package mqtt broadcasts input events to an MQTT broker as JSON, so
// host-side tooling can observe the controller without being on the
// MIDI path. Publishing is best-effort and fire-and-forget; a broker
// outage never stalls the poll loop.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"knobd/event"
)

// Config holds MQTT connection settings.
type Config struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	TopicPrefix string `yaml:"topic_prefix"` // default "knobd"
	CACert      string `yaml:"ca_cert"`
	ClientCert  string `yaml:"client_cert"`
	ClientKey   string `yaml:"client_key"`
}

// Client wraps a publish-only paho client. A Client built from an
// empty host is disabled and publishes nothing.
type Client struct {
	client  paho.Client
	prefix  string
	enabled bool
	log     *zap.Logger
}

// envelope is the wire form of an event: a type discriminator plus the
// kind-specific payload.
type envelope struct {
	Type  string  `json:"type"`
	ID    uint8   `json:"id"`
	Value float64 `json:"value,omitempty"`
	Delta int     `json:"delta,omitempty"`
}

// New creates a new MQTT client. Returns a disabled no-op client if no
// host is configured.
func New(cfg Config, clientID string, log *zap.Logger) (*Client, error) {
	prefix := cfg.TopicPrefix
	if prefix == "" {
		prefix = "knobd"
	}
	c := &Client{prefix: prefix, log: log}

	if cfg.Host == "" {
		log.Info("mqtt disabled (no host configured)")
		return c, nil
	}
	c.enabled = true

	var broker string
	var tlsConfig *tls.Config
	if cfg.CACert != "" || cfg.ClientCert != "" {
		broker = fmt.Sprintf("ssl://%s:%d", cfg.Host, cfg.Port)
		var err error
		tlsConfig, err = buildTLSConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("build TLS config: %w", err)
		}
	} else {
		if cfg.Port == 0 {
			cfg.Port = 1883
		}
		broker = fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetKeepAlive(60 * time.Second).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Warn("mqtt connection lost", zap.Error(err))
		}).
		SetOnConnectHandler(func(paho.Client) {
			log.Info("mqtt connected", zap.String("broker", broker))
		})
	if tlsConfig != nil {
		opts.SetTLSConfig(tlsConfig)
	}

	c.client = paho.NewClient(opts)
	return c, nil
}

func buildTLSConfig(cfg Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{}

	if cfg.CACert != "" {
		caCert, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("read CA cert: %w", err)
		}
		caPool := x509.NewCertPool()
		caPool.AppendCertsFromPEM(caCert)
		tlsConfig.RootCAs = caPool
	}
	if cfg.ClientCert != "" && cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	return tlsConfig, nil
}

// Connect connects to the broker. A disabled client succeeds
// immediately.
func (c *Client) Connect() error {
	if !c.enabled {
		return nil
	}
	token := c.client.Connect()
	token.Wait()
	return token.Error()
}

// PublishEvent publishes one input event to
// <prefix>/encoder/<id>/turn or <prefix>/button/<id>/<gesture>.
// Delivery is QoS 0 and not waited on.
func (c *Client) PublishEvent(ev event.Event) {
	if !c.enabled {
		return
	}

	device := "button"
	if ev.Kind == event.EncoderTurn {
		device = "encoder"
	}
	topic := fmt.Sprintf("%s/%s/%d/%s", c.prefix, device, ev.ID, ev.Kind)

	payload, err := json.Marshal(envelope{
		Type:  ev.Kind.String(),
		ID:    ev.ID,
		Value: ev.Value,
		Delta: ev.Delta,
	})
	if err != nil {
		c.log.Error("marshal event", zap.Error(err))
		return
	}
	c.client.Publish(topic, 0, false, payload)
}

// Disconnect disconnects from the broker.
func (c *Client) Disconnect() {
	if !c.enabled {
		return
	}
	c.client.Disconnect(250)
}
