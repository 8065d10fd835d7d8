package portwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/allbin/portwatch/internal/logger"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

// DefaultMQTTTopic is where notifications are published unless configured.
const DefaultMQTTTopic = "portwatch/notifications"

// MQTTConfig configures an MQTTNotifier.
type MQTTConfig struct {
	Broker         string // e.g. tcp://localhost:1883
	Topic          string
	ClientID       string
	QoS            byte
	ConnectTimeout time.Duration
}

// publisher is the slice of mqtt.Client the notifier needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTNotifier publishes notifications as JSON to an MQTT broker.
type MQTTNotifier struct {
	client publisher
	topic  string
	qos    byte
	log    zerolog.Logger
}

// NewMQTTNotifier connects to the broker and returns a notifier publishing
// to cfg.Topic.
func NewMQTTNotifier(cfg MQTTConfig, log zerolog.Logger) (*MQTTNotifier, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("%w: mqtt broker not set", ErrInvalidConfig)
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultMQTTTopic
	}
	if cfg.ClientID == "" {
		cfg.ClientID = fmt.Sprintf("portwatch-%d", time.Now().Unix())
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	log = logger.WithComponent(log, "mqtt").With().Str("broker", cfg.Broker).Logger()

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetConnectTimeout(cfg.ConnectTimeout)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("connection lost, reconnecting")
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, fmt.Errorf("connect to %s: timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}

	log.Info().Str("topic", cfg.Topic).Msg("connected")

	return newMQTTNotifier(client, cfg.Topic, cfg.QoS, log), nil
}

func newMQTTNotifier(client publisher, topic string, qos byte, log zerolog.Logger) *MQTTNotifier {
	return &MQTTNotifier{client: client, topic: topic, qos: qos, log: log}
}

func (n *MQTTNotifier) Notify(ctx context.Context, note Notification) error {
	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(note)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	token := n.client.Publish(n.topic, n.qos, false, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish to %s: %w", n.topic, err)
		}
		n.log.Debug().Strs("ports", note.Ports).Msg("notification published")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects from the broker, waiting up to 250ms for in-flight work.
func (n *MQTTNotifier) Close() {
	if c, ok := n.client.(mqtt.Client); ok {
		c.Disconnect(250)
	}
}
