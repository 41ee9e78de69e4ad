package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/cardapiolabs/cardapio/internal/models"
)

// Sink receives a serialized event for every finalized order. It is a
// best-effort record alongside the WhatsApp handoff; failures are logged by
// the caller and never block the order.
type Sink interface {
	WriteMessage(topic string, msg []byte) error
}

type ConsoleSink struct{}

func (c *ConsoleSink) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	if _, err := os.Stdout.Write([]byte(output)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	_ = os.Stdout.Sync()
	return nil
}

type FileSink struct {
	files    map[string]*os.File
	basePath string
}

func NewFileSink(basePath string) *FileSink {
	return &FileSink{
		files:    make(map[string]*os.File),
		basePath: basePath,
	}
}

func (f *FileSink) WriteMessage(topic string, msg []byte) error {
	if _, ok := f.files[topic]; !ok {
		filename := fmt.Sprintf("%s/%s.jsonl", f.basePath, topic)
		file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open file for topic %s: %w", topic, err)
		}
		f.files[topic] = file
	}
	if _, err := f.files[topic].Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	return nil
}

func (f *FileSink) Close() error {
	for _, file := range f.files {
		_ = file.Close()
	}
	return nil
}

type KafkaSink struct {
	producer sarama.SyncProducer
}

func (k *KafkaSink) WriteMessage(topic string, msg []byte) error {
	if k.producer == nil {
		return fmt.Errorf("Kafka producer is closed")
	}
	_, _, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	})
	return err
}

func (k *KafkaSink) Close() error {
	return k.producer.Close()
}

func createKafkaProducer(brokerList []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Net.DialTimeout = 30 * time.Second
	config.Net.ReadTimeout = 30 * time.Second
	config.Net.WriteTimeout = 30 * time.Second

	producer, err := sarama.NewSyncProducer(brokerList, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

// ForConfig selects the sink for the configured order log output. Console is
// the default.
func ForConfig(cfg models.OrderLogConfig) (Sink, error) {
	switch cfg.Output {
	case "kafka":
		producer, err := createKafkaProducer(strings.Split(cfg.BrokerList, ","))
		if err != nil {
			return nil, err
		}
		return &KafkaSink{producer: producer}, nil
	case "file":
		return NewFileSink(cfg.FilePath), nil
	default:
		return &ConsoleSink{}, nil
	}
}

// PublishOrder serializes the order record and writes it to the sink.
func PublishOrder(sink Sink, topic string, order models.OrderRecord) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to serialize order: %w", err)
	}
	return sink.WriteMessage(topic, data)
}
