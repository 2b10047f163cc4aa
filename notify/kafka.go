// Package notify emits events about published articles to Kafka so
// downstream consumers (feeds, social posters, analytics) can react.
package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"courtside/blog"
	"courtside/types"
)

const defaultTopic = "articles.published"

// PublishedEvent is the message body emitted after a successful publish.
type PublishedEvent struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	RemotePath  string    `json:"remote_path"`
	Host        string    `json:"host"`
	PublishedAt time.Time `json:"published_at"`
}

// Producer wraps a synchronous Kafka producer for publish notifications.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducerFromEnv builds a Producer from KAFKA_BOOTSTRAP_SERVERS and
// KAFKA_TOPIC. Returns nil (notifications disabled) when the broker list
// is unset.
func NewProducerFromEnv() (*Producer, error) {
	brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if brokers == "" {
		return nil, nil
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = defaultTopic
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &Producer{producer: producer, topic: topic}, nil
}

// Hook returns a publish hook that emits a PublishedEvent for the record.
// Delivery failures are logged, never propagated: the publish already succeeded.
func (p *Producer) Hook() blog.Hook {
	return func(record types.ArticleRecord, info types.UploadInfo) {
		event := PublishedEvent{
			Slug:        record.Slug,
			Title:       record.Title,
			URL:         record.URL,
			Filename:    info.Filename,
			RemotePath:  info.RemotePath,
			Host:        info.Host,
			PublishedAt: record.PublishedAt,
		}

		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("notify: marshal event for %s: %v", record.Slug, err)
			return
		}

		partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(record.Slug),
			Value: sarama.ByteEncoder(data),
		})
		if err != nil {
			log.Printf("notify: send event for %s: %v", record.Slug, err)
			return
		}
		log.Printf("notify: published event for %s (partition %d, offset %d)", record.Slug, partition, offset)
	}
}

// Close shuts down the underlying producer.
func (p *Producer) Close() error {
	return p.producer.Close()
}
