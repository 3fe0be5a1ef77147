package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicOrders  = "storefront.orders"
	TopicReviews = "storefront.reviews"
)

type KafkaProducer struct {
	brokers []string
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
	}
}

func (kp *KafkaProducer) GetWriter(topic string) *kafka.Writer {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	if writer, exists := kp.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(kp.brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	kp.writers[topic] = writer
	return writer
}

// Publish writes value as JSON to topic. Messages with the same key land on
// the same partition.
func (kp *KafkaProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: jsonData,
		Time:  time.Now(),
	}

	return kp.GetWriter(topic).WriteMessages(ctx, message)
}

func (kp *KafkaProducer) Close() {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	for _, writer := range kp.writers {
		writer.Close()
	}
}

// Event types for async processing
const (
	EventOrderCreated   = "order.created"
	EventOrderCancelled = "order.cancelled"
	EventReviewCreated  = "review.created"
)

type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	UserEmail string    `json:"user_email"`
	Total     float64   `json:"total"`
	Items     int       `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

type ReviewEvent struct {
	Type      string    `json:"type"`
	ReviewID  string    `json:"review_id"`
	ProductID string    `json:"product_id"`
	UserEmail string    `json:"user_email"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
