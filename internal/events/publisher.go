package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TypeReviewCreated is the event type emitted after a review is stored.
const TypeReviewCreated = "review_created"

// ReviewCreated is the payload published for every new review.
type ReviewCreated struct {
	Type      string    `json:"type"`
	ReviewID  uint      `json:"review_id"`
	MovieID   string    `json:"movie_id"`
	UserID    uint      `json:"user_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher emits domain events. Publishing never blocks on broker round-trips.
type Publisher interface {
	PublishReviewCreated(ctx context.Context, event ReviewCreated) error
	Close() error
}

// New returns a kafka publisher, or a no-op publisher when no brokers are configured.
func New(brokers []string, topic string, log *zap.Logger) Publisher {
	if len(brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic, log)
}

// KafkaPublisher writes events to a single topic, keyed by movie id.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher creates an asynchronous writer. Delivery failures are logged.
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	p := &KafkaPublisher{log: log}
	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		Completion:             p.completion,
	}
	return p
}

func (p *KafkaPublisher) completion(messages []kafka.Message, err error) {
	if err != nil {
		p.log.Warn("kafka delivery failed",
			zap.String("topic", p.writer.Topic),
			zap.Int("messages", len(messages)),
			zap.Error(err),
		)
	}
}

// PublishReviewCreated enqueues the event. With an async writer the error only
// reports encoding failures or a closed writer.
func (p *KafkaPublisher) PublishReviewCreated(ctx context.Context, event ReviewCreated) error {
	msg, err := reviewCreatedMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func reviewCreatedMessage(event ReviewCreated) (kafka.Message, error) {
	event.Type = TypeReviewCreated
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.MovieID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(TypeReviewCreated)},
			{Key: "review_id", Value: []byte(strconv.FormatUint(uint64(event.ReviewID), 10))},
		},
	}, nil
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishReviewCreated(context.Context, ReviewCreated) error { return nil }

func (NoopPublisher) Close() error { return nil }
