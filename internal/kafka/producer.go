//go:generate mockgen -source ./producer.go -destination=./mocks/producer.go -package=mock_kafka
package kafka

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer interface {
	SendMessage(ctx context.Context, key []byte, value []byte) error
	Close() error
}

type WriterProducer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewWriterProducer(brokers []string, topic string, logger *zap.Logger) *WriterProducer {
	logger.Info("initialized Kafka producer",
		zap.Strings("brokers", brokers),
		zap.String("topic", topic))

	return &WriterProducer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		logger: logger,
	}
}

func (p *WriterProducer) SendMessage(ctx context.Context, key []byte, value []byte) error {
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   key,
		Value: value,
	})
}

func (p *WriterProducer) Close() error {
	p.logger.Info("closing Kafka producer")
	return p.writer.Close()
}

// ConsoleProducer stands in when no brokers are configured.
type ConsoleProducer struct {
	logger *zap.Logger
}

func NewConsoleProducer(logger *zap.Logger) *ConsoleProducer {
	logger.Info("initialized console producer, Kafka disabled")
	return &ConsoleProducer{logger: logger}
}

func (p *ConsoleProducer) SendMessage(ctx context.Context, key []byte, value []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p.logger.Info("audit message",
		zap.ByteString("key", key),
		zap.ByteString("value", value))
	return nil
}

func (p *ConsoleProducer) Close() error {
	return nil
}
