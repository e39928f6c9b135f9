package kafka

import (
	"context"
	"log"
	"strings"
	"time"

	k "github.com/segmentio/kafka-go"
)

type Handler func(ctx context.Context, topic string, key, value []byte) error

type Consumer struct {
	reader *k.Reader
	handle Handler
}

func NewConsumer(brokers, groupID, topic string, h Handler) *Consumer {
	return &Consumer{
		reader: k.NewReader(k.ReaderConfig{
			Brokers:        strings.Split(brokers, ","),
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       10 << 20,
			StartOffset:    k.FirstOffset,
			CommitInterval: time.Second,
		}),
		handle: h,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		_ = c.reader.Close()
	}()

	log.Printf("[kafka] consumer started | group=%s | topic=%s",
		c.reader.Config().GroupID, c.reader.Config().Topic)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("[kafka] consumer shutting down")
				return nil
			}
			log.Printf("[kafka] fetch error: %v", err)
			time.Sleep(time.Second)
			continue
		}

		if c.handle != nil {
			if e := c.handle(ctx, m.Topic, m.Key, m.Value); e != nil {
				log.Printf("[kafka] handler error: %v", e)
			}
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			log.Printf("[kafka] commit error: %v", err)
		}
	}
}
