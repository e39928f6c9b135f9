package events

import (
	"context"
	"encoding/json"
	"strconv"

	"eco3/pkg/kafka"
)

type kafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) Publisher {
	return &kafkaPublisher{w: w}
}

func (p *kafkaPublisher) PublishActivity(ctx context.Context, a Activity) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return p.w.Publish(ctx, strconv.FormatUint(uint64(a.UserID), 10), b)
}
