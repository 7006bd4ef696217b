package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const relayPrefix = "matchday:events:"

type relayEnvelope struct {
	Origin string          `json:"origin"`
	Event  json.RawMessage `json:"event"`
}

// RedisRelay fans game events out across instances over Redis pub/sub.
// Messages carry the publishing instance's origin so they are not
// delivered twice locally.
type RedisRelay struct {
	rdb    *redis.Client
	broker *Broker
	origin string
	logger *slog.Logger
}

// NewRedisRelay attaches a relay to broker. Call Run to start receiving.
func NewRedisRelay(rdb *redis.Client, broker *Broker, logger *slog.Logger) *RedisRelay {
	r := &RedisRelay{
		rdb:    rdb,
		broker: broker,
		origin: uuid.NewString(),
		logger: logger,
	}
	broker.SetRelay(r)
	return r
}

func (r *RedisRelay) Publish(ctx context.Context, slot string, data []byte) error {
	msg, err := json.Marshal(relayEnvelope{Origin: r.origin, Event: data})
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, relayPrefix+slot, msg).Err()
}

// Run forwards events from other instances to local subscribers until ctx
// is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.rdb.PSubscribe(ctx, relayPrefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to %s*: %w", relayPrefix, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.receive(msg.Channel, msg.Payload)
		}
	}
}

func (r *RedisRelay) receive(channel, payload string) {
	var env relayEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.logger.Warn("dropping malformed relay message", "channel", channel, "error", err)
		return
	}
	if env.Origin == r.origin {
		return
	}
	r.broker.deliver(strings.TrimPrefix(channel, relayPrefix), env.Event)
}
