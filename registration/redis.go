// Package registration hands product registrations off to the external
// harvesting pipeline over a Redis list.
package registration

import (
	"context"
	"encoding/json"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisQueue is a RegistrationService pushing registrations onto a Redis
// list consumed by the registrar. Delivery is fire-and-forget: once the
// push succeeds the registration is the consumer's responsibility.
type RedisQueue struct {
	log    *zap.Logger
	client redis.Cmdable
	queue  string
}

var _ workspace.RegistrationService = (*RedisQueue)(nil)

// NewRedisQueue constructs a registration queue on an existing Redis
// client.
func NewRedisQueue(log *zap.Logger, client redis.Cmdable, queue string) *RedisQueue {
	return &RedisQueue{
		log:    log,
		client: client,
		queue:  queue,
	}
}

// Register enqueues one registration.
func (q *RedisQueue) Register(ctx context.Context, r workspace.Registration) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return &workspace.Error{
			Code: workspace.EInvalid,
			Msg:  "unable to encode registration",
			Err:  err,
		}
	}

	if err := q.client.LPush(ctx, q.queue, payload).Err(); err != nil {
		return &workspace.Error{
			Code: workspace.EUnavailable,
			Msg:  "registration queue unavailable",
			Err:  err,
		}
	}

	q.log.Debug("registration enqueued",
		zap.String("queue", q.queue),
		zap.String("type", r.Type),
		zap.String("url", r.URL))
	return nil
}
