package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"nearhelp/internal/domain"
	"nearhelp/pkg/e"

	"github.com/redis/go-redis/v9"
)

// MailQueue is a simple LPUSH/BRPOP work queue for outbound alert email.
type MailQueue struct {
	client *redis.Client
	key    string
}

func NewMailQueue(client *redis.Client, key string) *MailQueue {
	return &MailQueue{client: client, key: key}
}

func (q *MailQueue) Enqueue(ctx context.Context, job domain.AlertJob) error {
	b, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *MailQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.AlertJob, error) {
	var job domain.AlertJob

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return job, e.ErrQueueEmpty
		}
		return job, err
	}
	if len(res) < 2 {
		return job, redis.Nil
	}
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return job, err
	}
	return job, nil
}
