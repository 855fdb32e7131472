// Package scheduler provides asynq task definitions, the enqueue client, and
// the background worker for maintenance jobs.
package scheduler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"truthscope_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues maintenance tasks.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates the asynq enqueue client from the Redis configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleAnalysisRefresh enqueues a background re-analysis of a URL. The
// task is deduplicated per URL so a burst of stale hits queues one refresh.
func (c *Client) ScheduleAnalysisRefresh(ctx context.Context, url string) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewAnalysisRefreshTask(AnalysisRefreshPayload{URL: url})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.TaskID("analysis:refresh:"+url),
	)
	if err != nil && !isDuplicateTask(err) {
		return err
	}
	return nil
}

// EnqueueVerdictSeed enqueues a bulk load of the YAML verdict list at path.
func (c *Client) EnqueueVerdictSeed(ctx context.Context, path string) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewVerdictSeedTask(VerdictSeedPayload{Path: path})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

func isDuplicateTask(err error) bool {
	return errors.Is(err, asynq.ErrTaskIDConflict)
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
