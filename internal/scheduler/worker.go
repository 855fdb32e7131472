package scheduler

import (
	"context"
	"fmt"

	analysisservice "truthscope_backend/internal/analysis/service"
	verdictsservice "truthscope_backend/internal/verdicts/service"
	"truthscope_backend/platform/config"
	"truthscope_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes maintenance tasks from the queue.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	analysis *analysisservice.Service
	verdicts *verdictsservice.Service
	log      *logger.Logger
}

// NewWorker creates the asynq worker and registers the task handlers.
func NewWorker(cfg config.SchedulerConfig, analysis *analysisservice.Service, verdicts *verdictsservice.Service, log *logger.Logger) (*Worker, error) {
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

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		analysis: analysis,
		verdicts: verdicts,
		log:      log,
	}

	mux.HandleFunc(TaskAnalysisRefresh, w.handleAnalysisRefresh)
	mux.HandleFunc(TaskVerdictSeed, w.handleVerdictSeed)

	return w, nil
}

// Run serves tasks until the context is canceled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleAnalysisRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAnalysisRefreshPayload(task)
	if err != nil {
		return err
	}
	if payload.URL == "" {
		return nil
	}

	if err := w.analysis.Refresh(ctx, payload.URL); err != nil {
		w.log.UpstreamError("analysis", "refresh", err)
		return err
	}

	w.log.Info("analysis cache refreshed", "url", payload.URL)
	return nil
}

func (w *Worker) handleVerdictSeed(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseVerdictSeedPayload(task)
	if err != nil {
		return err
	}
	if payload.Path == "" {
		return nil
	}

	result, err := w.verdicts.SeedFromFile(ctx, payload.Path)
	if err != nil {
		return err
	}

	w.log.Info("verdict seed applied", "path", payload.Path,
		"written", result.Written, "skipped", result.Skipped)
	return nil
}
