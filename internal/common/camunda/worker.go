package camunda

import (
	"time"

	"retention-workers/internal/common/config"
	"retention-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every worker under internal/workers.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Registry keeps the opened job workers so they can be closed on shutdown.
type Registry struct {
	client  zbc.Client
	log     logger.Logger
	workers map[string]worker.JobWorker
}

func NewRegistry(client zbc.Client, log logger.Logger) *Registry {
	return &Registry{
		client:  client,
		log:     log.WithFields(map[string]interface{}{"component": "worker-registry"}),
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for taskType unless the worker config disables it.
func (r *Registry) Start(taskType string, wcfg config.WorkerConfig, handler JobHandler) {
	if !wcfg.Enabled {
		r.log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return
	}

	r.workers[taskType] = r.client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Name(taskType).
		Open()

	r.log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
}

func (r *Registry) TaskTypes() []string {
	out := make([]string, 0, len(r.workers))
	for t := range r.workers {
		out = append(out, t)
	}
	return out
}

func (r *Registry) Close() {
	for taskType, w := range r.workers {
		w.Close()
		w.AwaitClose()
		r.log.Info("worker stopped", map[string]interface{}{"taskType": taskType})
	}
}
