package task

import (
	"context"
	"time"

	qport "github.com/1mmey/SecurityChat/internal/infrastructure/queue/port"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
)

// SweepTaskType is the queue task name for a presence reconciliation pass.
const SweepTaskType = "presence:sweep"

// RegisterSweepTask binds the sweep handler to the worker server and puts
// it on the scheduler at the given interval. Running the sweep through the
// queue keeps it single-flight across replicas sharing one broker.
func RegisterSweepTask(srv qport.Server, sched qport.Scheduler, rec *presence.Reconciler, every time.Duration) error {
	srv.Register(SweepTaskType, func(ctx context.Context, _ qport.Task) error {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		_, err := rec.Sweep(ctx)
		return err
	})
	return sched.Periodic(every, qport.Task{Type: SweepTaskType})
}
