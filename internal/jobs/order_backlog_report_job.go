package jobs

import (
	"context"
	"log/slog"

	"momoadmin/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultBacklogReportSchedule runs the report at the start of every minute.
const DefaultBacklogReportSchedule = "0 * * * * *"

// OrderBacklogReportJob periodically logs how many orders wait in each
// non-terminal status.
type OrderBacklogReportJob struct {
	handler  queries.GetOrderBacklogQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderBacklogReportJob creates the job. schedule is a six-field cron
// expression (with seconds); empty means DefaultBacklogReportSchedule.
func NewOrderBacklogReportJob(
	handler queries.GetOrderBacklogQueryHandler,
	schedule string,
	logger *slog.Logger,
) *OrderBacklogReportJob {
	if schedule == "" {
		schedule = DefaultBacklogReportSchedule
	}
	return &OrderBacklogReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_backlog_report_job"),
	}
}

// Start registers the report on its schedule and starts the scheduler.
func (j *OrderBacklogReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order backlog report job started", "schedule", j.schedule)
	return nil
}

// Run produces one report.
func (j *OrderBacklogReportJob) Run(ctx context.Context) {
	backlog, err := j.handler.Handle(ctx, queries.NewGetOrderBacklogQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order backlog report failed", "error", err)
		return
	}

	attrs := make([]any, 0, 2*len(backlog)+2)
	open := 0
	for _, entry := range backlog {
		attrs = append(attrs, entry.Status.String(), entry.Count)
		open += entry.Count
	}
	attrs = append(attrs, "open", open)

	j.logger.InfoContext(ctx, "Order backlog", attrs...)
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *OrderBacklogReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order backlog report job stopped")
}
