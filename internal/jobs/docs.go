// Package jobs provides scheduled background tasks for the order admin service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrderBacklogReportJob - logs the number of orders per non-terminal status
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(backlogHandler, config.BacklogReportSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six-field cron expressions with a leading seconds field.
// The backlog report defaults to "0 * * * * *" (once a minute).
//
// # Error Handling
//
// A failed report is logged and the next run proceeds as scheduled.
// Jobs only read orders; they never change an order's status.
package jobs
