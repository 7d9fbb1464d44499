// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// PaymentReconciliationJob - Runs every five minutes to find orders still
// awaiting payment whose capture already completed at the provider, and
// confirms them through the regular payment command under the payment
// service principal.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(orderRepo, verifier, markOrderPaidHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A provider lookup that finds no completed capture is the expected case
// and is not logged. Failures on a single order are logged and skipped;
// the order is retried on the next sweep.
package jobs
