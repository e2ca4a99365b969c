// Package jobs provides scheduled background tasks for the shipment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the request path does not cover.
//
// # Available Jobs
//
// 1. ArtifactCleanupJob - Runs hourly to remove delivery note files no
// shipment references anymore (stale regenerations, deleted shipments)
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(shipmentRepository, storageDir, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed cleanup run is logged and retried on the next tick
// - Individual file removal failures are logged and skipped
package jobs
