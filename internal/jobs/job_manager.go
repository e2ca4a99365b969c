package jobs

import (
	"fmt"
	"log/slog"

	"warehouse/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	artifactCleanupJob *ArtifactCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	shipments ports.ShipmentRepository,
	storageDir string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		artifactCleanupJob: NewArtifactCleanupJob(shipments, storageDir, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.artifactCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start artifact cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.artifactCleanupJob.Stop()
}
