package jobs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"warehouse/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// artifactGracePeriod protects files written by an in-flight transaction:
// the artifact hits disk before the shipment row that references it commits,
// so a freshly written file may look unreferenced to the scan.
const artifactGracePeriod = 10 * time.Minute

// ArtifactCleanupJob removes delivery note files that no shipment references
// anymore. Regeneration writes a fresh timestamped file and repoints the
// shipment, and deleting a shipment leaves its file behind, so orphans
// accumulate in the storage directory until this job collects them.
type ArtifactCleanupJob struct {
	shipments  ports.ShipmentRepository
	storageDir string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewArtifactCleanupJob creates a cleanup job over the given storage directory.
func NewArtifactCleanupJob(
	shipments ports.ShipmentRepository,
	storageDir string,
	logger *slog.Logger,
) *ArtifactCleanupJob {
	return &ArtifactCleanupJob{
		shipments:  shipments,
		storageDir: storageDir,
		cron:       cron.New(),
		logger:     logger.With("component", "artifact_cleanup_job"),
	}
}

// Start begins the cleanup job, running at the top of every hour.
func (j *ArtifactCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()
		if err := j.runOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Artifact cleanup job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Artifact cleanup job started (running hourly)")
	return nil
}

// Stop stops the cleanup job.
func (j *ArtifactCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Artifact cleanup job stopped")
}

// runOnce removes every file in the storage directory that no shipment
// references. A missing storage directory is not an error: nothing has been
// generated yet.
func (j *ArtifactCleanupJob) runOnce(ctx context.Context) error {
	referenced, err := j.shipments.FindDocumentPaths(ctx)
	if err != nil {
		return err
	}

	keep := make(map[string]struct{}, len(referenced))
	for _, path := range referenced {
		keep[filepath.Clean(path)] = struct{}{}
	}

	entries, err := os.ReadDir(j.storageDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Clean(filepath.Join(j.storageDir, entry.Name()))
		if _, ok := keep[path]; ok {
			continue
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			j.logger.WarnContext(ctx, "Failed to stat artifact",
				"path", path, "error", infoErr)
			continue
		}
		if time.Since(info.ModTime()) < artifactGracePeriod {
			continue
		}

		if removeErr := os.Remove(path); removeErr != nil {
			j.logger.WarnContext(ctx, "Failed to remove orphaned artifact",
				"path", path, "error", removeErr)
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.InfoContext(ctx, "Removed orphaned artifacts", "count", removed)
	}

	return nil
}
