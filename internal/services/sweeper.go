package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
	"github.com/HarmoniqaOrg/PharmOS/internal/storage"
)

// defaultGraceWindow is how long a stored payload must sit without a
// version record before the sweeper treats it as an orphan. CreateVersion
// writes the artifact before committing metadata, so a payload can
// legitimately have no record for the duration of one commit.
const defaultGraceWindow = 5 * time.Minute

// OrphanSweeper reconciles the artifact store against the version
// records. A crash between an artifact write and its metadata commit
// leaves a payload no record points at; the sweeper finds those and
// either reports them or removes them.
type OrphanSweeper struct {
	registry      *registry.Registry
	store         *storage.LocalStore
	interval      time.Duration
	grace         time.Duration
	removeOrphans bool
	log           *zap.Logger
	stopChan      chan struct{}
}

func NewOrphanSweeper(reg *registry.Registry, store *storage.LocalStore, interval time.Duration, removeOrphans bool, log *zap.Logger) *OrphanSweeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrphanSweeper{
		registry:      reg,
		store:         store,
		interval:      interval,
		grace:         defaultGraceWindow,
		removeOrphans: removeOrphans,
		log:           log,
		stopChan:      make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called. Call in a goroutine.
func (s *OrphanSweeper) Start() {
	s.log.Info("orphan sweeper started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopChan:
			return
		}
	}
}

func (s *OrphanSweeper) Stop() {
	close(s.stopChan)
}

// Sweep scans every stored artifact once and returns how many orphans
// were found.
func (s *OrphanSweeper) Sweep() int {
	keys, err := s.store.ListKeys()
	if err != nil {
		s.log.Error("orphan sweep failed to list artifacts", zap.Error(err))
		return 0
	}

	orphans := 0
	for _, key := range keys {
		if s.registry.HasVersion(key.ModelID, key.Version) {
			continue
		}
		// A fresh payload may belong to a CreateVersion whose metadata
		// commit has not landed yet; leave it until a later pass.
		if time.Since(key.ModTime) < s.grace {
			continue
		}
		orphans++

		if !s.removeOrphans {
			s.log.Warn("orphaned artifact found",
				zap.String("model_id", key.ModelID),
				zap.String("version", key.Version))
			continue
		}
		if err := s.store.Delete(context.Background(), key.ModelID, key.Version); err != nil {
			s.log.Error("failed to remove orphaned artifact",
				zap.String("model_id", key.ModelID),
				zap.String("version", key.Version),
				zap.Error(err))
			continue
		}
		s.log.Info("orphaned artifact removed",
			zap.String("model_id", key.ModelID),
			zap.String("version", key.Version))
	}
	return orphans
}
