package services

import (
	"Depot/internal/config"
	"Depot/internal/repository"
	"Depot/internal/storage"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Janitor reclaims orphaned blobs: blob files no tree entry references.
// Orphans appear when a blob delete was interrupted after the tree row was
// gone, or when an upload died between blob commit and row insert. Blobs
// younger than the grace window are skipped so in-flight uploads are never
// swept out from under the engine.
type Janitor struct {
	itemRepo      repository.ItemRepository
	blobs         storage.BlobStore
	configuration *config.Configuration
	logService    LogService
	cleaning      bool
	mutex         sync.Mutex
	cron          *cron.Cron
}

func NewJanitorService(
	itemRepository repository.ItemRepository,
	blobStore storage.BlobStore,
	logService LogService,
	configuration *config.Configuration,
) *Janitor {
	return &Janitor{
		itemRepo:      itemRepository,
		blobs:         blobStore,
		logService:    logService,
		configuration: configuration,
		cron:          cron.New(),
	}
}

func (j *Janitor) ForceStartCleanCycle() error {
	j.mutex.Lock()
	if j.cleaning {
		j.mutex.Unlock()
		return errors.New("cleaning is in progress")
	}
	j.cleaning = true
	j.mutex.Unlock()

	go func() {
		defer func() {
			j.mutex.Lock()
			j.cleaning = false
			j.mutex.Unlock()
		}()
		j.sweepOrphans(true)
	}()

	return nil
}

func (j *Janitor) StartCleanCycle() {
	j.logService.Log.Debug("starting blob sweep job")

	cronSchedule := j.configuration.Server.CleanConfig.Schedule
	_, err := j.cron.AddFunc(cronSchedule, func() {
		j.mutex.Lock()
		if j.cleaning {
			j.mutex.Unlock()
			return
		}
		j.cleaning = true
		j.mutex.Unlock()

		defer func() {
			j.mutex.Lock()
			j.cleaning = false
			j.mutex.Unlock()
		}()
		j.sweepOrphans(false)
	})

	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "sweep",
			"error": err.Error(),
		}).Error("Failed to start blob sweep job")
		return
	}
	j.cron.Start()
}

func (j *Janitor) Stop() {
	j.cron.Stop()
}

func (j *Janitor) IsCleaning() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.cleaning
}

func (j *Janitor) sweepOrphans(forced bool) {
	grace := time.Duration(j.configuration.Server.CleanConfig.GraceMinutes) * time.Minute
	if forced {
		grace = 0
	}

	referenced, err := j.itemRepo.FindAllBlobRefs()
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "sweep",
			"status": "error",
			"error":  err.Error(),
		}).Error("Failed to list referenced blobs")
		return
	}
	refSet := make(map[string]struct{}, len(referenced))
	for _, ref := range referenced {
		refSet[ref] = struct{}{}
	}

	stored, err := j.blobs.Refs()
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "sweep",
			"status": "error",
			"error":  err.Error(),
		}).Error("Failed to list stored blobs")
		return
	}

	var removedCount int
	cutoff := time.Now().Add(-grace)
	for _, blob := range stored {
		if _, ok := refSet[blob.Ref]; ok {
			continue
		}
		if blob.ModTime.After(cutoff) {
			continue
		}
		j.logService.Log.WithFields(logrus.Fields{
			"job":  "sweep",
			"blob": blob.Ref,
		}).Info("removing orphaned blob")
		if err := j.blobs.Remove(blob.Ref); err != nil {
			j.logService.Log.WithFields(logrus.Fields{
				"job":    "sweep",
				"status": "error",
				"blob":   blob.Ref,
				"error":  err.Error(),
			}).Error("Failed to remove orphaned blob")
			continue
		}
		removedCount++
	}

	if removedCount > 0 {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "sweep",
			"status": "success",
			"count":  removedCount,
		}).Info("blob sweep finished")
	}
}
