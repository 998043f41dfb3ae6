package services

import (
	"strings"
	"testing"
	"time"

	"Depot/internal/models"
	"Depot/internal/repository"
	"Depot/internal/storage"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupJanitor(t *testing.T) (*Janitor, repository.ItemRepository, storage.BlobStore) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Item{}))

	cfg := setupTestConfig(t)
	itemRepo := repository.NewItemRepository(db)
	blobStore, err := storage.NewBlobStore(cfg)
	assert.NoError(t, err)
	logService := NewLogService(cfg)
	return NewJanitorService(itemRepo, blobStore, logService, cfg), itemRepo, blobStore
}

func TestJanitor_SweepsOrphanedBlobs(t *testing.T) {
	janitor, itemRepo, blobStore := setupJanitor(t)

	referenced, err := blobStore.Save(strings.NewReader("kept"))
	assert.NoError(t, err)
	orphan, err := blobStore.Save(strings.NewReader("reclaim me"))
	assert.NoError(t, err)

	assert.NoError(t, itemRepo.Create(&models.Item{Name: "kept.txt", BlobRef: referenced.Ref}))

	janitor.sweepOrphans(true)

	assert.True(t, blobStore.Exists(referenced.Ref))
	assert.False(t, blobStore.Exists(orphan.Ref))
}

func TestJanitor_GraceWindowProtectsFreshBlobs(t *testing.T) {
	janitor, _, blobStore := setupJanitor(t)

	fresh, err := blobStore.Save(strings.NewReader("in flight"))
	assert.NoError(t, err)

	// Scheduled sweeps honor the grace window; a just-written blob stays.
	janitor.sweepOrphans(false)

	assert.True(t, blobStore.Exists(fresh.Ref))
}

func TestJanitor_ForceStartCleanCycle(t *testing.T) {
	janitor, _, blobStore := setupJanitor(t)

	orphan, err := blobStore.Save(strings.NewReader("orphan"))
	assert.NoError(t, err)

	assert.NoError(t, janitor.ForceStartCleanCycle())

	assert.Eventually(t, func() bool {
		return !janitor.IsCleaning() && !blobStore.Exists(orphan.Ref)
	}, 2*time.Second, 10*time.Millisecond)
}
