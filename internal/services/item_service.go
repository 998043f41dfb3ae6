package services

import (
	"Depot/internal/apperrors"
	"Depot/internal/models"
	"Depot/internal/repository"
	"Depot/internal/storage"
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// ItemService is the tree mutation engine: the only writer of the item
// store. Every mutation validates against the tree invariants (per-kind
// sibling uniqueness, existing folder parents, acyclicity) before touching
// the store, and mutations are serialized so a duplicate check and the
// insert it guards cannot interleave with another writer.
type ItemService interface {
	GetItems() ([]models.Item, error)
	GetChildren(parentID *uint) ([]models.Item, error)
	GetItemByID(id uint) (*models.Item, error)
	CreateFolder(name string, parentID *uint) (*models.Item, error)
	CreateFile(name string, parentID *uint, blob *storage.BlobInfo, mimeType string) (*models.Item, error)
	MoveOrRename(id uint, newParentID *uint, newName *string) (*models.Item, error)
	DeleteItem(id uint) error
	GetPath(id uint) ([]models.Item, error)
	ItemsSearch(name string, folder *bool, limit int, offset int) ([]models.Item, error)
}

// RootParentID in a move request means "make the item a root".
const RootParentID uint = 0

type itemServiceImpl struct {
	itemRepo repository.ItemRepository
	blobs    storage.BlobStore
	mu       sync.Mutex
}

func NewItemService(itemRepository repository.ItemRepository, blobStore storage.BlobStore) ItemService {
	return &itemServiceImpl{itemRepo: itemRepository, blobs: blobStore}
}

func (s *itemServiceImpl) GetItems() ([]models.Item, error) {
	return s.itemRepo.FindAll()
}

func (s *itemServiceImpl) GetChildren(parentID *uint) ([]models.Item, error) {
	return s.itemRepo.FindByParentID(parentID)
}

func (s *itemServiceImpl) GetItemByID(id uint) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "item %d not found", id)
		}
		return nil, err
	}
	return item, nil
}

func (s *itemServiceImpl) CreateFolder(name string, parentID *uint) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidName, "folder name must not be empty")
	}
	if err := s.validateParent(parentID); err != nil {
		return nil, err
	}
	sibling, err := s.itemRepo.FindSibling(name, parentID, true)
	if err != nil {
		return nil, err
	}
	if sibling != nil {
		return nil, apperrors.New(apperrors.CodeDuplicateFolder, "folder %q already exists here", name)
	}

	folder := &models.Item{Name: name, ParentID: parentID, Folder: true}
	if err := s.itemRepo.Create(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// CreateFile inserts the tree entry for an already persisted blob. The blob
// must be durably committed before this is called so the tree never
// references bytes that are not there.
func (s *itemServiceImpl) CreateFile(name string, parentID *uint, blob *storage.BlobInfo, mimeType string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidName, "file name must not be empty")
	}
	if err := s.validateParent(parentID); err != nil {
		return nil, err
	}
	sibling, err := s.itemRepo.FindSibling(name, parentID, false)
	if err != nil {
		return nil, err
	}
	if sibling != nil {
		return nil, apperrors.New(apperrors.CodeDuplicate, "file %q already exists here", name)
	}

	file := &models.Item{
		Name:     name,
		ParentID: parentID,
		Folder:   false,
		BlobRef:  blob.Ref,
		Size:     blob.Size,
		MimeType: mimeType,
		SHA256:   blob.SHA256,
	}
	if err := s.itemRepo.Create(file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *itemServiceImpl) MoveOrRename(id uint, newParentID *uint, newName *string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newParentID == nil && newName == nil {
		return nil, apperrors.New(apperrors.CodeInvalidName, "nothing to change: provide a parent, a name, or both")
	}

	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}

	resultingParent := item.ParentID
	if newParentID != nil {
		target, err := s.resolveMoveTarget(item, *newParentID)
		if err != nil {
			return nil, err
		}
		resultingParent = target
	}

	resultingName := item.Name
	if newName != nil {
		resultingName = strings.TrimSpace(*newName)
		if resultingName == "" {
			return nil, apperrors.New(apperrors.CodeInvalidName, "name must not be empty")
		}
	}

	sibling, err := s.itemRepo.FindSibling(resultingName, resultingParent, item.Folder)
	if err != nil {
		return nil, err
	}
	if sibling != nil && sibling.ID != item.ID {
		return nil, apperrors.New(apperrors.CodeDuplicateName, "an item named %q already exists at the destination", resultingName)
	}

	item.ParentID = resultingParent
	item.Name = resultingName
	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// resolveMoveTarget validates the requested parent for a move and returns
// the ParentID value to store (nil for root).
func (s *itemServiceImpl) resolveMoveTarget(item *models.Item, target uint) (*uint, error) {
	if target == RootParentID {
		return nil, nil
	}
	if target == item.ID {
		return nil, apperrors.New(apperrors.CodeInvalidParent, "an item cannot be its own parent")
	}
	parent, err := s.itemRepo.FindByID(target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeParentNotFound, "parent %d not found", target)
		}
		return nil, err
	}
	if !parent.Folder {
		return nil, apperrors.New(apperrors.CodeInvalidParent, "parent %d is not a folder", target)
	}
	// Walking from the proposed parent to the root must not pass through
	// the item itself, or the move would close a cycle.
	chain, err := s.walkToRoot(parent)
	if err != nil {
		return nil, err
	}
	for i := range chain {
		if chain[i].ID == item.ID {
			return nil, apperrors.New(apperrors.CodeInvalidParent, "cannot move an item under its own descendant")
		}
	}
	return &target, nil
}

func (s *itemServiceImpl) DeleteItem(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.GetItemByID(id)
	if err != nil {
		return err
	}

	if item.Folder {
		count, err := s.itemRepo.CountChildren(item.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.New(apperrors.CodeFolderNotEmpty, "folder %q has %d children", item.Name, count)
		}
	} else if item.BlobRef != "" && s.blobs.Exists(item.BlobRef) {
		// Blob first: if the bytes cannot be released the tree entry
		// stays, so nothing ever references a half-deleted file.
		if err := s.blobs.Remove(item.BlobRef); err != nil {
			return err
		}
	}

	return s.itemRepo.Delete(item.ID)
}

func (s *itemServiceImpl) GetPath(id uint) ([]models.Item, error) {
	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	chain, err := s.walkToRoot(item)
	if err != nil {
		return nil, err
	}
	// walkToRoot yields leaf-to-root; the contract is root-to-leaf.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// walkToRoot collects item and its ancestors, leaf first. The walk is
// bounded by the store size: a longer chain means the parent graph has a
// cycle, which is an integrity failure, never a reason to spin.
func (s *itemServiceImpl) walkToRoot(item *models.Item) ([]models.Item, error) {
	total, err := s.itemRepo.Count()
	if err != nil {
		return nil, err
	}

	chain := []models.Item{*item}
	current := item
	for current.ParentID != nil {
		if int64(len(chain)) >= total {
			return nil, apperrors.New(apperrors.CodeCycleDetected, "parent chain of item %d does not reach a root", item.ID)
		}
		parent, err := s.itemRepo.FindByID(*current.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.New(apperrors.CodeCycleDetected, "item %d references missing parent %d", current.ID, *current.ParentID)
			}
			return nil, err
		}
		chain = append(chain, *parent)
		current = parent
	}
	return chain, nil
}

func (s *itemServiceImpl) ItemsSearch(name string, folder *bool, limit int, offset int) ([]models.Item, error) {
	return s.itemRepo.ItemsSearch(name, folder, limit, offset)
}

// validateParent rejects creation under a missing or non-folder parent.
func (s *itemServiceImpl) validateParent(parentID *uint) error {
	if parentID == nil {
		return nil
	}
	parent, err := s.itemRepo.FindByID(*parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.CodeParentNotFound, "parent %d not found", *parentID)
		}
		return err
	}
	if !parent.Folder {
		return apperrors.New(apperrors.CodeParentNotFound, "parent %d is not a folder", *parentID)
	}
	return nil
}
