package repository

import (
	"Depot/internal/models"
	"errors"
	"gorm.io/gorm"
)

type ItemRepository interface {
	GenericRepository[models.Item]
	FindByParentID(parentID *uint) ([]models.Item, error)
	FindSibling(name string, parentID *uint, folder bool) (*models.Item, error)
	CountChildren(parentID uint) (int64, error)
	FindAllBlobRefs() ([]string, error)
	ItemsSearch(name string, folder *bool, limit int, offset int) ([]models.Item, error)
}

type ItemRepositoryImpl[T models.Item] struct {
	GenericRepository[models.Item]
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &ItemRepositoryImpl[models.Item]{
		GenericRepository: NewGenericRepository[models.Item](db),
		db:                db,
	}
}

func (r *ItemRepositoryImpl[T]) FindByParentID(parentID *uint) ([]models.Item, error) {
	var items []models.Item
	query := r.db
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindSibling resolves the item of the given kind with the given name under
// parentID, or nil when no such sibling exists.
func (r *ItemRepositoryImpl[T]) FindSibling(name string, parentID *uint, folder bool) (*models.Item, error) {
	var item models.Item
	query := r.db.Where("name = ? AND folder = ?", name, folder)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepositoryImpl[T]) CountChildren(parentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Item{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

func (r *ItemRepositoryImpl[T]) FindAllBlobRefs() ([]string, error) {
	var refs []string
	err := r.db.Model(&models.Item{}).Where("folder = ? AND blob_ref <> ''", false).Pluck("blob_ref", &refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *ItemRepositoryImpl[T]) ItemsSearch(name string, folder *bool, limit int, offset int) ([]models.Item, error) {
	var items []models.Item
	query := r.db
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if folder != nil {
		query = query.Where("folder = ?", *folder)
	}
	query = query.Order("name").Limit(limit).Offset(offset)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
