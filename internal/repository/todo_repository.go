package repository

import (
	"github.com/yukikurage/todo-list-api/internal/database"
	"github.com/yukikurage/todo-list-api/internal/models"
	"github.com/yukikurage/todo-list-api/internal/utils"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// FindByIDAndOwner finds a todo owned by the given user
func (r *GormTodoRepository) FindByIDAndOwner(id, ownerID uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// ListByOwner retrieves a user's todos ordered by position
func (r *GormTodoRepository) ListByOwner(ownerID uint64, params utils.ListParams) ([]models.Todo, error) {
	var todos []models.Todo
	if err := r.db.
		Where("owner_id = ?", ownerID).
		Order("position ASC, id ASC").
		Scopes(database.Paginate(params)).
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Update persists changes to a todo
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// Delete removes a todo owned by the given user
func (r *GormTodoRepository) Delete(id, ownerID uint64) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Todo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Reorder applies a batch of position updates in one transaction
func (r *GormTodoRepository) Reorder(ownerID uint64, pairs []OrderPair) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, pair := range pairs {
			// Zero affected rows means the ID is missing or foreign; skip it
			if err := tx.Model(&models.Todo{}).
				Where("id = ? AND owner_id = ?", pair.ID, ownerID).
				Update("position", pair.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
