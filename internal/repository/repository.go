package repository

import (
	"github.com/yukikurage/todo-list-api/internal/models"
	"github.com/yukikurage/todo-list-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// OrderPair maps a todo ID to its new list position.
type OrderPair struct {
	ID       uint64
	Position int
}

// TodoRepository defines the interface for todo data access.
// Every operation that touches an existing row filters by both the todo ID
// and the owner ID, so a foreign ID behaves exactly like a missing one.
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *models.Todo) error

	// FindByIDAndOwner finds a todo owned by the given user
	FindByIDAndOwner(id, ownerID uint64) (*models.Todo, error)

	// ListByOwner retrieves a user's todos with skip/limit windowing,
	// ordered by position
	ListByOwner(ownerID uint64, params utils.ListParams) ([]models.Todo, error)

	// Update persists changes to a todo
	Update(todo *models.Todo) error

	// Delete removes a todo owned by the given user; reports
	// gorm.ErrRecordNotFound when no row matches
	Delete(id, ownerID uint64) error

	// Reorder applies a batch of position updates in one transaction.
	// Pairs that do not match a todo owned by the user update zero rows
	// and are skipped.
	Reorder(ownerID uint64, pairs []OrderPair) error
}
