package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/todo-list-api/internal/models"
	"github.com/yukikurage/todo-list-api/internal/repository"
	"github.com/yukikurage/todo-list-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTodoNotFound  = errors.New("todo not found")
	ErrTitleRequired = errors.New("title is required")
	ErrTitleEmpty    = errors.New("title cannot be empty")
	ErrNegativeOrder = errors.New("order must be zero or positive")
)

// TodoService handles todo business logic. Every operation is scoped to the
// owning user; a todo ID alone never reaches another user's row.
type TodoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a new TodoService
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
	}
}

// ListTodos returns the user's todos ordered by position
func (s *TodoService) ListTodos(ownerID uint64, params utils.ListParams) ([]models.Todo, error) {
	todos, err := s.todoRepo.ListByOwner(ownerID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// GetTodo returns a single todo owned by the user
func (s *TodoService) GetTodo(id, ownerID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByIDAndOwner(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return todo, nil
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	OwnerID     uint64
	Title       string
	Description *string
	Completed   bool
	Order       int
	Priority    *string
	Tags        []string
}

// CreateTodo creates a new todo under the given owner
func (s *TodoService) CreateTodo(input CreateTodoInput) (*models.Todo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	todo := &models.Todo{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		Position:    input.Order,
		Priority:    input.Priority,
		OwnerID:     input.OwnerID,
	}
	todo.SetTagList(input.Tags)

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// UpdateTodoInput represents a partial update; nil fields were not supplied
// and stay untouched.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Order       *int
	Priority    *string
	Tags        *[]string
}

// UpdateTodo applies a partial update to a todo owned by the user
func (s *TodoService) UpdateTodo(id, ownerID uint64, input UpdateTodoInput) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByIDAndOwner(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		todo.Title = *input.Title
	}
	if input.Description != nil {
		todo.Description = input.Description
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if input.Order != nil {
		if *input.Order < 0 {
			return nil, ErrNegativeOrder
		}
		todo.Position = *input.Order
	}
	if input.Priority != nil {
		todo.Priority = input.Priority
	}
	if input.Tags != nil {
		todo.SetTagList(*input.Tags)
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo removes a todo owned by the user
func (s *TodoService) DeleteTodo(id, ownerID uint64) error {
	if err := s.todoRepo.Delete(id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// ReorderItem maps a todo ID to its requested position
type ReorderItem struct {
	ID    uint64
	Order int
}

// ReorderTodos applies a batch of position updates for the user's todos.
// IDs the user does not own update nothing; the whole batch rolls back on a
// storage error.
func (s *TodoService) ReorderTodos(ownerID uint64, items []ReorderItem) error {
	pairs := make([]repository.OrderPair, 0, len(items))
	for _, item := range items {
		if item.Order < 0 {
			return ErrNegativeOrder
		}
		pairs = append(pairs, repository.OrderPair{
			ID:       item.ID,
			Position: item.Order,
		})
	}

	if err := s.todoRepo.Reorder(ownerID, pairs); err != nil {
		return fmt.Errorf("failed to reorder todos: %w", err)
	}

	return nil
}
