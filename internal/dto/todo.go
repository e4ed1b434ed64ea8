package dto

import "github.com/yukikurage/todo-list-api/internal/models"

// TodoDTO represents a todo in API responses; tags are always a list,
// never the stored delimited string.
type TodoDTO struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Completed   bool     `json:"completed"`
	Order       int      `json:"order"`
	Priority    *string  `json:"priority"`
	Tags        []string `json:"tags"`
	OwnerID     uint64   `json:"owner_id"`
}

// ToTodoDTO converts a Todo model to TodoDTO
func ToTodoDTO(todo models.Todo) TodoDTO {
	return TodoDTO{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		Order:       todo.Position,
		Priority:    todo.Priority,
		Tags:        todo.TagList(),
		OwnerID:     todo.OwnerID,
	}
}

// ToTodoDTOs converts a slice of Todo models
func ToTodoDTOs(todos []models.Todo) []TodoDTO {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo)
	}
	return items
}
