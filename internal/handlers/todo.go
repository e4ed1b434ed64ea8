package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-list-api/internal/dto"
	apierrors "github.com/yukikurage/todo-list-api/internal/errors"
	"github.com/yukikurage/todo-list-api/internal/middleware"
	"github.com/yukikurage/todo-list-api/internal/services"
	"github.com/yukikurage/todo-list-api/internal/utils"
)

// TodoHandler coordinates todo-related HTTP handlers.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ListTodos returns the caller's todos with skip/limit windowing.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetListParams(c)

	todos, err := h.todoService.ListTodos(user.ID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch todos")
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTOs(todos))
}

// CreateTodo creates a new todo owned by the caller.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTodoRequest struct {
		Title       string   `json:"title" binding:"required"`
		Description *string  `json:"description"`
		Completed   bool     `json:"completed"`
		Order       int      `json:"order" binding:"gte=0"`
		Priority    *string  `json:"priority"`
		Tags        []string `json:"tags"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.CreateTodo(services.CreateTodoInput{
		OwnerID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Order:       req.Order,
		Priority:    req.Priority,
		Tags:        req.Tags,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo))
}

// UpdateTodo applies a partial update to a todo owned by the caller.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	type UpdateTodoRequest struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Completed   *bool     `json:"completed"`
		Order       *int      `json:"order"`
		Priority    *string   `json:"priority"`
		Tags        *[]string `json:"tags"`
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.UpdateTodo(todoID, user.ID, services.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Order:       req.Order,
		Priority:    req.Priority,
		Tags:        req.Tags,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// DeleteTodo removes a todo owned by the caller.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(todoID, user.ID); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ReorderTodos applies a batch of position updates. Entries the caller does
// not own are skipped without affecting the rest of the batch.
func (h *TodoHandler) ReorderTodos(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ReorderEntry struct {
		ID    uint64 `json:"id" binding:"required"`
		Order int    `json:"order" binding:"gte=0"`
	}

	var req []ReorderEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]services.ReorderItem, len(req))
	for i, entry := range req {
		items[i] = services.ReorderItem{
			ID:    entry.ID,
			Order: entry.Order,
		}
	}

	if err := h.todoService.ReorderTodos(user.ID, items); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func parseTodoID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid todo ID")
		return 0, false
	}
	return id, true
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, "Todo not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrNegativeOrder):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
