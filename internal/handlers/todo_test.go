package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/todo-list-api/internal/auth"
	"github.com/yukikurage/todo-list-api/internal/database"
	"github.com/yukikurage/todo-list-api/internal/dto"
	"github.com/yukikurage/todo-list-api/internal/middleware"
	"github.com/yukikurage/todo-list-api/internal/models"
	"github.com/yukikurage/todo-list-api/internal/repository"
	"github.com/yukikurage/todo-list-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TodoHandlerTestSuite defines the test suite for TodoHandler
type TodoHandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	router      *gin.Engine
	issuer      *auth.TokenIssuer
	authService *services.AuthService
	todoService *services.TodoService
}

// SetupTest runs before each test
func (suite *TodoHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Todo{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	todoRepo := repository.NewTodoRepository(suite.db)

	suite.issuer = auth.NewTokenIssuer("test-secret", 30*time.Minute)
	suite.authService = services.NewAuthService(userRepo, suite.issuer)
	suite.todoService = services.NewTodoService(todoRepo)

	authHandler := NewAuthHandler(suite.authService)
	todoHandler := NewTodoHandler(suite.todoService)

	requireAuth := middleware.RequireAuth(suite.issuer, userRepo)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.GET("/users/me", requireAuth, authHandler.Me)

	todos := suite.router.Group("/todos")
	todos.Use(requireAuth)
	{
		todos.GET("/", todoHandler.ListTodos)
		todos.POST("/", todoHandler.CreateTodo)
		todos.PUT("/reorder", todoHandler.ReorderTodos)
		todos.PUT("/:id", todoHandler.UpdateTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
	}
}

// TearDownTest runs after each test
func (suite *TodoHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions

func (suite *TodoHandlerTestSuite) createTestUser(username string) (*models.User, string) {
	user, err := suite.authService.Register(services.RegisterInput{
		Username: username,
		Password: "supersecret",
	})
	suite.Require().NoError(err)

	token, err := suite.issuer.Issue(username)
	suite.Require().NoError(err)

	return user, token
}

func (suite *TodoHandlerTestSuite) createTestTodo(ownerID uint64, title string, order int) *models.Todo {
	todo, err := suite.todoService.CreateTodo(services.CreateTodoInput{
		OwnerID: ownerID,
		Title:   title,
		Order:   order,
	})
	suite.Require().NoError(err)
	return todo
}

func (suite *TodoHandlerTestSuite) doRequest(method, url string, payload any, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// Tests

func (suite *TodoHandlerTestSuite) TestCreateAndListTodos() {
	_, token := suite.createTestUser("alice")

	created := suite.doRequest(http.MethodPost, "/todos/", map[string]any{
		"title":       "Buy milk",
		"description": "Two liters",
		"order":       1,
		"priority":    "high",
		"tags":        []string{"a", "b"},
	}, token)
	suite.Equal(http.StatusCreated, created.Code)

	var todo dto.TodoDTO
	suite.Require().NoError(json.Unmarshal(created.Body.Bytes(), &todo))
	suite.Equal("Buy milk", todo.Title)
	suite.False(todo.Completed)
	suite.Equal(1, todo.Order)
	suite.Equal([]string{"a", "b"}, todo.Tags)

	listed := suite.doRequest(http.MethodGet, "/todos/", nil, token)
	suite.Equal(http.StatusOK, listed.Code)

	var todos []dto.TodoDTO
	suite.Require().NoError(json.Unmarshal(listed.Body.Bytes(), &todos))
	suite.Require().Len(todos, 1)
	suite.Equal("Buy milk", todos[0].Title)
	suite.Equal([]string{"a", "b"}, todos[0].Tags)
	suite.Equal(1, todos[0].Order)
	suite.Require().NotNil(todos[0].Priority)
	suite.Equal("high", *todos[0].Priority)
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_MissingTitle() {
	_, token := suite.createTestUser("alice")

	w := suite.doRequest(http.MethodPost, "/todos/", map[string]any{
		"description": "no title",
	}, token)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_PartialLeavesOtherFieldsUntouched() {
	user, token := suite.createTestUser("alice")

	description := "Original description"
	created, err := suite.todoService.CreateTodo(services.CreateTodoInput{
		OwnerID:     user.ID,
		Title:       "Original title",
		Description: &description,
		Order:       4,
	})
	suite.Require().NoError(err)

	w := suite.doRequest(http.MethodPut, "/todos/"+itoa(created.ID), map[string]any{
		"completed": true,
	}, token)
	suite.Equal(http.StatusOK, w.Code)

	var updated dto.TodoDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	suite.True(updated.Completed)
	suite.Equal("Original title", updated.Title)
	suite.Require().NotNil(updated.Description)
	suite.Equal("Original description", *updated.Description)
	suite.Equal(4, updated.Order)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_OtherUsersTodoIsNotFound() {
	alice, _ := suite.createTestUser("alice")
	_, bobToken := suite.createTestUser("bob")

	todo := suite.createTestTodo(alice.ID, "Alice's todo", 0)

	w := suite.doRequest(http.MethodPut, "/todos/"+itoa(todo.ID), map[string]any{
		"title": "hijacked",
	}, bobToken)
	suite.Equal(http.StatusNotFound, w.Code)

	var untouched models.Todo
	suite.Require().NoError(suite.db.First(&untouched, todo.ID).Error)
	suite.Equal("Alice's todo", untouched.Title)
}

func (suite *TodoHandlerTestSuite) TestDeleteTodo() {
	alice, aliceToken := suite.createTestUser("alice")
	_, bobToken := suite.createTestUser("bob")

	todo := suite.createTestTodo(alice.ID, "Alice's todo", 0)

	// Another user's delete reads as not found and removes nothing
	denied := suite.doRequest(http.MethodDelete, "/todos/"+itoa(todo.ID), nil, bobToken)
	suite.Equal(http.StatusNotFound, denied.Code)

	var count int64
	suite.db.Model(&models.Todo{}).Count(&count)
	suite.EqualValues(1, count)

	deleted := suite.doRequest(http.MethodDelete, "/todos/"+itoa(todo.ID), nil, aliceToken)
	suite.Equal(http.StatusOK, deleted.Code)
	suite.JSONEq(`{"ok":true}`, deleted.Body.String())

	suite.db.Model(&models.Todo{}).Count(&count)
	suite.EqualValues(0, count)
}

func (suite *TodoHandlerTestSuite) TestReorderTodos_MixedOwnership() {
	alice, aliceToken := suite.createTestUser("alice")
	bob, _ := suite.createTestUser("bob")

	mine := suite.createTestTodo(alice.ID, "mine", 0)
	foreign := suite.createTestTodo(bob.ID, "foreign", 5)

	w := suite.doRequest(http.MethodPut, "/todos/reorder", []map[string]any{
		{"id": mine.ID, "order": 3},
		{"id": foreign.ID, "order": 0},
	}, aliceToken)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"ok":true}`, w.Body.String())

	var reordered models.Todo
	suite.Require().NoError(suite.db.First(&reordered, mine.ID).Error)
	suite.Equal(3, reordered.Position)

	var untouched models.Todo
	suite.Require().NoError(suite.db.First(&untouched, foreign.ID).Error)
	suite.Equal(5, untouched.Position)
}

func (suite *TodoHandlerTestSuite) TestReorderTodos_RejectsNegativeOrder() {
	alice, token := suite.createTestUser("alice")
	todo := suite.createTestTodo(alice.ID, "mine", 0)

	w := suite.doRequest(http.MethodPut, "/todos/reorder", []map[string]any{
		{"id": todo.ID, "order": -1},
	}, token)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestProtectedRoutes_RejectBadTokens() {
	suite.createTestUser("alice")

	expiredIssuer := auth.NewTokenIssuer("test-secret", -time.Minute)
	expired, err := expiredIssuer.Issue("alice")
	suite.Require().NoError(err)

	for _, route := range []string{"/todos/", "/users/me"} {
		for name, token := range map[string]string{
			"missing": "",
			"expired": expired,
			"garbage": "not-a-token",
		} {
			w := suite.doRequest(http.MethodGet, route, nil, token)
			suite.Equal(http.StatusUnauthorized, w.Code, "route %s case %s", route, name)
			suite.Equal("Bearer", w.Header().Get("WWW-Authenticate"), "route %s case %s", route, name)
		}
	}
}

func (suite *TodoHandlerTestSuite) TestListTodos_ScopedToCaller() {
	alice, aliceToken := suite.createTestUser("alice")
	bob, bobToken := suite.createTestUser("bob")

	suite.createTestTodo(alice.ID, "alice todo", 0)
	suite.createTestTodo(bob.ID, "bob todo", 0)

	var aliceTodos []dto.TodoDTO
	w := suite.doRequest(http.MethodGet, "/todos/", nil, aliceToken)
	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &aliceTodos))
	suite.Require().Len(aliceTodos, 1)
	suite.Equal("alice todo", aliceTodos[0].Title)

	var bobTodos []dto.TodoDTO
	w = suite.doRequest(http.MethodGet, "/todos/", nil, bobToken)
	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &bobTodos))
	suite.Require().Len(bobTodos, 1)
	suite.Equal("bob todo", bobTodos[0].Title)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func TestTodoHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TodoHandlerTestSuite))
}
