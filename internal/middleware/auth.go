package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-list-api/internal/auth"
	"github.com/yukikurage/todo-list-api/internal/constants"
	apierrors "github.com/yukikurage/todo-list-api/internal/errors"
	"github.com/yukikurage/todo-list-api/internal/models"
	"github.com/yukikurage/todo-list-api/internal/repository"
)

const bearerPrefix = "Bearer "

// RequireAuth verifies the bearer token, resolves the subject to a user
// record, and stores it in the context. Any failure aborts with 401.
func RequireAuth(tokens *auth.TokenIssuer, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			apierrors.InvalidCredentials(c, "")
			c.Abort()
			return
		}

		username, err := tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			apierrors.InvalidCredentials(c, "")
			c.Abort()
			return
		}

		user, err := userRepo.FindByUsername(username)
		if err != nil {
			apierrors.InvalidCredentials(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}
