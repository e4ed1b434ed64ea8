package dto

import "github.com/yukikurage/todo-list-api/internal/models"

// UserDTO represents a user in API responses. The password digest never
// leaves the server.
type UserDTO struct {
	ID          uint64  `json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
	Avatar      *string `json:"avatar"`
}

// TokenDTO is the login response body.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
	}
}
