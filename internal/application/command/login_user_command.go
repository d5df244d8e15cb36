package command

import "listings-service/internal/domain/entities"

type LoginUserCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginUserCommandResult struct {
	Token  string            `json:"token"`
	UserID string            `json:"userId"`
	Email  string            `json:"email"`
	Role   entities.UserRole `json:"role"`
}
