package interfaces

import (
	"context"

	"listings-service/internal/application/command"
	"listings-service/internal/application/query"
)

type AuthService interface {
	Register(ctx context.Context, cmd *command.RegisterUserCommand) (*command.RegisterUserCommandResult, error)
	Login(ctx context.Context, cmd *command.LoginUserCommand) (*command.LoginUserCommandResult, error)
	SendVerification(ctx context.Context, cmd *command.SendVerificationCommand) (*command.SendVerificationCommandResult, error)
	ConfirmVerification(ctx context.Context, cmd *command.VerifyEmailCommand) (*command.VerifyEmailCommandResult, error)
	GetProfile(ctx context.Context, userID string) (*query.UserQueryResult, error)
}
