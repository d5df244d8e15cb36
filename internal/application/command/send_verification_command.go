package command

type SendVerificationCommand struct {
	Email string `json:"email"`
}

type SendVerificationCommandResult struct {
	Message string `json:"message"`
}
