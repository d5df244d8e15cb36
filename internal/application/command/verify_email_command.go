package command

import "listings-service/internal/application/common"

type VerifyEmailCommand struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyEmailCommandResult struct {
	Result *common.UserResult `json:"result"`
}
