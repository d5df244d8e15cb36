package command

import "listings-service/internal/application/common"

type RegisterUserCommand struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	// Role is the role the client signs up for: BUYER_RENT or PROPERTY_OWNER.
	Role        string  `json:"role"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

type RegisterUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
