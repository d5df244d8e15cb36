package query

import "listings-service/internal/application/common"

type UserQueryResult struct {
	Result *common.UserResult `json:"result"`
}
