// Package eduhdl - các handler HTTP của domain education.
package eduhdl

import (
	"fmt"

	basehdl "you_education/internal/api/base/handler"
	edudto "you_education/internal/api/education/dto"
	models "you_education/internal/api/education/models"
	edusvc "you_education/internal/api/education/service"
)

// UserHandler xử lý các route liên quan đến người dùng
type UserHandler struct {
	*basehdl.BaseHandler[models.User, edudto.UserCreateInput, edudto.UserUpdateInput]
	UserService *edusvc.UserService
}

// NewUserHandler tạo instance mới của UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := edusvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &UserHandler{
		BaseHandler: basehdl.NewBaseHandler[models.User, edudto.UserCreateInput, edudto.UserUpdateInput](userService),
		UserService: userService,
	}, nil
}
