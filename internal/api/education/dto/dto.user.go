// Package edudto chứa các DTO đầu vào của domain education.
package edudto

// UserCreateInput đầu vào tạo người dùng (CRUD).
type UserCreateInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	AvatarURL string `json:"avatarUrl"`
}

// UserUpdateInput đầu vào cập nhật người dùng.
type UserUpdateInput struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}
