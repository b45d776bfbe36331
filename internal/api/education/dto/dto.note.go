package edudto

// NoteCreateInput đầu vào tạo ghi chú (CRUD).
// Content đi kèm là tùy chọn: ghi chú placeholder chỉ cần mô tả.
type NoteCreateInput struct {
	Description string  `json:"description" validate:"required"`
	Content     *string `json:"content"`
}

// NoteUpdateInput đầu vào cập nhật ghi chú.
type NoteUpdateInput struct {
	Description string  `json:"description"`
	Content     *string `json:"content"`
}
