// Package provider chứa các adapter gọi dịch vụ bên ngoài (LLM, tìm kiếm video).
// Mỗi adapter bọc một API bên thứ ba sau một interface hẹp, lỗi được gói trong
// ProviderError để tầng pipeline phân loại và xử lý.
package provider

import (
	"context"
	"fmt"
)

// VideoCandidate là metadata của một video ứng viên cho một chủ đề.
// Dữ liệu tạm thời, không persist riêng; chỉ dùng khi xây dựng resource cho sơ đồ tư duy.
type VideoCandidate struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Duration  string `json:"duration"`  // Định dạng mm:ss hoặc h:mm:ss
	ViewCount string `json:"viewCount"` // Giữ dạng string theo API trả về
	LikeCount string `json:"likeCount"`
}

// LLMCompleter là interface cho adapter LLM completion
type LLMCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int32) (string, error)
}

// VideoSearcher là interface cho adapter tìm kiếm video
type VideoSearcher interface {
	Search(ctx context.Context, query string) ([]VideoCandidate, error)
}

// ProviderError bọc lỗi từ một provider bên ngoài kèm tên provider và thao tác
type ProviderError struct {
	Provider string // "gemini", "youtube"
	Op       string // Thao tác đang thực hiện khi lỗi
	Err      error
}

// Error trả về thông báo lỗi
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

// Unwrap trả về lỗi gốc
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError tạo mới một ProviderError
func NewProviderError(provider, op string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}
