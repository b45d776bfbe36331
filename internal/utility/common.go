package utility

import (
	"runtime/debug"

	"you_education/internal/logger"
)

// GoProtect là một hàm bao bọc (wrapper) giúp bảo vệ một hàm khác khỏi bị panic.
// Nếu xảy ra panic trong hàm f(), GoProtect sẽ bắt lại và ghi log lỗi kèm stack trace
// thay vì làm chương trình dừng hẳn. Dùng cho các goroutine nền và vòng lặp worker.
func GoProtect(f func()) {
	defer func() {
		// Sử dụng recover() để bắt lỗi panic nếu có
		if r := recover(); r != nil {
			logger.GetAppLogger().WithFields(map[string]interface{}{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Đã bắt lỗi panic trong goroutine được bảo vệ")
		}
	}()

	// Gọi hàm f() được truyền vào
	f()
}
