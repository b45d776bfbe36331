package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoProtect_ChayHamBinhThuong(t *testing.T) {
	ran := false
	GoProtect(func() {
		ran = true
	})
	assert.True(t, ran)
}

func TestGoProtect_BatPanicKhongLanRa(t *testing.T) {
	// Panic bên trong phải được nuốt, code phía sau vẫn chạy tiếp
	assert.NotPanics(t, func() {
		GoProtect(func() {
			panic("có lỗi bất ngờ")
		})
	})
}
