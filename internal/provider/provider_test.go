package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatISO8601Duration(t *testing.T) {
	cases := []struct {
		name string
		iso  string
		want string
	}{
		{"chỉ có giây", "PT45S", "0:45"},
		{"phút và giây", "PT4M13S", "4:13"},
		{"giây có số 0 đệm", "PT12M5S", "12:05"},
		{"chỉ có phút", "PT10M", "10:00"},
		{"có giờ", "PT1H2M3S", "1:02:03"},
		{"giờ thiếu phút", "PT2H7S", "2:00:07"},
		{"rỗng kể cả đơn vị", "PT0S", "0:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatISO8601Duration(tc.iso))
		})
	}
}

func TestFormatISO8601Duration_KhongParseDuoc(t *testing.T) {
	// Chuỗi lạ giữ nguyên để không mất thông tin hiển thị
	assert.Equal(t, "P1DT2H", FormatISO8601Duration("P1DT2H"))
	assert.Equal(t, "12:34", FormatISO8601Duration("12:34"))
	assert.Equal(t, "", FormatISO8601Duration(""))
}

func TestProviderError(t *testing.T) {
	root := errors.New("quota exceeded")
	err := NewProviderError("youtube", "search", root)

	assert.Equal(t, "provider youtube: search: quota exceeded", err.Error())
	assert.ErrorIs(t, err, root)
}
