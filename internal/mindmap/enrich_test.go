package mindmap

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"you_education/internal/provider"
)

// fakeSearcher trả về kết quả cố định theo query, có thể gắn lỗi theo query
type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]provider.VideoCandidate
	errs    map[string]error
	calls   []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]provider.VideoCandidate, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	f.mu.Unlock()
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.results[query], nil
}

func videos(n int) []provider.VideoCandidate {
	out := make([]provider.VideoCandidate, n)
	for i := range out {
		out[i] = provider.VideoCandidate{
			Title: fmt.Sprintf("Video %d", i+1),
			URL:   fmt.Sprintf("https://www.youtube.com/watch?v=v%d", i+1),
		}
	}
	return out
}

func TestEnrich_GiuDungThuTuDauVao(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]provider.VideoCandidate{
		"chủ đề A": videos(2),
		"chủ đề B": videos(1),
		"chủ đề C": videos(3),
	}}
	enricher := NewEnricher(searcher, 4)

	got, err := enricher.Enrich(context.Background(), []string{"chủ đề A", "chủ đề B", "chủ đề C"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "chủ đề A", got[0].Title)
	assert.Equal(t, "chủ đề B", got[1].Title)
	assert.Equal(t, "chủ đề C", got[2].Title)
	assert.Len(t, got[0].Videos, 2)
	assert.Len(t, got[1].Videos, 1)
	assert.Len(t, got[2].Videos, 3)
}

func TestEnrich_GioiHanSoVideoMoiChuDe(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]provider.VideoCandidate{
		"quang hợp": videos(9),
	}}
	enricher := NewEnricher(searcher, 2)

	got, err := enricher.Enrich(context.Background(), []string{"quang hợp"})
	require.NoError(t, err)
	assert.Len(t, got[0].Videos, maxVideosPerTopic)
	// Giữ thứ hạng tìm kiếm: các video đầu tiên được giữ lại
	assert.Equal(t, "Video 1", got[0].Videos[0].Title)
}

func TestEnrich_LoiMotChuDeKhongLamHongCaDot(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]provider.VideoCandidate{"tế bào": videos(2)},
		errs:    map[string]error{"di truyền": fmt.Errorf("quota exceeded")},
	}
	enricher := NewEnricher(searcher, 4)

	got, err := enricher.Enrich(context.Background(), []string{"tế bào", "di truyền"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Videos, 2)
	// Chủ đề lỗi vẫn có mặt với đúng một ứng viên thế chỗ
	assert.Equal(t, "di truyền", got[1].Title)
	require.Len(t, got[1].Videos, 1)
	placeholder := got[1].Videos[0]
	assert.Contains(t, placeholder.Title, "di truyền")
	assert.Equal(t, placeholderVideoURL, placeholder.URL)
	assert.Equal(t, "0", placeholder.ViewCount)
	assert.Equal(t, "0", placeholder.LikeCount)
}

func TestEnrich_KhongCoKetQuaCungDungUngVienTheCho(t *testing.T) {
	// Tìm kiếm thành công nhưng trả về rỗng: vẫn phải có một ứng viên thế chỗ
	searcher := &fakeSearcher{results: map[string][]provider.VideoCandidate{
		"chủ đề hiếm": {},
	}}
	enricher := NewEnricher(searcher, 2)

	got, err := enricher.Enrich(context.Background(), []string{"chủ đề hiếm"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Videos, 1)
	assert.Contains(t, got[0].Videos[0].Title, "chủ đề hiếm")
	assert.Equal(t, placeholderVideoURL, got[0].Videos[0].URL)
}

func TestEnrich_DanhSachRong(t *testing.T) {
	enricher := NewEnricher(&fakeSearcher{}, 4)
	_, err := enricher.Enrich(context.Background(), nil)
	assert.Error(t, err)
}

func TestEnrich_ContextHuy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	enricher := NewEnricher(&fakeSearcher{results: map[string][]provider.VideoCandidate{}}, 1)
	_, err := enricher.Enrich(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
}
