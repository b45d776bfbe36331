package mindmap

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"you_education/internal/logger"
	"you_education/internal/provider"
)

// maxVideosPerTopic giới hạn số video đưa vào prompt cho mỗi chủ đề
const maxVideosPerTopic = 5

// placeholderVideoURL là url sentinel không truy cập được, đánh dấu chủ đề
// không có video thật
const placeholderVideoURL = "https://video.invalid/khong-tim-thay"

// placeholderCandidate tạo ứng viên thế chỗ khi một chủ đề không có video:
// tiêu đề mang tên chủ đề, url sentinel, số liệu bằng không.
func placeholderCandidate(topic string) provider.VideoCandidate {
	return provider.VideoCandidate{
		Title:     fmt.Sprintf("Chưa tìm được video cho chủ đề: %s", topic),
		URL:       placeholderVideoURL,
		Duration:  "0:00",
		ViewCount: "0",
		LikeCount: "0",
	}
}

// EnrichedTopic là một chủ đề đã gắn kèm danh sách video ứng viên
type EnrichedTopic struct {
	Title  string                    `json:"title"`
	Videos []provider.VideoCandidate `json:"videos"`
}

// Enricher tìm video YouTube cho từng chủ đề, chạy song song theo chủ đề.
// Lỗi tìm kiếm của một chủ đề không làm hỏng cả đợt: chủ đề đó chỉ không có video.
type Enricher struct {
	searcher    provider.VideoSearcher
	concurrency int
}

// NewEnricher tạo Enricher với giới hạn số goroutine tìm kiếm đồng thời
func NewEnricher(searcher provider.VideoSearcher, concurrency int) *Enricher {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Enricher{searcher: searcher, concurrency: concurrency}
}

// Enrich tìm video cho từng chủ đề và trả về kết quả theo đúng thứ tự đầu vào.
// Chủ đề lỗi hoặc không có kết quả nhận đúng một ứng viên thế chỗ, nên mọi
// chủ đề đầu ra luôn có ít nhất một video.
func (e *Enricher) Enrich(ctx context.Context, topics []string) ([]EnrichedTopic, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("danh sách chủ đề rỗng")
	}

	results := make([]EnrichedTopic, len(topics))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, topic := range topics {
		g.Go(func() error {
			results[i] = EnrichedTopic{Title: topic, Videos: []provider.VideoCandidate{placeholderCandidate(topic)}}

			candidates, err := e.searcher.Search(groupCtx, topic)
			if err != nil {
				// Nuốt lỗi theo chủ đề: chủ đề lỗi giữ ứng viên thế chỗ,
				// không chặn việc tổng hợp sơ đồ
				logger.GetAppLogger().WithError(err).
					WithField("topic", topic).
					Warn("🎬 [ENRICH] Tìm video thất bại, dùng ứng viên thế chỗ")
				return nil
			}
			if len(candidates) == 0 {
				return nil
			}
			if len(candidates) > maxVideosPerTopic {
				candidates = candidates[:maxVideosPerTopic]
			}
			results[i].Videos = candidates
			return nil
		})
	}

	// Các goroutine không trả lỗi, Wait chỉ bắt trường hợp ctx bị hủy
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
