package provider

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"you_education/internal/logger"
	"you_education/internal/utility"
)

// YouTubeClient là adapter tìm kiếm video qua YouTube Data API v3.
// Kết quả tìm kiếm được cache theo query để tiết kiệm quota.
type YouTubeClient struct {
	service    *youtube.Service
	maxResults int64
	cache      *utility.Cache
}

// NewYouTubeClient tạo mới một YouTubeClient.
// Parameters:
//   - ctx: Context cho việc khởi tạo service
//   - apiKey: API key của YouTube Data API
//   - maxResults: Số kết quả tối đa mỗi lần tìm kiếm
func NewYouTubeClient(ctx context.Context, apiKey string, maxResults int64) (*YouTubeClient, error) {
	if apiKey == "" {
		return nil, NewProviderError("youtube", "init", errors.New("thiếu API key"))
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, NewProviderError("youtube", "init", err)
	}

	if maxResults <= 0 {
		maxResults = 10
	}

	return &YouTubeClient{
		service:    service,
		maxResults: maxResults,
		// Cache kết quả tìm kiếm 30 phút, dọn dẹp mỗi giờ
		cache: utility.NewCache(30*time.Minute, time.Hour),
	}, nil
}

// Search tìm kiếm video theo query, trả về danh sách ứng viên đã có
// duration / view count / like count (cần thêm một call Videos.List vì
// Search.List không trả về các field này).
func (y *YouTubeClient) Search(ctx context.Context, query string) ([]VideoCandidate, error) {
	cacheKey := "yt_search:" + query
	if cached, found := y.cache.Get(cacheKey); found {
		return cached.([]VideoCandidate), nil
	}

	searchResp, err := y.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(y.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"query": query,
			"error": err.Error(),
		}).Error("🎬 [YOUTUBE] Lỗi gọi Search.List")
		return nil, NewProviderError("youtube", "search", err)
	}

	videoIDs := make([]string, 0, len(searchResp.Items))
	titles := make(map[string]string, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		videoIDs = append(videoIDs, item.Id.VideoId)
		if item.Snippet != nil {
			titles[item.Id.VideoId] = item.Snippet.Title
		}
	}

	if len(videoIDs) == 0 {
		y.cache.Set(cacheKey, []VideoCandidate{})
		return []VideoCandidate{}, nil
	}

	// Lấy duration và statistics cho các video tìm được
	videosResp, err := y.service.Videos.List([]string{"contentDetails", "statistics"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, NewProviderError("youtube", "videos_list", err)
	}

	detail := make(map[string]*youtube.Video, len(videosResp.Items))
	for _, v := range videosResp.Items {
		detail[v.Id] = v
	}

	// Giữ thứ tự ranking của Search.List
	candidates := make([]VideoCandidate, 0, len(videoIDs))
	for _, id := range videoIDs {
		candidate := VideoCandidate{
			Title: titles[id],
			URL:   "https://www.youtube.com/watch?v=" + id,
		}
		if v, ok := detail[id]; ok {
			if v.ContentDetails != nil {
				candidate.Duration = FormatISO8601Duration(v.ContentDetails.Duration)
			}
			if v.Statistics != nil {
				candidate.ViewCount = strconv.FormatUint(v.Statistics.ViewCount, 10)
				candidate.LikeCount = strconv.FormatUint(v.Statistics.LikeCount, 10)
			}
		}
		candidates = append(candidates, candidate)
	}

	y.cache.Set(cacheKey, candidates)
	return candidates, nil
}

// Close dừng vòng dọn dẹp cache
func (y *YouTubeClient) Close() {
	y.cache.Stop()
}

var iso8601DurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatISO8601Duration chuyển duration ISO 8601 của YouTube (PT1H2M3S)
// sang dạng hiển thị mm:ss hoặc h:mm:ss. Chuỗi không parse được trả về nguyên bản.
func FormatISO8601Duration(iso string) string {
	matches := iso8601DurationPattern.FindStringSubmatch(iso)
	if matches == nil {
		return iso
	}

	atoi := func(s string) int {
		if s == "" {
			return 0
		}
		n, _ := strconv.Atoi(s)
		return n
	}

	hours := atoi(matches[1])
	minutes := atoi(matches[2])
	seconds := atoi(matches[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
