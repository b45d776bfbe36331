package worker

import (
	"context"
	"time"

	models "you_education/internal/api/education/models"
	edusvc "you_education/internal/api/education/service"
	"you_education/internal/logger"
	"you_education/internal/utility"
)

// GenerationLockCleanupWorker worker để tự động giải phóng các cờ sinh nội dung bị treo.
// Một tiến trình chết giữa chừng sẽ để lại cờ bật mãi mãi; worker này chạy định kỳ
// và tắt các cờ có updatedAt quá hạn để user không bị kẹt lock vĩnh viễn.
type GenerationLockCleanupWorker struct {
	lockService *edusvc.JobLockService
	interval    time.Duration // Khoảng thời gian giữa các lần chạy
	timeout     time.Duration // Thời gian giữ cờ tối đa trước khi coi là treo
}

// NewGenerationLockCleanupWorker tạo mới GenerationLockCleanupWorker
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 1 phút)
//   - timeout: Thời gian giữ cờ tối đa (mặc định: 30 phút)
func NewGenerationLockCleanupWorker(interval time.Duration, timeout time.Duration) (*GenerationLockCleanupWorker, error) {
	lockService, err := edusvc.NewJobLockService()
	if err != nil {
		return nil, err
	}

	// Set defaults
	if interval < 30*time.Second {
		interval = 1 * time.Minute
	}
	if timeout < time.Minute {
		timeout = 30 * time.Minute
	}

	return &GenerationLockCleanupWorker{
		lockService: lockService,
		interval:    interval,
		timeout:     timeout,
	}, nil
}

// Start bắt đầu background worker để giải phóng các cờ bị treo.
// Worker chạy định kỳ theo interval và dọn cả hai cờ sinh sơ đồ và sinh quiz.
func (w *GenerationLockCleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
		"timeout":  w.timeout.String(),
	}).Info("🔄 [LOCK_CLEANUP] Starting Generation Lock Cleanup Worker...")

	jobFlags := []string{models.FlagGeneratingMindMap, models.FlagGeneratingQuiz}

	for {
		select {
		case <-ctx.Done():
			log.Info("🔄 [LOCK_CLEANUP] Generation Lock Cleanup Worker stopped")
			return
		case <-ticker.C:
			// Bọc mỗi lần chạy trong GoProtect để một panic không giết cả worker,
			// lần chạy tiếp theo vẫn diễn ra bình thường
			utility.GoProtect(func() {
				for _, jobFlag := range jobFlags {
					releasedCount, err := w.lockService.ReleaseStale(ctx, jobFlag, w.timeout)
					if err != nil {
						log.WithError(err).WithField("jobFlag", jobFlag).
							Error("🔄 [LOCK_CLEANUP] Failed to release stale locks")
						continue
					}
					if releasedCount > 0 {
						log.WithFields(map[string]interface{}{
							"jobFlag":       jobFlag,
							"releasedCount": releasedCount,
						}).Info("🔄 [LOCK_CLEANUP] Released stale generation locks")
					}
					// Nếu releasedCount = 0, không log (giảm log noise)
				}
			})
		}
	}
}
