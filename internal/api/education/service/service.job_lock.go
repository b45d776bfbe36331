package edusvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "you_education/internal/api/base/service"
	models "you_education/internal/api/education/models"
	"you_education/internal/common"
	"you_education/internal/global"
)

// JobLockService quản lý các cờ sinh nội dung trong collection generation_status.
// Một cờ là một lock theo user: Acquire bật cờ bằng CAS, Release tắt cờ.
// Cùng một service phục vụ cả cờ sinh sơ đồ tư duy lẫn cờ sinh quiz.
type JobLockService struct {
	*basesvc.BaseServiceMongoImpl[models.GenerationStatus]
}

// NewJobLockService tạo mới JobLockService
func NewJobLockService() (*JobLockService, error) {
	statusCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.GenerationStatus)
	if !exist {
		return nil, fmt.Errorf("failed to get generation_status collection: %v", common.ErrNotFound)
	}

	return &JobLockService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.GenerationStatus](statusCollection),
	}, nil
}

// Acquire bật cờ jobFlag cho user bằng một thao tác CAS duy nhất:
// chỉ khớp bản ghi đang tắt cờ, upsert khi user chưa có bản ghi trạng thái.
// Nếu cờ đang bật, filter không khớp và upsert đâm vào index unique của userId,
// sinh lỗi duplicate key - đó chính là tín hiệu trùng tiến trình.
func (s *JobLockService) Acquire(ctx context.Context, userID string, jobFlag string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("userId không hợp lệ: %w", common.ErrInvalidFormat)
	}

	now := time.Now().UnixMilli()
	filter := bson.M{
		"userId": oid,
		jobFlag:  bson.M{"$ne": true},
	}
	update := bson.M{
		"$set":         bson.M{jobFlag: true, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var status models.GenerationStatus
	err = s.Collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&status)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrGenerationInProgress
		}
		return common.ConvertMongoError(err)
	}
	return nil
}

// Release tắt cờ jobFlag cho user. An toàn khi gọi nhiều lần:
// không có bản ghi hoặc cờ đã tắt đều không phải lỗi.
func (s *JobLockService) Release(ctx context.Context, userID string, jobFlag string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("userId không hợp lệ: %w", common.ErrInvalidFormat)
	}

	update := bson.M{
		"$set": bson.M{jobFlag: false, "updatedAt": time.Now().UnixMilli()},
	}
	_, err = s.Collection().UpdateOne(ctx, bson.M{"userId": oid}, update)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// ReleaseStale tắt các cờ jobFlag bị treo: đang bật nhưng updatedAt đã quá hạn.
// Dùng cho worker dọn lock khi tiến trình chết giữa chừng.
func (s *JobLockService) ReleaseStale(ctx context.Context, jobFlag string, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UnixMilli()
	filter := bson.M{
		jobFlag:     true,
		"updatedAt": bson.M{"$lt": cutoff},
	}
	update := bson.M{
		"$set": bson.M{jobFlag: false, "updatedAt": time.Now().UnixMilli()},
	}

	result, err := s.Collection().UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.ModifiedCount, nil
}

// StatusOfUser đọc trạng thái sinh nội dung hiện tại của user.
// User chưa có bản ghi được coi là không chạy tiến trình nào.
func (s *JobLockService) StatusOfUser(ctx context.Context, userID string) (*models.GenerationStatus, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("userId không hợp lệ: %w", common.ErrInvalidFormat)
	}

	var status models.GenerationStatus
	err = s.Collection().FindOne(ctx, bson.M{"userId": oid}).Decode(&status)
	if err == mongo.ErrNoDocuments {
		return &models.GenerationStatus{UserID: oid}, nil
	}
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return &status, nil
}

// BoundJobLock là JobLockService gắn sẵn một cờ, dùng làm lock cho pipeline
type BoundJobLock struct {
	locks   *JobLockService
	jobFlag string
}

// ForJob trả về lock gắn với một cờ cụ thể
func (s *JobLockService) ForJob(jobFlag string) *BoundJobLock {
	return &BoundJobLock{locks: s, jobFlag: jobFlag}
}

// Acquire giành lock cho user trên cờ đã gắn
func (l *BoundJobLock) Acquire(ctx context.Context, userID string) error {
	return l.locks.Acquire(ctx, userID, l.jobFlag)
}

// Release trả lock cho user trên cờ đã gắn
func (l *BoundJobLock) Release(ctx context.Context, userID string) error {
	return l.locks.Release(ctx, userID, l.jobFlag)
}
