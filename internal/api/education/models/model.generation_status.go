package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tên field BSON của các cờ sinh nội dung, dùng làm tên job cho JobLockService
const (
	FlagGeneratingMindMap = "isGeneratingMindMap"
	FlagGeneratingQuiz    = "isGeneratingQuiz"
)

// GenerationStatus theo dõi các tiến trình sinh nội dung đang chạy của một user.
// Mỗi user có đúng một bản ghi (unique theo userId); các cờ được bật/tắt
// bằng thao tác CAS để chống chạy song song.
type GenerationStatus struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID              primitive.ObjectID `json:"userId" bson:"userId" index:"unique"`
	IsGeneratingMindMap bool               `json:"isGeneratingMindMap" bson:"isGeneratingMindMap"`
	IsGeneratingQuiz    bool               `json:"isGeneratingQuiz" bson:"isGeneratingQuiz"`
	CreatedAt           int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64              `json:"updatedAt" bson:"updatedAt"`
}
