package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"you_education/config"
	"you_education/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users            string // Tên collection cho người dùng
	Chapters         string // Tên collection cho chương học
	MindMaps         string // Tên collection cho sơ đồ tư duy
	Notes            string // Tên collection cho ghi chú
	GenerationStatus string // Tên collection cho trạng thái sinh nội dung theo người dùng
	Quizzes          string // Tên collection cho bộ câu hỏi trắc nghiệm
}

// Các biến toàn cục
var Validate *validator.Validate                                             // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                            // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                       // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)   // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
