package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"you_education/config"
	edumodels "you_education/internal/api/education/models"
	"you_education/internal/database"
	"you_education/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Chapters = "chapters"
	global.MongoDB_ColNames.MindMaps = "mind_maps"
	global.MongoDB_ColNames.Notes = "notes"
	global.MongoDB_ColNames.GenerationStatus = "generation_status"
	global.MongoDB_ColNames.Quizzes = "quizzes"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), edumodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Chapters), edumodels.Chapter{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.MindMaps), edumodels.MindMap{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Notes), edumodels.Note{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.GenerationStatus), edumodels.GenerationStatus{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Quizzes), edumodels.Quiz{})
}
