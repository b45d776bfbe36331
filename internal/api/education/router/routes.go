// Package router đăng ký các route thuộc domain education: CRUD các collection
// học tập, pipeline sinh sơ đồ tư duy / quiz và system health.
package router

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "you_education/internal/api/base/handler"
	eduhdl "you_education/internal/api/education/handler"
	"you_education/internal/api/middleware"
	apirouter "you_education/internal/api/router"
)

// Register đăng ký tất cả route education (system, CRUD, generation) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerCRUDRoutes(v1, r); err != nil {
		return err
	}
	if err := registerGenerationRoutes(v1); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerCRUDRoutes(router fiber.Router, r *apirouter.Router) error {
	userHandler, err := eduhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/user", userHandler, apirouter.ReadWriteConfig)

	chapterHandler, err := eduhdl.NewChapterHandler()
	if err != nil {
		return fmt.Errorf("failed to create chapter handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/chapter", chapterHandler, apirouter.ReadWriteConfig)

	mindMapHandler, err := eduhdl.NewMindMapHandler()
	if err != nil {
		return fmt.Errorf("failed to create mind map handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/mind-map", mindMapHandler, apirouter.ReadOnlyConfig)

	noteHandler, err := eduhdl.NewNoteHandler()
	if err != nil {
		return fmt.Errorf("failed to create note handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/note", noteHandler, apirouter.ReadWriteConfig)

	quizHandler, err := eduhdl.NewQuizHandler()
	if err != nil {
		return fmt.Errorf("failed to create quiz handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/quiz", quizHandler, apirouter.ReadOnlyConfig)
	return nil
}

func registerGenerationRoutes(router fiber.Router) error {
	generationHandler, err := eduhdl.NewGenerationHandler(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create generation handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/education", "POST", "/mind-maps/generate", []fiber.Handler{authMiddleware}, generationHandler.HandleGenerateMindMap)
	apirouter.RegisterRouteWithMiddleware(router, "/education", "POST", "/quizzes/generate", []fiber.Handler{authMiddleware}, generationHandler.HandleGenerateQuiz)
	apirouter.RegisterRouteWithMiddleware(router, "/education", "GET", "/generation-status", []fiber.Handler{authMiddleware}, generationHandler.HandleGenerationStatus)
	return nil
}
