package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"you_education/internal/common"
	"you_education/internal/global"
	"you_education/internal/logger"
)

// TokenClaims là payload của JWT do hệ thống phát hành
type TokenClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// AuthMiddleware middleware xác thực JWT cho Fiber.
// Token được truyền qua header Authorization dạng "Bearer <token>".
// Sau khi xác thực thành công, user_id được lưu vào Locals để handler sử dụng.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		tokenStr := parts[1]

		// Parse và verify chữ ký token
		claims := &TokenClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, common.ErrTokenInvalid
			}
			return []byte(global.ServerConfig.JwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				HandleErrorResponse(c, common.ErrTokenExpired)
				return nil
			}
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token verification failed")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}
		if !token.Valid || claims.UserID == "" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// userId trong claims phải là ObjectID hợp lệ
		if !primitive.IsValidObjectID(claims.UserID) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":    c.Path(),
				"user_id": claims.UserID,
			}).Warn("❌ [AUTH] Invalid userId in token claims")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", claims.UserID)

		return c.Next()
	}
}
