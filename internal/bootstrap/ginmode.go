package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode switches gin to release mode outside development so request
// logs stay quiet in production.
func SetGinMode(env string) {
	switch env {
	case "production", "staging":
		gin.SetMode(gin.ReleaseMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
