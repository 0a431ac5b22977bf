package attendance

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	attendances := r.Group("/attendances")
	{
		attendances.POST("/clock-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.ClockIn)
		attendances.POST("/clock-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.ClockOut)
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/:id", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetByID)
		attendances.POST("/regularize", middleware.RBACAuthorize(rbacService, "attendance", "manage"), h.Regularize)
		attendances.PUT("/:id/status", middleware.RBACAuthorize(rbacService, "attendance", "manage"), h.SetStatus)
		attendances.POST("/:id/process", middleware.RBACAuthorize(rbacService, "attendance", "manage"), h.Process)
	}
}
