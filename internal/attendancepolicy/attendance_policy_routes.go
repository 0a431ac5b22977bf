package attendancepolicy

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	policies := r.Group("/attendance-policies")
	policies.Use(middleware.RBACAuthorize(rbacService, "attendance_policy", "manage"))
	{
		policies.GET("", h.GetAll)
		policies.GET("/:id", h.GetByID)
		policies.POST("", h.Create)
		policies.PUT("/:id", h.Update)
		policies.DELETE("/:id", h.Delete)
	}
}
