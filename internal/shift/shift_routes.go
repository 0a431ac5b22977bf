package shift

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	shifts := r.Group("/shifts")
	{
		shifts.GET("", middleware.RBACAuthorize(rbacService, "shift", "read"), h.GetAll)
		shifts.GET("/:id", middleware.RBACAuthorize(rbacService, "shift", "read"), h.GetByID)
		shifts.POST("", middleware.RBACAuthorize(rbacService, "shift", "manage"), h.Create)
		shifts.PUT("/:id", middleware.RBACAuthorize(rbacService, "shift", "manage"), h.Update)
		shifts.DELETE("/:id", middleware.RBACAuthorize(rbacService, "shift", "manage"), h.Delete)
	}
}
