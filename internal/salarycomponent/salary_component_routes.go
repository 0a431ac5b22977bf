package salarycomponent

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	components := r.Group("/salary-components")
	{
		components.GET("", middleware.RBACAuthorize(rbacService, "salary_component", "read"), h.GetAll)
		components.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_component", "read"), h.GetByID)
		components.POST("", middleware.RBACAuthorize(rbacService, "salary_component", "manage"), h.Create)
		components.PUT("/:id", middleware.RBACAuthorize(rbacService, "salary_component", "manage"), h.Update)
		components.DELETE("/:id", middleware.RBACAuthorize(rbacService, "salary_component", "manage"), h.Delete)
	}
}
