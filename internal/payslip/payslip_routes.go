package payslip

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	payslips := r.Group("/payslips")
	{
		payslips.GET("", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.GetAll)
		payslips.GET("/:id", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.GetByID)
		payslips.GET("/:id/download", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.Download)
		payslips.POST("/:id/mark-sent", middleware.RBACAuthorize(rbacService, "payslip", "generate"), handler.MarkSent)
		payslips.POST("/entries/:entry_id", middleware.RBACAuthorize(rbacService, "payslip", "generate"), handler.GenerateForEntry)
		payslips.POST("/runs/:run_id", middleware.RBACAuthorize(rbacService, "payslip", "generate"), handler.GenerateForRun)
	}
}
