package employeesalary

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	salaries := r.Group("/employee-salaries")
	{
		salaries.GET("",
			middleware.RBACAuthorize(rbacService, "employee_salary", "read"),
			handler.GetAll,
		)
		salaries.GET("/active/:employee_id",
			middleware.RBACAuthorize(rbacService, "employee_salary", "read"),
			handler.GetActiveBreakdown,
		)
		salaries.GET("/:id",
			middleware.RBACAuthorize(rbacService, "employee_salary", "read"),
			handler.GetById,
		)
		salaries.GET("/:id/breakdown",
			middleware.RBACAuthorize(rbacService, "employee_salary", "read"),
			handler.GetBreakdown,
		)
		salaries.POST("",
			middleware.RBACAuthorize(rbacService, "employee_salary", "manage"),
			handler.Create,
		)
		salaries.POST("/:id/activate",
			middleware.RBACAuthorize(rbacService, "employee_salary", "manage"),
			handler.Activate,
		)
		salaries.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "employee_salary", "manage"),
			handler.Delete,
		)
	}
}
