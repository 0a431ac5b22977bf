package leave

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	types := r.Group("/leave-types")
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetTypes)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetTypeByID)
		types.POST("", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.CreateType)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.UpdateType)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.DeleteType)
	}

	policies := r.Group("/leave-policies")
	{
		policies.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetPolicies)
		policies.PUT("", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.UpsertPolicy)
		policies.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.DeletePolicy)
	}

	leaves := r.Group("/leaves")
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Create)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Cancel)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Delete)
	}

	balances := r.Group("/leave-balances")
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetBalances)
		balances.POST("/:id/adjust", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.AdjustBalance)
	}
}
