package payroll

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts /payroll-runs. POSTs that start work go through the
// idempotency middleware when rdb is given.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	guard := []gin.HandlerFunc{}
	if len(rdb) > 0 && rdb[0] != nil {
		guard = append(guard, middleware.Idempotency(rdb[0]))
	}
	with := func(h ...gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guard...), h...)
	}

	runs := r.Group("/payroll-runs")
	{
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetById)
		runs.GET("/:id/entries", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetEntries)
		runs.GET("/:id/entries/:entry_id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetEntry)
		runs.GET("/:id/export", middleware.RBACAuthorize(rbacService, "payroll", "export"), handler.Export)
		runs.POST("", with(middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Create)...)
		runs.POST("/:id/process", with(middleware.RBACAuthorize(rbacService, "payroll", "process"), handler.Process)...)
		runs.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Delete)
	}
}
