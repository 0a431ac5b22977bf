package payslip

import (
	"fmt"
	"io"
	"net/http"

	"go-hrm/internal/middleware"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rbac    middleware.RBACService
	logger  *zap.Logger
}

func NewHandler(service Service, rbacService middleware.RBACService, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payslip.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.handler")
	}
	return &Handler{service: service, rbac: rbacService, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// canSeeAll reports whether the actor may read payslips of other employees.
func (h *Handler) canSeeAll(c *gin.Context) bool {
	return middleware.Can(c, h.rbac, "payslip", "generate")
}

func (h *Handler) GenerateForEntry(c *gin.Context) {
	resp, err := h.service.GenerateForEntry(c.Request.Context(), c.GetString("company_id"), getActorID(c), c.Param("entry_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GenerateForRun(c *gin.Context) {
	resp, err := h.service.GenerateForRun(c.Request.Context(), c.GetString("company_id"), getActorID(c), c.Param("run_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filterReq GetPayslipsFilterRequest
	if err := c.ShouldBindQuery(&filterReq); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}
	if !h.canSeeAll(c) {
		filterReq.EmployeeID = getActorID(c)
	}

	resp, err := h.service.GetAll(c.Request.Context(), c.GetString("company_id"), filterReq)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	items, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if resp.EmployeeID != getActorID(c) && !h.canSeeAll(c) {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Download(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	id := c.Param("id")

	meta, err := h.service.GetByID(ctx, companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if meta.EmployeeID != getActorID(c) && !h.canSeeAll(c) {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	file, filename, err := h.service.Download(ctx, companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		h.logger.Warn("stream payslip failed", zap.String("payslip_id", id), zap.Error(err))
	}
}

func (h *Handler) MarkSent(c *gin.Context) {
	resp, err := h.service.MarkSent(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
