package app

import (
	"database/sql"

	"go-hrm/internal/attendance"
	"go-hrm/internal/attendancepolicy"
	"go-hrm/internal/bootstrap"
	"go-hrm/internal/config"
	"go-hrm/internal/employee"
	"go-hrm/internal/employeesalary"
	"go-hrm/internal/leave"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/payroll"
	"go-hrm/internal/payslip"
	"go-hrm/internal/rbac"
	"go-hrm/internal/rbac/infra"
	"go-hrm/internal/salarycomponent"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/shift"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// services is the object graph shared by the API and the consumers.
type services struct {
	shift            shift.Service
	attendancePolicy attendancepolicy.Service
	attendance       attendance.Service
	leave            leave.Service
	salaryComponent  salarycomponent.Service
	employeeSalary   employeesalary.Service
	employee         employee.Service
	payroll          payroll.Service
	payslip          payslip.Service
}

func buildServices(
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) *services {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	shiftRepo := shift.NewRepository(gormDB)
	policyRepo := attendancepolicy.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	componentRepo := salarycomponent.NewRepository(gormDB)
	salaryRepo := employeesalary.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)

	// --- Services ---
	employeeSalaryService := employeesalary.NewService(db, salaryRepo, componentRepo, logger)

	return &services{
		shift:            shift.NewService(db, shiftRepo, logger),
		attendancePolicy: attendancepolicy.NewService(db, policyRepo, logger),
		attendance: attendance.NewService(db, attendanceRepo, shiftRepo, policyRepo, attendance.Config{
			Location: cfg.App.Location,
		}, logger),
		leave:           leave.NewService(db, leaveRepo, attendance.NewLeaveStamper(attendanceRepo), logger),
		salaryComponent: salarycomponent.NewService(db, componentRepo, logger),
		employeeSalary:  employeeSalaryService,
		employee:        employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb, logger),
		payroll: payroll.NewService(db, payrollRepo, payroll.Deps{
			Employees:  employeeRepo,
			Salaries:   employeeSalaryService,
			Attendance: attendanceRepo,
			Leaves:     leaveRepo,
			Counter:    counterRepo,
			Outbox:     outboxRepo,
			Audit:      audit,
		}, payroll.Config{Mode: cfg.Payroll.ProcessMode}, logger),
		payslip: payslip.NewService(
			db,
			payslipRepo,
			payrollRepo,
			counterRepo,
			payslip.NewLocalStore(cfg.Payslip.StorageDir),
			payslip.Config{},
			logger,
		),
	}
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	svc *services,
	logger *zap.Logger,
) error {
	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBAC.ModelPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewRepository(gormDB), enforcer, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RateLimitByIP(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst),
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.ExtractUserID(),
		middleware.ContextLogger(logger),
	)
	{
		shift.RegisterRoutes(api, shift.NewHandler(svc.shift, logger), rbacService)
		attendancepolicy.RegisterRoutes(api, attendancepolicy.NewHandler(svc.attendancePolicy, logger), rbacService)
		attendance.RegisterRoutes(api, attendance.NewHandler(svc.attendance, rbacService, logger), rbacService)
		leave.RegisterRoutes(api, leave.NewHandler(svc.leave, rbacService, logger), rbacService)
		salarycomponent.RegisterRoutes(api, salarycomponent.NewHandler(svc.salaryComponent, logger), rbacService)
		employeesalary.RegisterRoutes(api, employeesalary.NewHandler(svc.employeeSalary, logger), rbacService)
		employee.RegisterRoutes(api, employee.NewHandler(svc.employee, logger), rbacService)
		payroll.RegisterRoutes(api, payroll.NewHandler(svc.payroll), rbacService, rdb)
		payslip.RegisterRoutes(api, payslip.NewHandler(svc.payslip, rbacService, logger), rbacService)
	}

	return nil
}
