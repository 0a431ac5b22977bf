package database

import (
	"fmt"

	"go-hrm/internal/attendance"
	"go-hrm/internal/attendancepolicy"
	"go-hrm/internal/employee"
	"go-hrm/internal/employeesalary"
	"go-hrm/internal/leave"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/payroll"
	"go-hrm/internal/payslip"
	"go-hrm/internal/rbac"
	"go-hrm/internal/salarycomponent"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/shift"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table the service owns, parents first.
func Models() []any {
	return []any{
		&employee.Employee{},
		&shift.Shift{},
		&attendancepolicy.AttendancePolicy{},
		&attendance.AttendanceRecord{},
		&leave.LeaveType{},
		&leave.LeavePolicy{},
		&leave.LeaveApplication{},
		&leave.LeaveBalance{},
		&salarycomponent.SalaryComponent{},
		&employeesalary.EmployeeSalary{},
		&payroll.PayrollRun{},
		&payroll.PayrollEntry{},
		&payslip.Payslip{},
		&rbac.Role{},
		&rbac.Permission{},
		&rbac.RolePermission{},
		&rbac.EmployeeRole{},
		&counter.CompanyCounter{},
		&kafka.OutboxEventModel{},
	}
}

// Migrate creates or alters all tables and seeds the permission catalogue.
// Running it twice is a no-op.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	log := logger.Named("database.migrate")

	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("auto migrate %T: %w", m, err)
		}
	}
	log.Info("schema migrated", zap.Int("tables", len(Models())))

	if err := rbac.NewRepository(db).SeedPermissions(rbac.DefaultPermissions); err != nil {
		return fmt.Errorf("seed permissions: %w", err)
	}
	log.Info("permissions seeded", zap.Int("count", len(rbac.DefaultPermissions)))
	return nil
}
