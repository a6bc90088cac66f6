package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nguyenthuong372100/WSP-internal/internal/config"
	appHTTP "github.com/nguyenthuong372100/WSP-internal/internal/handler/http"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/cron"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/database"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/jwt"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/vietcombank"
	"github.com/nguyenthuong372100/WSP-internal/internal/repository/postgresql"
	attendanceService "github.com/nguyenthuong372100/WSP-internal/internal/service/attendance"
	"github.com/nguyenthuong372100/WSP-internal/internal/service/billing"
	payslipService "github.com/nguyenthuong372100/WSP-internal/internal/service/payslip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	rateFeed := vietcombank.NewClient(cfg.RateFeed.URL, cfg.RateFeed.Timeout)

	billEmitter := billing.NewBillEmitter(ledgerRepo, employeeRepo, cfg.Payroll)
	payslipSvc := payslipService.NewPayslipService(
		db,
		payslipRepo,
		attendanceRepo,
		employeeRepo,
		reportRepo,
		billEmitter,
		rateFeed,
		cfg.Payroll,
	)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, payslipRepo, employeeRepo, payslipSvc)

	payslipHandler := appHTTP.NewPayslipHandler(payslipSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("rate-feed-refresh", cfg.RateFeed.RefreshInterval, func(ctx context.Context) error {
		return rateFeed.Refresh(ctx)
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, payslipHandler, attendanceHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
