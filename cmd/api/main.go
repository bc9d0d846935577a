package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shifttracker/shifttracker-backend-go/internal/config"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
	appHTTP "github.com/shifttracker/shifttracker-backend-go/internal/handler/http"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/cron"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/database"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/jwt"
	"github.com/shifttracker/shifttracker-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shifttracker/shifttracker-backend-go/internal/service/attendance"
	authService "github.com/shifttracker/shifttracker-backend-go/internal/service/auth"
	dashboardService "github.com/shifttracker/shifttracker-backend-go/internal/service/dashboard"
	employeeService "github.com/shifttracker/shifttracker-backend-go/internal/service/employee"
	leaveService "github.com/shifttracker/shifttracker-backend-go/internal/service/leave"
	scheduleService "github.com/shifttracker/shifttracker-backend-go/internal/service/schedule"
	timesheetService "github.com/shifttracker/shifttracker-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns))
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	orgRepo := postgresql.NewOrganizationRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	templateRepo := postgresql.NewShiftTemplateRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	rules := ruleConfig(cfg.Timesheet)
	engine := timesheetService.NewEngine(rules)

	authSvc := authService.NewAuthService(db, userRepo, orgRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	scheduleSvc := scheduleService.NewScheduleService(templateRepo, assignmentRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, breakRepo, assignmentRepo, orgRepo)
	timesheetSvc := timesheetService.NewTimesheetService(attendanceRepo, engine)
	leaveSvc := leaveService.NewLeaveService(leaveRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, attendanceRepo, breakRepo, leaveRepo, engine)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		employeeHandler,
		scheduleHandler,
		attendanceHandler,
		timesheetHandler,
		leaveHandler,
		dashboardHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, breakRepo, rules).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown: ", err)
	}
}

func ruleConfig(ts config.TimesheetConfig) timesheet.RuleConfig {
	minutes := func(v float64) time.Duration { return time.Duration(v * float64(time.Minute)) }
	hours := func(v float64) time.Duration { return time.Duration(v * float64(time.Hour)) }

	return timesheet.RuleConfig{
		LateGrace:        minutes(ts.LateGraceMinutes),
		NoShowAfter:      minutes(ts.NoShowMinutes),
		EarlyLeaveGrace:  minutes(ts.EarlyLeaveMinutes),
		BreakRequired:    hours(ts.BreakRequiredHours),
		DefaultMaxBreak:  hours(ts.DefaultMaxBreakHours),
		StandardWorkday:  hours(ts.StandardWorkdayHours),
		OvertimeEscalate: hours(ts.OvertimeMediumHours),
	}
}
