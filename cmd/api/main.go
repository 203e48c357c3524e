package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/showroom-hq/backoffice-go/internal/config"
	"github.com/showroom-hq/backoffice-go/internal/domain/checklist"
	appHTTP "github.com/showroom-hq/backoffice-go/internal/handler/http"
	checklistClient "github.com/showroom-hq/backoffice-go/internal/pkg/checklist"
	"github.com/showroom-hq/backoffice-go/internal/pkg/database"
	"github.com/showroom-hq/backoffice-go/internal/pkg/jwt"
	"github.com/showroom-hq/backoffice-go/internal/repository/postgresql"
	attendanceService "github.com/showroom-hq/backoffice-go/internal/service/attendance"
	penaltyService "github.com/showroom-hq/backoffice-go/internal/service/penalty"
	salaryService "github.com/showroom-hq/backoffice-go/internal/service/salary"
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

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	penaltyRepo := postgresql.NewPenaltyRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var notifier checklist.Notifier = checklistClient.NopNotifier{}
	if cfg.Checklist.BaseURL != "" {
		timeout, err := time.ParseDuration(cfg.Checklist.Timeout)
		if err != nil {
			fmt.Println("Invalid CHECKLIST_TIMEOUT:", err)
			return
		}
		notifier = checklistClient.NewClient(cfg.Checklist.BaseURL, timeout)
	}

	engine := penaltyService.NewEngine()
	applier := penaltyService.NewApplier(engine, penaltyRepo, settingsRepo, attendanceRepo)
	settingsService := penaltyService.NewSettingsService(settingsRepo)
	lifecycleService := penaltyService.NewLifecycleService(penaltyRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, applier, lifecycleService, notifier)
	calculator := salaryService.NewCalculator(attendanceRepo, penaltyRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	penaltyHandler := appHTTP.NewPenaltyHandler(lifecycleService)
	settingsHandler := appHTTP.NewSettingsHandler(settingsService)
	salaryHandler := appHTTP.NewSalaryHandler(calculator)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		penaltyHandler,
		settingsHandler,
		salaryHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
