package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/redeescolar/school-portal/docs"
	"github.com/redeescolar/school-portal/internal/api/handler"
	"github.com/redeescolar/school-portal/internal/api/middleware"
	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/service"
	"github.com/redeescolar/school-portal/internal/infrastructure/config"
	mongodb "github.com/redeescolar/school-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/redeescolar/school-portal/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	codec := service.NewSessionCodec(cfg.JWTSecret, cfg.SessionTTL)
	userRepo := mongodb.NewUserRepository(db)
	studentRepo := mongodb.NewStudentRepository(db)
	gradeRepo := mongodb.NewGradeRepository(db)
	attendanceRepo := mongodb.NewAttendanceRepository(db)
	classRepo := mongodb.NewClassRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, codec, throttle, log)
	studentService := service.NewStudentService(studentRepo, log)
	gradeService := service.NewGradeService(gradeRepo, attendanceRepo, studentRepo, classRepo, log)
	reportService := service.NewReportService(studentRepo, gradeRepo, attendanceRepo, classRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	studentHandler := handler.NewStudentHandler(studentService)
	gradeHandler := handler.NewGradeHandler(gradeService)
	reportHandler := handler.NewReportHandler(reportService)
	portalHandler := handler.NewPortalHandler()

	apiAuth := middleware.Auth(codec)

	// --- Auth routes (public) ---
	e.POST("/api/v1/auth/login", authHandler.Login)
	e.POST("/api/v1/auth/logout", authHandler.Logout)

	// --- User management ---
	users := e.Group("/api/v1/users", apiAuth)
	users.POST("", authHandler.ProvisionUser, middleware.RequirePermission(domain.PermManageUsers))
	users.GET("", authHandler.ListUsers, middleware.RequireAnyPermission(
		domain.PermManageUsers, domain.PermManageSchoolUsers, domain.PermManageAccess))

	// --- Students, grades, attendance, reports ---
	v1 := e.Group("/api/v1", apiAuth)
	v1.POST("/students", studentHandler.Create, middleware.RequirePermission(domain.PermManageStudents))
	v1.GET("/students", studentHandler.List, middleware.RequireAnyPermission(
		domain.PermManageStudents, domain.PermViewSchoolData, domain.PermViewMunicipalData))
	v1.GET("/students/:id", studentHandler.Get, middleware.RequireAnyPermission(
		domain.PermManageStudents, domain.PermViewSchoolData, domain.PermViewStudentInfo))
	v1.GET("/students/:id/grades", gradeHandler.ListStudentGrades, middleware.RequireAnyPermission(
		domain.PermManageGrades, domain.PermViewSchoolData, domain.PermViewStudentInfo))
	v1.POST("/grades", gradeHandler.RecordGrade, middleware.RequirePermission(domain.PermManageGrades))
	v1.POST("/attendance", gradeHandler.RecordAttendance, middleware.RequirePermission(domain.PermManageAttendance))
	v1.GET("/classes", gradeHandler.ListClasses, middleware.RequireAnyPermission(
		domain.PermManageClasses, domain.PermViewSchoolData, domain.PermViewMunicipalData))
	v1.GET("/classes/:id/attendance", gradeHandler.ListClassAttendance, middleware.RequireAnyPermission(
		domain.PermManageAttendance, domain.PermViewSchoolData))
	v1.GET("/reports/report-card", reportHandler.ReportCard, middleware.RequireAnyPermission(
		domain.PermViewSchoolData, domain.PermViewStudentInfo, domain.PermManageStudents))
	v1.GET("/reports/class-report", reportHandler.ClassReport, middleware.RequireAnyPermission(
		domain.PermViewSchoolData, domain.PermManageGrades))

	// --- Portal navigation (gated) ---
	portal := e.Group("", middleware.Gate(codec, log))
	portal.GET("/login", portalHandler.Login)
	portal.GET("/admin*", portalHandler.Area("admin"))
	portal.GET("/support*", portalHandler.Area("support"))
	portal.GET("/municipal*", portalHandler.Area("municipal"))
	portal.GET("/school*", portalHandler.Area("school"))
	portal.GET("/teacher*", portalHandler.Area("teacher"))
	portal.GET("/guardian*", portalHandler.Area("guardian"))

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
