// Package app assembles services and handlers into a runnable HTTP engine.
package app

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/handler"
	"github.com/noah-isme/edusync-api/internal/repository"
	"github.com/noah-isme/edusync-api/internal/router"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/config"
	"github.com/noah-isme/edusync-api/pkg/password"
)

// Dependencies are the infrastructure pieces chosen by the caller.
type Dependencies struct {
	Storage  repository.Storage
	Sessions repository.SessionStore
	Hasher   password.Hasher
	// Cache is optional. Report caching stays off without it.
	Cache   service.CacheRepository
	Metrics *service.MetricsService
	Logger  *zap.Logger
	// Tutor is optional and defaults to the echo tutor.
	Tutor service.Tutor
}

// App exposes the assembled engine and the services callers may need directly.
type App struct {
	Engine  *gin.Engine
	Auth    *service.AuthService
	Reports *service.ReportService
}

// New wires every service and handler on top of deps.
func New(cfg *config.Config, deps Dependencies) (*App, error) {
	if deps.Storage == nil || deps.Sessions == nil || deps.Hasher == nil {
		return nil, errors.New("app: storage, sessions and hasher are required")
	}
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = service.NewMetricsService()
	}

	validate := validator.New()
	store := deps.Storage

	sessions := service.NewSessionService(deps.Sessions, service.SessionConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
	})
	auth, err := service.NewAuthService(store, deps.Hasher, sessions, validate, logr, service.AuthConfig{
		RequireApproval: cfg.Auth.RequireApproval,
	})
	if err != nil {
		return nil, err
	}
	auth.UseMetrics(metrics)

	var cache *service.CacheService
	if deps.Cache != nil {
		cache = service.NewCacheService(deps.Cache, metrics, cfg.Reports.CacheTTL, logr, cfg.Reports.CacheEnabled)
	}
	reports := service.NewReportService(store, cache, metrics, logr)
	students := service.NewStudentService(store, validate, logr)

	h := router.Handlers{
		Auth: handler.NewAuthHandler(auth, handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		}),
		User:              handler.NewUserHandler(service.NewUserService(store, sessions, validate, logr)),
		Student:           handler.NewStudentHandler(students),
		Teacher:           handler.NewTeacherHandler(service.NewTeacherService(store, validate, logr)),
		Structure:         handler.NewStructureHandler(service.NewStructureService(store, validate)),
		Class:             handler.NewClassHandler(service.NewClassService(store, validate, logr), students),
		SubjectAssignment: handler.NewSubjectAssignmentHandler(service.NewSubjectAssignmentService(store, validate)),
		Attendance:        handler.NewAttendanceHandler(service.NewAttendanceService(store, validate, reports)),
		Coursework:        handler.NewCourseworkHandler(service.NewCourseworkService(store, validate, reports)),
		Communication:     handler.NewCommunicationHandler(service.NewCommunicationService(store, validate)),
		Resource:          handler.NewResourceHandler(service.NewResourceService(store, validate)),
		Planner:           handler.NewPlannerHandler(service.NewPlannerService(store, validate)),
		Tutor:             handler.NewTutorHandler(service.NewTutorService(deps.Tutor, validate)),
		Report:            handler.NewReportHandler(reports),
		Metrics:           handler.NewMetricsHandler(metrics, store),
	}

	engine := router.Setup(router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CookieName:     cfg.Session.CookieName,
		EnableMetrics:  cfg.EnableMetrics,
		EnableSwagger:  cfg.EnableSwagger,
	}, h, auth, metrics, logr)

	return &App{Engine: engine, Auth: auth, Reports: reports}, nil
}
