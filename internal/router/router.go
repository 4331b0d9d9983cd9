// Package router assembles the HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/handler"
	"github.com/noah-isme/edusync-api/internal/middleware"
	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/edusync-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/edusync-api/pkg/middleware/requestid"
)

// Options configures Setup.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	CookieName     string
	EnableMetrics  bool
	EnableSwagger  bool
}

// Handlers groups every HTTP handler.
type Handlers struct {
	Auth              *handler.AuthHandler
	User              *handler.UserHandler
	Student           *handler.StudentHandler
	Teacher           *handler.TeacherHandler
	Structure         *handler.StructureHandler
	Class             *handler.ClassHandler
	SubjectAssignment *handler.SubjectAssignmentHandler
	Attendance        *handler.AttendanceHandler
	Coursework        *handler.CourseworkHandler
	Communication     *handler.CommunicationHandler
	Resource          *handler.ResourceHandler
	Planner           *handler.PlannerHandler
	Tutor             *handler.TutorHandler
	Report            *handler.ReportHandler
	Metrics           *handler.MetricsHandler
}

// Setup builds the gin engine. auth resolves sessions and authorizes roles.
func Setup(opts Options, h Handlers, auth *service.AuthService, metrics *service.MetricsService, logr *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	if opts.EnableMetrics {
		r.Use(middleware.Metrics(metrics, "/metrics"))
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if opts.EnableSwagger {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admin := middleware.RequireRoles(auth, models.RoleAdmin)
	staff := middleware.RequireRoles(auth, models.RoleAdmin, models.RoleTeacher)

	api := r.Group(opts.APIPrefix)
	{
		public := api.Group("/auth")
		{
			public.POST("/register", h.Auth.Register)
			public.POST("/login", h.Auth.Login)
		}

		authed := api.Group("")
		authed.Use(middleware.Session(auth, opts.CookieName), middleware.RequireRoles(auth))
		{
			authed.POST("/auth/logout", h.Auth.Logout)
			authed.GET("/auth/me", h.Auth.Me)
			authed.POST("/auth/change-password", h.Auth.ChangePassword)

			adminGroup := authed.Group("/admin", admin)
			{
				adminGroup.GET("/pending-users", h.Auth.Pending)
				adminGroup.POST("/approve-user/:id", h.Auth.Approve)
				adminGroup.POST("/reject-user/:id", h.Auth.Reject)
			}

			users := authed.Group("/users")
			{
				users.GET("", staff, h.User.List)
				users.GET("/:id", h.User.Get)
				users.POST("", admin, h.Auth.CreateUser)
				users.PATCH("/:id", admin, h.User.Update)
				users.DELETE("/:id", admin, h.User.Delete)
			}

			students := authed.Group("/students")
			{
				students.GET("", h.Student.List)
				students.GET("/:id", h.Student.Get)
				students.POST("", admin, h.Student.Create)
				students.PATCH("/:id", admin, h.Student.Update)
				students.DELETE("/:id", admin, h.Student.Delete)
			}

			teachers := authed.Group("/teachers")
			{
				teachers.GET("", h.Teacher.List)
				teachers.GET("/:id", h.Teacher.Get)
				teachers.POST("", admin, h.Teacher.Create)
				teachers.PATCH("/:id", admin, h.Teacher.Update)
				teachers.DELETE("/:id", admin, h.Teacher.Delete)
			}

			branches := authed.Group("/branches")
			{
				branches.GET("", h.Structure.ListBranches)
				branches.GET("/:id", h.Structure.GetBranch)
				branches.POST("", admin, h.Structure.CreateBranch)
				branches.PATCH("/:id", admin, h.Structure.UpdateBranch)
				branches.DELETE("/:id", admin, h.Structure.DeleteBranch)
			}

			sections := authed.Group("/sections")
			{
				sections.GET("", h.Structure.ListSections)
				sections.GET("/:id", h.Structure.GetSection)
				sections.POST("", admin, h.Structure.CreateSection)
				sections.PATCH("/:id", admin, h.Structure.UpdateSection)
				sections.DELETE("/:id", admin, h.Structure.DeleteSection)
			}

			subjects := authed.Group("/subjects")
			{
				subjects.GET("", h.Structure.ListSubjects)
				subjects.GET("/:id", h.Structure.GetSubject)
				subjects.POST("", admin, h.Structure.CreateSubject)
				subjects.PATCH("/:id", admin, h.Structure.UpdateSubject)
				subjects.DELETE("/:id", admin, h.Structure.DeleteSubject)
			}

			classes := authed.Group("/classes")
			{
				classes.GET("", h.Class.List)
				classes.GET("/:id", h.Class.Get)
				classes.GET("/:id/students", h.Class.Students)
				classes.POST("", admin, h.Class.Create)
				classes.PATCH("/:id", admin, h.Class.Update)
				classes.DELETE("/:id", admin, h.Class.Delete)
			}

			sa := authed.Group("/subject-assignments")
			{
				sa.GET("", h.SubjectAssignment.List)
				sa.GET("/:id", h.SubjectAssignment.Get)
				sa.POST("", admin, h.SubjectAssignment.Create)
				sa.PATCH("/:id", admin, h.SubjectAssignment.Update)
				sa.DELETE("/:id", admin, h.SubjectAssignment.Delete)
			}

			attendance := authed.Group("/attendance")
			{
				attendance.GET("", h.Attendance.List)
				attendance.GET("/:id", h.Attendance.Get)
				attendance.POST("", staff, h.Attendance.Record)
				attendance.PATCH("/:id", staff, h.Attendance.Update)
				attendance.DELETE("/:id", staff, h.Attendance.Delete)
			}

			assignments := authed.Group("/assignments")
			{
				assignments.GET("", h.Coursework.ListAssignments)
				assignments.GET("/:id", h.Coursework.GetAssignment)
				assignments.POST("", staff, h.Coursework.CreateAssignment)
				assignments.PATCH("/:id", staff, h.Coursework.UpdateAssignment)
				assignments.DELETE("/:id", staff, h.Coursework.DeleteAssignment)
			}

			submissions := authed.Group("/submissions")
			{
				submissions.GET("", h.Coursework.ListSubmissions)
				submissions.GET("/:id", h.Coursework.GetSubmission)
				submissions.POST("", h.Coursework.Submit)
				submissions.PATCH("/:id", staff, h.Coursework.UpdateSubmission)
				submissions.DELETE("/:id", staff, h.Coursework.DeleteSubmission)
			}

			messages := authed.Group("/messages")
			{
				messages.GET("", h.Communication.ListMessages)
				messages.POST("", h.Communication.Send)
				messages.PATCH("/:id/read", h.Communication.MarkRead)
				messages.DELETE("/:id", h.Communication.DeleteMessage)
			}

			announcements := authed.Group("/announcements")
			{
				announcements.GET("", h.Communication.ListAnnouncements)
				announcements.GET("/:id", h.Communication.GetAnnouncement)
				announcements.POST("", staff, h.Communication.Announce)
				announcements.PATCH("/:id", staff, h.Communication.UpdateAnnouncement)
				announcements.DELETE("/:id", staff, h.Communication.DeleteAnnouncement)
			}

			resources := authed.Group("/resources")
			{
				resources.GET("", h.Resource.ListResources)
				resources.GET("/:id", h.Resource.GetResource)
				resources.POST("", staff, h.Resource.CreateResource)
				resources.PATCH("/:id", staff, h.Resource.UpdateResource)
				resources.DELETE("/:id", staff, h.Resource.DeleteResource)
			}

			docs := authed.Group("/student-documents")
			{
				docs.GET("", h.Resource.ListDocuments)
				docs.POST("", h.Resource.AttachDocument)
				docs.DELETE("/:id", admin, h.Resource.DeleteDocument)
			}

			timetable := authed.Group("/timetable")
			{
				timetable.GET("", h.Planner.Timetable)
				timetable.GET("/:id", h.Planner.GetEntry)
				timetable.POST("", admin, h.Planner.CreateEntry)
				timetable.PATCH("/:id", admin, h.Planner.UpdateEntry)
				timetable.DELETE("/:id", admin, h.Planner.DeleteEntry)
			}

			tasks := authed.Group("/tasks")
			{
				tasks.GET("", h.Planner.Tasks)
				tasks.POST("", h.Planner.CreateTask)
				tasks.PATCH("/:id", h.Planner.UpdateTask)
				tasks.DELETE("/:id", h.Planner.DeleteTask)
			}

			ai := authed.Group("/ai")
			{
				ai.POST("/summarize", h.Tutor.Summarize)
				ai.POST("/question", h.Tutor.Question)
			}

			reports := authed.Group("/reports", staff)
			{
				reports.GET("/attendance-stats", h.Report.AttendanceStats)
				reports.GET("/assignments/:id/stats", h.Report.AssignmentStats)
				reports.GET("/classes/:id/performance", h.Report.ClassPerformance)
				reports.GET("/classes/:id/attendance/export", h.Report.ExportClassAttendance)
			}
		}
	}

	return r
}
