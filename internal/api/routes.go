package api

import (
	"hospital/internal/entity/db"

	"github.com/gin-gonic/gin"
)

// multipartOverhead 为 multipart 边界和头部预留的空间
const multipartOverhead = 64 << 10

// NewRouter 创建带全部中间件和路由的 gin 引擎
func (h *HTTPHandler) NewRouter() *gin.Engine {
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware(h.cfg.CORSAllowOrigins))
	r.Use(gin.Recovery())
	r.Use(BodyLimitMiddleware(h.cfg.MaxBodyBytes, map[string]int64{
		"/api/posts/:id/attachment": h.cfg.MaxAttachmentBytes + multipartOverhead,
	}))

	r.GET("/health", h.Health)

	apiGroup := r.Group("/api")
	apiGroup.POST("/register", h.Register)
	apiGroup.POST("/login", h.Login)

	protected := apiGroup.Group("")
	protected.Use(h.AuthMiddleware())
	protected.GET("/me", h.Me)
	protected.GET("/doctors", h.ListDoctors)

	appointments := protected.Group("/appointments")
	appointments.POST("", h.RequireRoles(db.UserRolePatient), h.CreateAppointment)
	appointments.GET("/slots", h.ListAppointmentSlots)
	appointments.GET("/patient/:id", h.RequireRoles(db.UserRolePatient), h.ListPatientAppointments)
	appointments.PUT("/cancel/:id", h.RequireRoles(db.UserRolePatient), h.CancelAppointment)
	appointments.PUT("/change/:id", h.RequireRoles(db.UserRolePatient), h.ChangeAppointment)
	appointments.PUT("/:id", h.RequireRoles(db.UserRoleDoctor), h.UpdateTreatment)

	doctor := protected.Group("/doctor")
	doctor.Use(h.RequireRoles(db.UserRoleDoctor))
	doctor.GET("/appointments", h.DoctorAppointments)
	doctor.GET("/patients/search", h.SearchPatients)
	doctor.GET("/patient/:id", h.PatientDetail)

	posts := protected.Group("/posts")
	posts.GET("", h.ListPosts)
	posts.POST("", h.CreatePost)
	posts.GET("/:id", h.GetPost)
	posts.PUT("/:id", h.UpdatePost)
	posts.DELETE("/:id", h.DeletePost)
	posts.POST("/:id/attachment", h.UploadPostAttachment)

	userAdmin := protected.Group("/users")
	userAdmin.Use(h.RequireAdmin())
	userAdmin.GET("", h.ListUsers)
	userAdmin.POST("", h.CreateUser)
	userAdmin.PUT("/:id", h.UpdateUser)
	userAdmin.DELETE("/:id", h.DeleteUser)

	h.mountLocalFiles(r)
	return r
}
