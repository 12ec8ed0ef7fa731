package routes

import (
	"baseballnote/controllers"
	"baseballnote/middlewares"
	"baseballnote/models"
	"baseballnote/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the services the router wires into controllers.
type Deps struct {
	Title   string
	Version string
	Debug   bool

	Auth      *services.AuthService
	Users     *services.UserService
	Profiles  *services.ProfileService
	Notes     *services.NoteService
	Trainings *services.TrainingService
	Comments  *services.CommentService
	Alerts    *services.AlertBus
	Push      *services.PushService
	Hub       *services.RealtimeHub
	Export    *services.ExportService
	Analytics *services.AnalyticsService

	AuthLimiter    *middlewares.IPRateLimiter
	AllowedOrigins []string

	// UploadDir is served under /uploads when media is kept on local disk.
	UploadDir string

	Logger *zap.Logger
}

func SetupRouter(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = zap.L()
	}

	r := gin.New()
	r.Use(middlewares.RequestLogger(log))
	r.MaxMultipartMemory = 8 << 20

	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	info := controllers.NewInfoController(d.Title, d.Version)
	authC := controllers.NewAuthController(d.Auth, d.Users)
	profileC := controllers.NewProfileController(d.Profiles)
	noteC := controllers.NewNoteController(d.Notes)
	trainingC := controllers.NewTrainingController(d.Trainings)
	commentC := controllers.NewCommentController(d.Comments, d.Notes)
	alertC := controllers.NewAlertController(d.Alerts)
	deviceC := controllers.NewDeviceController(d.Push)
	rtC := controllers.NewRealtimeController(d.Hub, d.AllowedOrigins)
	exportC := controllers.NewExportController(d.Export)
	statsC := controllers.NewAnalyticsController(d.Analytics)

	limiter := d.AuthLimiter
	if limiter == nil {
		limiter = middlewares.NewIPRateLimiter(1, 5)
	}
	requireAuth := middlewares.AuthMiddleware(d.Auth)
	coachOnly := middlewares.RequireRole(models.RoleCoach)

	r.GET("/", info.Root)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/users", authC.CreateUser)
		auth.POST("/login", middlewares.RateLimit(limiter), authC.Login)
		auth.POST("/password/forgot", middlewares.RateLimit(limiter), authC.ForgotPassword)
		auth.POST("/password/reset", middlewares.RateLimit(limiter), authC.ResetPassword)
	}

	// Protected auth routes
	authed := r.Group("/auth")
	authed.Use(requireAuth)
	{
		authed.GET("/verify", authC.Verify)
		authed.POST("/logout", authC.Logout)
		authed.GET("/users/firebase/:uid", authC.GetUserByFirebaseUID)
		authed.GET("/users/firebase/:uid/role", authC.GetRole)
		authed.PUT("/users/email", authC.UpdateEmail)
		authed.PUT("/users/password", authC.ChangePassword)
	}

	profile := r.Group("/profile")
	profile.Use(requireAuth)
	{
		profile.POST("/", profileC.Create)
		profile.GET("/", coachOnly, profileC.ListPlayers)
		profile.GET("/:user_id", profileC.Get)
		profile.PUT("/:profile_id", profileC.Update)
	}

	note := r.Group("/note")
	note.Use(requireAuth)
	{
		note.POST("/create", noteC.Create)
		note.GET("/get/:firebase_uid", noteC.ListByFirebaseUID)
		note.GET("/user/:user_id", noteC.ListByUser)
		note.GET("/detail/:note_id", noteC.Detail)
		note.PUT("/:note_id", noteC.Update)
		note.DELETE("/:note_id", noteC.Delete)
		note.GET("/stats/:user_id", statsC.Summary)
		note.GET("/weekly/:user_id", statsC.Weekly)

		note.POST("/:note_id/comments", coachOnly, commentC.Add)
		note.GET("/:note_id/comments", commentC.List)
	}

	training := r.Group("/training")
	training.Use(requireAuth)
	{
		training.GET("/menu", trainingC.List)
		training.POST("/menu", coachOnly, trainingC.Create)
		training.DELETE("/menu/:training_id", coachOnly, trainingC.Delete)
	}

	api := r.Group("/")
	api.Use(requireAuth)
	{
		api.DELETE("/comment/:comment_id", commentC.Delete)

		api.GET("/alerts", alertC.List)
		api.GET("/ws/alerts", rtC.AlertsWS)
		api.POST("/devices", deviceC.Register)
		api.POST("/notifications/toggle", deviceC.ToggleNotifications)

		api.GET("/dify/data", exportC.UserData)
		api.GET("/dify/all-data", coachOnly, exportC.AllData)
	}

	if d.Debug {
		devC := controllers.NewDevController(d.Alerts)
		r.POST("/dev/alert", requireAuth, devC.TestAlert)
	}

	return r
}
