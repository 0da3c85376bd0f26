package router

import (
	"context"
	"net/http"
	"time"

	"university-backend/foundation/web"
	"university-backend/internal/auth"
	"university-backend/internal/entity"
	"university-backend/internal/middleware"
	"university-backend/internal/repository"
	"university-backend/internal/service"

	attendance_controller "university-backend/internal/controller/http/v1/attendance"
	auth_controller "university-backend/internal/controller/http/v1/auth"
	dashboard_controller "university-backend/internal/controller/http/v1/dashboard"
	leave_controller "university-backend/internal/controller/http/v1/leave"
	schedule_controller "university-backend/internal/controller/http/v1/schedule"
	user_controller "university-backend/internal/controller/http/v1/user"
)

type Config struct {
	AllowedOrigins []string
	CookieSecure   bool
}

type Router struct {
	*web.App
	store repository.Store
	auth  *auth.Auth
	cfg   Config
}

func NewRouter(app *web.App, store repository.Store, auth *auth.Auth, cfg Config) *Router {
	return &Router{
		App:   app,
		store: store,
		auth:  auth,
		cfg:   cfg,
	}
}

func (r Router) Init() {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware(r.cfg.AllowedOrigins))

	svc := service.New(r.store, r.auth)

	authController := auth_controller.NewController(svc, r.auth.TTL(), r.cfg.CookieSecure)
	userController := user_controller.NewController(svc)
	attendanceController := attendance_controller.NewController(svc)
	scheduleController := schedule_controller.NewController(svc)
	leaveController := leave_controller.NewController(svc)
	dashboardController := dashboard_controller.NewController(svc)

	authenticated := middleware.Authenticate(r.auth, r.store.Users())
	admin := middleware.Authenticate(r.auth, r.store.Users(), entity.RoleAdmin)
	reviewer := middleware.Authenticate(r.auth, r.store.Users(), entity.RoleHead, entity.RoleAdmin)

	r.Get("/health", r.health)

	// #auth
	r.Post("/api/login", authController.Login)
	r.Post("/api/logout", authController.Logout, authenticated)
	r.Get("/api/me", authController.Me, authenticated)

	// #user
	r.Get("/api/users", userController.GetUserList, admin)
	r.Post("/api/users", userController.CreateUser, admin)
	r.Post("/api/users/import", userController.ImportUsers, admin)
	r.Get("/api/users/badges", userController.GetBadges, admin)
	r.Get("/api/users/:id/qrcode", userController.GetQrCode, admin)
	r.Get("/api/users/:id/schedules", scheduleController.GetByUser, authenticated)
	r.Put("/api/users/:id", userController.UpdateUser, admin)
	r.Delete("/api/users/:id", userController.DeleteUser, admin)

	// #attendance
	r.Get("/api/attendance/:userId", attendanceController.GetHistory, authenticated)
	r.Get("/api/attendance-all", attendanceController.GetList, reviewer)
	r.Get("/api/attendance-all/export", attendanceController.Export, reviewer)
	r.Post("/api/mark-attendance", attendanceController.Mark, middleware.Authenticate(r.auth, r.store.Users(), entity.RoleMazer, entity.RoleAssistant))

	// #schedule
	r.Get("/api/schedules/:dayOfWeek", scheduleController.GetByDay, authenticated)
	r.Post("/api/schedules", scheduleController.Create, admin)

	// #leave
	r.Post("/api/leave-requests", leaveController.Create, authenticated)
	r.Get("/api/leave-requests", leaveController.GetList, authenticated)
	r.Post("/api/leave-requests/:id/respond", leaveController.Respond, middleware.Authenticate(r.auth, r.store.Users(), entity.RoleHead))

	// #dashboard
	r.Get("/api/dashboard-stats", dashboardController.GetStats, reviewer)
}

func (r Router) health(c *web.Context) error {
	ctx, cancel := context.WithTimeout(c.Ctx, 2*time.Second)
	defer cancel()

	if err := r.store.Ping(ctx); err != nil {
		return c.Respond(map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
	}

	return c.Respond(map[string]string{"status": "ok"}, http.StatusOK)
}
