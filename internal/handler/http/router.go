package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-batch-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env            string
	AllowedOrigins []string
	// Logger receives access logs; nil disables them.
	Logger *slog.Logger
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	jobHandler JobHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		level := slog.LevelInfo
		if cfg.Env == "development" {
			level = slog.LevelDebug
		}
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  level,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/attendance", func(r chi.Router) {
			r.Use(middleware.RequireEmployee)
			r.Post("/check-in", attendanceHandler.CheckIn)
			r.Post("/check-out", attendanceHandler.CheckOut)
		})

		r.Route("/payroll/{id}", func(r chi.Router) {
			r.Get("/", payrollHandler.GetPayrollRecord)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/adjustments", payrollHandler.AddAdjustment)
				r.Patch("/status", payrollHandler.UpdateStatus)
			})
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Use(middleware.RequireServiceRole)
			r.Get("/", jobHandler.List)
			r.Post("/{job}", jobHandler.Trigger)
		})
	})

	return r
}

// NewAccessLogger builds the JSON logger used for access logs in the ECS schema.
func NewAccessLogger(handler slog.Handler, env, version string) *slog.Logger {
	return slog.New(handler).With(
		slog.String("app", "hris-batch"),
		slog.String("version", version),
		slog.String("env", env),
	)
}

// ECSReplaceAttr renames slog keys to the ECS schema used by the access log.
func ECSReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	return httplog.SchemaECS.Concise(false).ReplaceAttr(groups, a)
}
