package routes

import (
	"github.com/dlwldnjs1009/workout/internal/config"
	"github.com/dlwldnjs1009/workout/internal/handlers"
	"github.com/dlwldnjs1009/workout/internal/middleware"
	"github.com/dlwldnjs1009/workout/internal/repository"
	"github.com/dlwldnjs1009/workout/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	userProfileRepo := repository.NewUserProfileRepository(db)
	sessionRepo := repository.NewWorkoutSessionRepository(db)
	recordRepo := repository.NewExerciseRecordRepository(db)
	routineRepo := repository.NewWorkoutRoutineRepository(db)
	exerciseRepo := repository.NewExerciseTypeRepository(db)
	dietRepo := repository.NewDietSessionRepository(db)

	mapper := services.NewSessionMapper(recordRepo)
	sessionService := services.NewWorkoutSessionService(
		db, userRepo, sessionRepo, exerciseRepo, mapper, cfg.DefaultTimezone,
	)
	dashboardService := services.NewDashboardService(userRepo, sessionRepo, mapper)
	routineService := services.NewRoutineService(db, userRepo, routineRepo, exerciseRepo)
	exerciseService := services.NewExerciseService(exerciseRepo)
	profileService := services.NewProfileService(userRepo, userProfileRepo)
	dietService := services.NewDietService(db, userRepo, dietRepo)

	defaultTZ := cfg.DefaultTimezone.String()

	authHandler := handlers.NewAuthHandler(db, userRepo, userProfileRepo, cfg.JWTSecret)
	sessionHandler := handlers.NewSessionHandler(sessionService, dashboardService, defaultTZ)
	routineHandler := handlers.NewRoutineHandler(routineService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)
	profileHandler := handlers.NewProfileHandler(profileService)
	dietHandler := handlers.NewDietHandler(dietService, defaultTZ)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	protected := api.Group("", middleware.AuthRequired(cfg.JWTSecret))

	users := protected.Group("/users")
	users.Get("/profile", profileHandler.GetProfile)
	users.Put("/profile", profileHandler.UpdateProfile)

	exercises := protected.Group("/exercises")
	exercises.Get("", exerciseHandler.ListExercises)
	exercises.Get("/category/:category", exerciseHandler.ListExercisesByCategory)
	exercises.Post("", exerciseHandler.CreateExercise)
	exercises.Delete("/:id", exerciseHandler.DeleteExercise)

	sessions := protected.Group("/sessions")
	sessions.Post("", sessionHandler.CreateSession)
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/dashboard", sessionHandler.GetDashboard)
	sessions.Get("/:id", sessionHandler.GetSession)
	sessions.Delete("/:id", sessionHandler.DeleteSession)

	routines := protected.Group("/routines")
	routines.Post("", routineHandler.CreateRoutine)
	routines.Get("", routineHandler.ListRoutines)
	routines.Delete("/:id", routineHandler.DeleteRoutine)

	dietSessions := protected.Group("/diet-sessions")
	dietSessions.Post("", dietHandler.SaveSession)
	dietSessions.Get("", dietHandler.ListSessions)
	dietSessions.Get("/today", dietHandler.GetTodaySummary)
	dietSessions.Get("/by-date", dietHandler.GetSessionByDate)
	dietSessions.Get("/:id", dietHandler.GetSession)
	dietSessions.Delete("/:id", dietHandler.DeleteSession)
}
