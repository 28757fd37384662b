package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"ceyloncircuit/cmd/fx/accountfx"
	"ceyloncircuit/cmd/fx/catalogfx"
	"ceyloncircuit/cmd/fx/dbfx"
	"ceyloncircuit/cmd/fx/planfx"
	"ceyloncircuit/cmd/fx/tripbotfx"
	"ceyloncircuit/internal/api/controllers"
	"ceyloncircuit/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		dbfx.Module,
		catalogfx.Module,
		tripbotfx.Module,
		accountfx.Module,
		planfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	tripBotController *controllers.TripBotController,
	destinationController *controllers.DestinationController,
	accommodationController *controllers.AccommodationController,
	accountController *controllers.AccountController,
	planController *controllers.PlanController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, tripBotController, destinationController, accommodationController, accountController, planController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	tripBotController *controllers.TripBotController,
	destinationController *controllers.DestinationController,
	accommodationController *controllers.AccommodationController,
	accountController *controllers.AccountController,
	planController *controllers.PlanController) {

	tripbotGroup := r.Group("/api/tripbot")
	tripbotGroup.POST("/chat", tripBotController.ChatHandler)
	tripbotGroup.POST("/select-destination", tripBotController.SelectDestinationHandler)
	tripbotGroup.POST("/select-accommodation", tripBotController.SelectAccommodationHandler)
	tripbotGroup.POST("/continue-day", tripBotController.ContinueDayHandler)
	tripbotGroup.POST("/generate-plan", tripBotController.GeneratePlanHandler)
	tripbotGroup.POST("/reset", tripBotController.ResetHandler)
	tripbotGroup.GET("/session/:id", tripBotController.SessionHandler)

	catalogGroup := r.Group("/api/catalog")
	catalogGroup.GET("/destinations", destinationController.ListDestinationsHandler)
	catalogGroup.GET("/accommodations", accommodationController.ListAccommodationsHandler)

	adminGroup := r.Group("/api/catalog", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	adminGroup.POST("/destinations", destinationController.CreateDestinationHandler)
	adminGroup.PUT("/destinations/:id", destinationController.UpdateDestinationHandler)
	adminGroup.DELETE("/destinations/:id", destinationController.DeleteDestinationHandler)
	adminGroup.POST("/accommodations", accommodationController.CreateAccommodationHandler)
	adminGroup.DELETE("/accommodations/:id", accommodationController.DeleteAccommodationHandler)

	authGroup := r.Group("/api/auth")
	authGroup.POST("/login", accountController.LoginHandler)
	authGroup.POST("/signup", accountController.SignUpHandler)

	planGroup := r.Group("/api/plans", middleware.JWTAuthMiddleware())
	planGroup.POST("", planController.SavePlanHandler)
	planGroup.GET("", planController.ListPlansHandler)
	planGroup.GET("/:id", planController.GetPlanHandler)
}
