package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bavobbr/dmon-scheduler/internal/dataset"
	"github.com/bavobbr/dmon-scheduler/internal/handler"
	internalmw "github.com/bavobbr/dmon-scheduler/internal/middleware"
	"github.com/bavobbr/dmon-scheduler/internal/orchestrator"
	"github.com/bavobbr/dmon-scheduler/internal/service"
	"github.com/bavobbr/dmon-scheduler/internal/solver"
	"github.com/bavobbr/dmon-scheduler/pkg/config"
	"github.com/bavobbr/dmon-scheduler/pkg/logger"
	corsmiddleware "github.com/bavobbr/dmon-scheduler/pkg/middleware/cors"
	reqidmiddleware "github.com/bavobbr/dmon-scheduler/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	store := dataset.NewStore(cfg.Grid.FieldCapacity)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	solverClient := solver.NewClient(cfg.Solver.BaseURL, cfg.Solver.RequestTimeout, logr)
	orch := orchestrator.New(solverClient, orchestrator.Config{
		PollInterval: cfg.Solver.PollInterval,
		Metrics:      metricsSvc,
	}, logr)

	trainerSvc := service.NewTrainerService(store, validate, logr)
	teamSvc := service.NewTeamService(store, validate, logr)
	slotSvc := service.NewSlotService(store, cfg.Grid.FirstHour, cfg.Grid.LastHour, logr)
	datasetSvc := service.NewDatasetService(store, slotSvc.Editor(), logr)
	solveSvc := service.NewSolveService(store, orch, logr)

	trainerHandler := handler.NewTrainerHandler(trainerSvc)
	teamHandler := handler.NewTeamHandler(teamSvc)
	slotHandler := handler.NewSlotHandler(slotSvc)
	datasetHandler := handler.NewDatasetHandler(datasetSvc)
	solveHandler := handler.NewSolveHandler(solveSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(internalmw.Metrics(metricsSvc))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if metricsSvc != nil {
		r.GET("/metrics", handler.NewMetricsHandler(metricsSvc).Scrape)
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/trainers", trainerHandler.List)
		api.POST("/trainers", trainerHandler.Create)
		api.GET("/trainers/:id", trainerHandler.Get)
		api.PUT("/trainers/:id", trainerHandler.Update)
		api.DELETE("/trainers/:id", trainerHandler.Delete)

		api.GET("/teams", teamHandler.List)
		api.POST("/teams", teamHandler.Create)
		api.GET("/teams/:id", teamHandler.Get)
		api.PUT("/teams/:id", teamHandler.Update)
		api.DELETE("/teams/:id", teamHandler.Delete)

		api.GET("/slots", slotHandler.Grid)
		api.POST("/slots/toggle", slotHandler.Toggle)
		api.POST("/slots/gesture/start", slotHandler.GestureStart)
		api.POST("/slots/gesture/enter", slotHandler.GestureEnter)
		api.POST("/slots/gesture/end", slotHandler.GestureEnd)
		api.PUT("/slots/capacity", slotHandler.SetCapacity)

		api.GET("/dataset", datasetHandler.Get)
		api.GET("/dataset/export", datasetHandler.Export)
		api.POST("/dataset/import", datasetHandler.Import)

		api.POST("/solve", solveHandler.Start)
		api.DELETE("/solve", solveHandler.Stop)
		api.GET("/solve", solveHandler.Snapshot)
		api.GET("/solve/agenda", solveHandler.Agenda)
		api.GET("/solve/agenda/export", solveHandler.ExportAgenda)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "solver", cfg.Solver.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
