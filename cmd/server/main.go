package main

import (
	"embed"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"unitflow/internal/bucket"
	"unitflow/internal/config"
	"unitflow/internal/handler"
	applog "unitflow/internal/logger"
	"unitflow/internal/middleware"
	"unitflow/internal/selection"
	"unitflow/internal/service"
	"unitflow/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed dist/*
var staticFS embed.FS

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	applog.Init(cfg.Log)
	db, err := cfg.OpenDB()
	if err != nil {
		slog.Error("data store open failed", "err", err)
		os.Exit(1)
	}

	st, err := store.New(db)
	if err != nil {
		slog.Error("store init failed", "err", err)
		os.Exit(1)
	}

	buckets := bucket.New(nil)
	logbook := service.NewLogbook(st, buckets)
	selector := service.NewSelector(selection.NewMachine(), st, buckets)

	logH := handler.NewLogHandler(logbook, selector)
	selH := handler.NewSelectionHandler(selector)
	expH := handler.NewExportHandler(logbook, selector)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	api.GET("/health", logH.Health)
	api.GET("/view", logH.View)
	api.GET("/author", logH.Author)
	api.POST("/logs", logH.Create)
	api.POST("/logs/purge", logH.Purge)
	api.POST("/selection/enter", selH.Enter)
	api.POST("/selection/exit", selH.Exit)
	api.POST("/selection/toggle", selH.Toggle)
	api.GET("/selection", selH.State)
	api.GET("/selection/table", expH.Table)
	api.GET("/table", expH.BucketTable)
	api.GET("/export.csv", expH.CSV)
	api.GET("/export.xlsx", expH.XLSX)

	distFS, _ := fs.Sub(staticFS, "dist")
	r.NoRoute(gin.WrapH(http.FileServer(http.FS(distFS))))

	slog.Info("server starting", "addr", cfg.Addr(), "data", cfg.Data.Path)
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
