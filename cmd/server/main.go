package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/config"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/handler"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/notify"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/router"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/service"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/sse"
)

func main() {
	// Load config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Database
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.ClassRole{},
		&model.Project{},
		&model.Team{},
		&model.TeamMember{},
		&model.Solution{},
		&model.Task{},
		&model.TaskDependency{},
		&model.TaskAssignee{},
		&model.OperationLog{},
		&model.UserSetting{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Event hub and notifier
	sseHub := sse.NewHub(rdb)
	notifier := notify.NewHubNotifier(sseHub)

	// Services
	authService := service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	classService := service.NewClassService(db)
	projectService := service.NewProjectService(db)
	teamService := service.NewTeamService(db)
	taskService := service.NewTaskService(db, notifier)
	settingService := service.NewSettingService(db)
	logService := service.NewLogService(db)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	classHandler := handler.NewClassHandler(classService)
	projectHandler := handler.NewProjectHandler(projectService, classHandler)
	teamHandler := handler.NewTeamHandler(teamService, projectService, classHandler)
	taskHandler := handler.NewTaskHandler(taskService, settingService, sseHub, cfg.Timeline.DefaultPadDays)
	settingHandler := handler.NewSettingHandler(settingService)
	dashboardHandler := handler.NewDashboardHandler(db)
	logHandler := handler.NewLogHandler(logService)

	// Gin engine
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Setup routes
	router.Setup(r, router.Deps{
		DB:               db,
		JWTSecret:        cfg.JWT.Secret,
		AuthHandler:      authHandler,
		ClassHandler:     classHandler,
		ProjectHandler:   projectHandler,
		TeamHandler:      teamHandler,
		TaskHandler:      taskHandler,
		SettingHandler:   settingHandler,
		DashboardHandler: dashboardHandler,
		LogHandler:       logHandler,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
