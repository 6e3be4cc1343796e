package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/anirban1809/simplifile/internal/auth"
	"github.com/anirban1809/simplifile/internal/config"
	"github.com/anirban1809/simplifile/internal/handler"
	"github.com/anirban1809/simplifile/internal/repository"
	"github.com/anirban1809/simplifile/internal/seed"
	"github.com/anirban1809/simplifile/internal/service"
)

func main() {
	// Загружаем конфигурации
	appConfig, err := config.NewConfig(".app.env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	authConfig, err := auth.NewConfig(".auth.env")
	if err != nil {
		log.Fatalf("Failed to load auth config: %v", err)
	}
	auth.Init(authConfig)

	// Инициализация репозиториев
	entityRepo := repository.NewEntityRepository()
	versionRepo := repository.NewVersionRepository()
	commentRepo := repository.NewCommentRepository()
	shareRepo := repository.NewShareRepository()
	notificationRepo := repository.NewNotificationRepository()
	quotaRepo := repository.NewQuotaRepository(appConfig.Storage.QuotaBytes)

	// Инициализация сервисов
	hierarchyService := service.NewHierarchyService(entityRepo)
	permissionService := service.NewPermissionService(hierarchyService)
	quotaService := service.NewStorageQuotaService(entityRepo, quotaRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	entityService := service.NewEntityService(
		entityRepo,
		versionRepo,
		commentRepo,
		shareRepo,
		hierarchyService,
		permissionService,
		quotaService,
		notificationService,
	)
	shareService := service.NewShareService(entityRepo, shareRepo, permissionService, notificationService)
	selectionService := service.NewSelectionService(entityRepo)
	viewService := service.NewViewService(entityRepo, hierarchyService, selectionService, permissionService, appConfig.Storage.PageSize)
	searchService := service.NewSearchService(entityRepo)
	commentService := service.NewCommentService(entityRepo, commentRepo, permissionService)

	if appConfig.Seed.Enabled {
		seed.New(entityRepo, versionRepo).Generate(appConfig.Seed.OwnerID, appConfig.Seed.OwnerEmail)
	}

	// Инициализация хендлеров
	authHandler := handler.NewAuthHandler()
	fileHandler := handler.NewFileHandler(entityService)
	folderHandler := handler.NewFolderHandler(entityService, viewService)
	viewHandler := handler.NewViewHandler(viewService)
	shareHandler := handler.NewShareHandler(shareService)
	selectionHandler := handler.NewSelectionHandler(selectionService, entityService, shareService)
	searchHandler := handler.NewSearchHandler(searchService)
	quotaHandler := handler.NewStorageQuotaHandler(quotaService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	commentHandler := handler.NewCommentHandler(commentService)

	// Настройка HTTP роутера
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// HTTP маршруты
	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Post("/files", fileHandler.UploadFiles)
		r.Route("/files/{uuid}", func(r chi.Router) {
			r.Get("/", fileHandler.DownloadFile)
			r.Put("/rename", fileHandler.RenameEntity)
			r.Put("/move", fileHandler.MoveEntity)
			r.Put("/favorite", fileHandler.ToggleFavorite)
			r.Delete("/", fileHandler.DeleteEntity)
			r.Get("/versions", fileHandler.GetFileVersions)
			r.Post("/versions/{version}/revert", fileHandler.RevertFileVersion)
			r.Get("/comments", commentHandler.GetComments)
			r.Post("/comments", commentHandler.AddComment)
			r.Get("/shared-with", shareHandler.GetSharedWith)
		})

		r.Get("/folders", folderHandler.GetFolderContent)
		r.Post("/folders", folderHandler.CreateFolder)
		r.Get("/folders/structure", folderHandler.GetFolderStructure)
		r.Get("/folders/{uuid}", folderHandler.GetFolderContent)

		r.Get("/favorites", folderHandler.GetFavorites)
		r.Put("/view", viewHandler.UpdateView)
		r.Get("/search", searchHandler.Search)

		r.Route("/selection", func(r chi.Router) {
			r.Get("/", selectionHandler.GetSelection)
			r.Post("/toggle", selectionHandler.Toggle)
			r.Post("/clear", selectionHandler.Clear)
			r.Post("/delete", selectionHandler.DeleteSelected)
			r.Post("/share", selectionHandler.ShareSelected)
			r.Post("/download", selectionHandler.DownloadSelected)
		})

		r.Route("/shares", func(r chi.Router) {
			r.Post("/", shareHandler.CreateShare)
			r.Get("/shared-with-me", shareHandler.GetSharedWithMe)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.GetNotifications)
			r.Put("/{id}/read", notificationHandler.MarkRead)
			r.Put("/read-all", notificationHandler.MarkAllRead)
		})

		r.Route("/quota", func(r chi.Router) {
			r.Get("/", quotaHandler.GetQuotaInfo)
			r.Put("/limit", quotaHandler.UpdateQuotaLimit)
		})
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler: r,
	}

	// Канал для сигналов завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting HTTP server on port %s", appConfig.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
