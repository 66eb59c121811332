/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/roskai-be/config"
	"github.com/tieubaoca/roskai-be/handler"
	"github.com/tieubaoca/roskai-be/middleware"
	"github.com/tieubaoca/roskai-be/service"
	"go.uber.org/zap"
)

// startServerCmd represents the startServer command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat server",
	Long:  `Starts the HTTP server that relays chat requests to the generation backend`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath := cfgFile
		if cfgPath == "" {
			cfgPath = "config/config.yaml"
		}
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()

		// Initialize services
		var aiService service.AIService
		switch cfg.Provider {
		case "openai":
			aiService = service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
		default:
			geminiService, err := service.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				logger.Fatal("Failed to create Gemini client", zap.Error(err))
			}
			defer geminiService.Close()
			aiService = geminiService
		}

		historyService := service.NewChatHistoryService(cfg.MaxHistoryTurns, cfg.HistoryTTL())
		chatService := service.NewChatService(
			aiService,
			service.NewExtractService(),
			service.NewPromptService(),
			historyService,
			cfg.HistoryWindow,
			cfg.GenerationTimeout(),
			logger,
		)
		wsService := service.NewWebsocketService(chatService, logger)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		chatHandler := handler.NewChatHandler(chatService, logger)

		// Setup routes
		r := chi.NewRouter()
		r.Use(chimiddleware.Recoverer)
		r.Use(middleware.RequestLogger(logger))
		r.Use(corsHandler.CorsMiddleware)

		r.Post("/chat", chatHandler.HandleChat())
		r.Get("/ws", wsService.HandleChat)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: r,
		}

		go func() {
			logger.Info("Starting server", zap.String("port", cfg.Port))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("Server error", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown error", zap.Error(err))
		}
		logger.Info("Server stopped")
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
