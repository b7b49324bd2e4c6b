package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Vovarama1992/magic_translator/internal/ai"
	"github.com/Vovarama1992/magic_translator/internal/config"
	"github.com/Vovarama1992/magic_translator/internal/delivery"
	"github.com/Vovarama1992/magic_translator/internal/doc"
	"github.com/Vovarama1992/magic_translator/internal/domain"
	"github.com/Vovarama1992/magic_translator/internal/error_notificator"
	"github.com/Vovarama1992/magic_translator/internal/extract"
	"github.com/Vovarama1992/magic_translator/internal/infra"
	"github.com/Vovarama1992/magic_translator/internal/pdf"
	"github.com/Vovarama1992/magic_translator/internal/ports"
	"github.com/Vovarama1992/magic_translator/internal/speech"
	"github.com/Vovarama1992/magic_translator/internal/telegram"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg := config.Load()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	if err := cfg.Validate(); err != nil {
		var ce *ports.CredentialError
		if errors.As(err, &ce) {
			log.Fatalf("⚠️ API key not found! Set %s in the environment or .env", ce.Key)
		}
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	errInfra := error_notificator.NewInfra(nil, cfg.AdminChatID)
	errService := error_notificator.NewService(errInfra, zl)

	// =========================================================================
	// CLIENTS (translation / TTS)
	// =========================================================================

	var completion ai.CompletionClient
	switch cfg.TranslatorProvider {
	case config.ProviderGemini:
		gc, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("failed to init gemini: %v", err)
		}
		completion = gc
	default:
		completion = ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	var tts speech.TTSClient
	switch cfg.TTSProvider {
	case config.TTSElevenLabs:
		tts = speech.NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID)
	case config.TTSOpenAI:
		tts = speech.NewOpenAITTS(cfg.OpenAIAPIKey)
	default:
		tts = speech.NewGoogleTTS(&http.Client{Timeout: 30 * time.Second})
	}

	// =========================================================================
	// OPTIONAL INFRASTRUCTURE (postgres / s3)
	// =========================================================================

	var (
		db            *sql.DB
		recordService ports.RecordService
		s3Service     ports.S3Service
	)

	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := db.PingContext(pingCtx); err != nil {
			cancel()
			log.Fatalf("db ping failed: %v", err)
		}
		if err := infra.EnsureSchema(pingCtx, db); err != nil {
			cancel()
			log.Fatalf("failed to create schema: %v", err)
		}
		cancel()

		recordService = domain.NewRecordService(infra.NewRecordRepo(db), errService)
	}

	if cfg.S3Enabled() {
		s3Client, err := infra.NewS3Client(ctx, infra.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Insecure:  cfg.S3Insecure,
		})
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		s3Service = domain.NewS3Service(s3Client)
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	pdfService := pdf.NewPDFService(pdf.NewPlainTextExtractor())
	docService := doc.NewService(doc.NewParagraphExtractor())
	extractor := extract.NewService(pdfService, docService)

	translator := ai.NewTranslateService(completion, cfg.TranslateTimeout, errService, zl)
	speechService := speech.NewService(tts, zl)

	pipeline := domain.NewTranslationService(
		translator,
		speechService,
		s3Service,
		recordService,
		errService,
		zl,
	)

	// =========================================================================
	// TELEGRAM BOT
	// =========================================================================

	if cfg.TelegramBotToken != "" {
		botApp := telegram.NewBotApp(pipeline, extractor, errService, cfg.MaxUploadBytes, zl)
		bot, err := botApp.InitBot(cfg.TelegramBotToken)
		if err != nil {
			log.Fatalf("failed to init telegram bot: %v", err)
		}
		errInfra.SetBot(bot)
		go botApp.Run(ctx)
	}

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := delivery.NewRouter()

	var (
		recordHandler *delivery.RecordHandler
		authHandler   *delivery.AuthHandler
		authService   ports.AuthService
	)
	if recordService != nil {
		authService = domain.NewAuthService(infra.NewAuthRepo(db, cfg.AdminPassword), cfg.AuthSecret)
		recordHandler = delivery.NewRecordHandler(recordService, zl)
		authHandler = delivery.NewAuthHandler(authService)
	}

	delivery.RegisterRoutes(
		r,
		delivery.NewPageHandler(pipeline, extractor, cfg.MaxUploadBytes, zl),
		delivery.NewTranslateHandler(pipeline, extractor, cfg.MaxUploadBytes, zl),
		recordHandler,
		authHandler,
		authService,
		cfg.RateLimitPerMinute,
	)

	// =========================================================================
	// START SERVER
	// =========================================================================

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + srv.Addr,
		Service: "magic_translator",
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
