// Package main runs the attendance book HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendancebook/config"
	_ "attendancebook/docs"
	"attendancebook/internal/adapters/email"
	httpdelivery "attendancebook/internal/delivery/http"
	"attendancebook/internal/delivery/http/controllers"
	"attendancebook/internal/delivery/http/middleware"
	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
	"attendancebook/internal/repository/kvstore"
	"attendancebook/internal/repository/postgres"
	"attendancebook/internal/services"
)

// @title Attendance Book API
// @version 1.0
// @description Attendance management for small organizations: groups, members, event dates, and per-event attendance responses.
// @BasePath /
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var (
		orgRepo        domain.OrganizationRepository
		groupRepo      domain.GroupRepository
		memberRepo     domain.MemberRepository
		eventDateRepo  domain.EventDateRepository
		attendanceRepo domain.AttendanceRepository
	)

	switch cfg.StorageMode {
	case config.StorageModeRemote:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			logger.Error("open database", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			logger.Error("ensure schema", "err", err)
			os.Exit(1)
		}
		orgRepo = postgres.NewOrganizationRepository(db)
		groupRepo = postgres.NewGroupRepository(db)
		memberRepo = postgres.NewMemberRepository(db)
		eventDateRepo = postgres.NewEventDateRepository(db)
		attendanceRepo = postgres.NewAttendanceRepository(db)
		logger.Info("storage", "mode", cfg.StorageMode)
	default:
		store, err := kv.OpenFileStore(cfg.DataFile)
		if err != nil {
			logger.Error("open data file", "path", cfg.DataFile, "err", err)
			os.Exit(1)
		}
		result := kvstore.NewMigrator(store).Run(ctx)
		if result.Err != nil {
			logger.Warn("legacy data migration failed, continuing with existing data", "err", result.Err)
		} else if result.Migrated {
			logger.Info("legacy data migrated", "organization_id", result.OrganizationID)
		}
		orgRepo = kvstore.NewOrganizationRepository(store)
		groupRepo = kvstore.NewGroupRepository(store)
		memberRepo = kvstore.NewMemberRepository(store)
		eventDateRepo = kvstore.NewEventDateRepository(store)
		attendanceRepo = kvstore.NewAttendanceRepository(store)
		logger.Info("storage", "mode", cfg.StorageMode, "path", cfg.DataFile)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	orgService := services.NewOrganizationService(orgRepo)
	groupService := services.NewGroupService(groupRepo, memberRepo, attendanceRepo)
	memberService := services.NewMemberService(memberRepo, groupRepo)
	eventDateService := services.NewEventDateService(eventDateRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, groupRepo, memberRepo)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), orgRepo, eventDateRepo, memberRepo, attendanceRepo)

	router := httpdelivery.NewRouter(
		controllers.NewOrganizationController(logger, orgService),
		controllers.NewGroupController(logger, groupService),
		controllers.NewMemberController(logger, memberService),
		controllers.NewEventDateController(logger, eventDateService),
		controllers.NewAttendanceController(logger, attendanceService, emailService),
	)

	var handler http.Handler = router
	handler = middleware.LoggingMiddleware(logger, handler)
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	logger.Info("server stopped")
}
