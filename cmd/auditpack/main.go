package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/auditpack/auditpack/internal/auth"
	"github.com/auditpack/auditpack/internal/common"
	"github.com/auditpack/auditpack/internal/export"
	"github.com/auditpack/auditpack/internal/ingest"
	"github.com/auditpack/auditpack/internal/repository"
	"github.com/auditpack/auditpack/internal/session"
	"github.com/auditpack/auditpack/internal/state"
	"github.com/auditpack/auditpack/internal/vision"
	"github.com/auditpack/auditpack/internal/vision/gemini"
)

// auditpack ingests packaging photos into an inspection list and can dump a
// list to a spreadsheet:
//
//	auditpack -list <uuid> photo1.jpg photo2.jpg
//	auditpack -list <uuid> -export lista.xlsx
func main() {
	// Structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	listFlag := flag.String("list", "", "target inspection list id")
	exportFlag := flag.String("export", "", "write the list's entries to this xlsx file")
	flag.Parse()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	sessions, err := session.Open(cfg.Session.Path, logger)
	if err != nil {
		logger.Error("failed to open session store", "path", cfg.Session.Path, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			logger.Warn("session store close error", "error", err)
		}
	}()

	listsRepo := repository.NewListRepository(pool, logger)
	usersRepo := repository.NewUserRepository(pool, logger)
	store := state.NewStore()
	syncer := state.NewSyncer(listsRepo, store, logger)
	authSvc := auth.NewService(usersRepo, sessions, syncer, logger)

	sess, ok, err := authSvc.Resume(ctx)
	if err != nil {
		logger.Error("failed to resume session", "error", err)
		os.Exit(1)
	}
	if ok {
		if _, err := syncer.Refresh(ctx); err != nil {
			logger.Error("failed to refresh lists", "error", err)
			os.Exit(1)
		}
	} else {
		email := os.Getenv("AUDITPACK_EMAIL")
		password := os.Getenv("AUDITPACK_PASSWORD")
		if email == "" || password == "" {
			logger.Error("no stored session; set AUDITPACK_EMAIL and AUDITPACK_PASSWORD to log in")
			os.Exit(2)
		}
		sess, err = authSvc.Login(ctx, email, password)
		if err != nil {
			logger.Error("login failed", "error", err)
			os.Exit(2)
		}
	}

	if *listFlag == "" {
		logger.Error("missing -list flag")
		os.Exit(2)
	}
	listID, err := uuid.Parse(*listFlag)
	if err != nil {
		logger.Error("invalid list id", "list", *listFlag, "error", err)
		os.Exit(2)
	}

	if photos := flag.Args(); len(photos) > 0 {
		extractor := gemini.NewClient(gemini.Config{
			APIKey:  cfg.Vision.APIKey,
			BaseURL: cfg.Vision.BaseURL,
			Model:   cfg.Vision.Model,
			Timeout: cfg.Vision.Timeout,
		}, logger)
		ingestSvc := ingest.NewService(extractor, listsRepo, store, cfg.Prospect.ReferenceRoots, logger)

		dataURLs := make([]string, 0, len(photos))
		for _, path := range photos {
			u, err := vision.ReadAsDataURL(path)
			if err != nil {
				logger.Error("failed to read photo", "path", path, "error", err)
				os.Exit(1)
			}
			dataURLs = append(dataURLs, u)
		}

		rid := uuid.New().String()
		ingestCtx := common.WithRequestID(ctx, rid)
		ingestCtx = common.WithInspectorID(ingestCtx, sess.User.ID.String())
		entry, err := ingestSvc.Ingest(ingestCtx, sess, listID, dataURLs)
		if err != nil {
			logger.Error("ingestion failed", "req_id", rid, "error", err)
			os.Exit(1)
		}
		logger.Info("entry ingested",
			"entry_id", entry.ID,
			"razao_social", entry.Extracted.RazaoSocial,
			"is_new_prospect", entry.IsNewProspect,
		)
	}

	if *exportFlag != "" {
		list, found := store.Get(listID)
		if !found {
			logger.Error("list not mirrored locally", "list_id", listID)
			os.Exit(1)
		}
		xlsx, err := export.NewService(logger).ExportListXLSX(list)
		if err != nil {
			logger.Error("export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*exportFlag, xlsx, 0o644); err != nil {
			logger.Error("failed to write export file", "path", *exportFlag, "error", err)
			os.Exit(1)
		}
		logger.Info("export written", "path", *exportFlag, "entries", len(list.Entries))
	}
}
