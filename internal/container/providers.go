// Package container provides dependency injection and lifecycle management
// for the brokerage document workflow.
package container

import (
	"fmt"
	"path/filepath"

	"github.com/vreb/brokerage-workflow/internal/config"
	"github.com/vreb/brokerage-workflow/internal/document"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/internal/lark"
	"github.com/vreb/brokerage-workflow/internal/notification"
	"github.com/vreb/brokerage-workflow/internal/repository"
	"github.com/vreb/brokerage-workflow/internal/storage"
	"github.com/vreb/brokerage-workflow/internal/store"
	"github.com/vreb/brokerage-workflow/pkg/database"
	"go.uber.org/zap"
)

// StoreBundle holds the tabular record stores
type StoreBundle struct {
	Invoices *store.InvoiceStore
	KYC      *store.KYCStore
}

// DocumentBundle holds the document renderers
type DocumentBundle struct {
	Renderer *document.Renderer
	Receipts *document.ReceiptRenderer
}

// ProvideDatabase opens the delivery log database and applies the embedded migrations
func ProvideDatabase(cfg *config.DatabaseConfig, logger *zap.Logger) (*database.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}

	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := database.NewMigrator(db, logger).Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// ProvideStores opens (creating when missing) the invoice and KYC tables
func ProvideStores(cfg *config.StoreConfig, logger *zap.Logger) (*StoreBundle, error) {
	invoices, err := store.NewInvoiceStore(cfg.InvoicePath, cfg.Format, storage.NewLocalFileStorage(filepath.Dir(cfg.InvoicePath), logger), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open invoice store: %w", err)
	}

	kyc, err := store.NewKYCStore(cfg.KYCPath, cfg.Format, storage.NewLocalFileStorage(filepath.Dir(cfg.KYCPath), logger), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open KYC store: %w", err)
	}

	return &StoreBundle{Invoices: invoices, KYC: kyc}, nil
}

// ProvideDocuments creates the renderers writing under the output directory
func ProvideDocuments(cfg *config.DocumentConfig, logger *zap.Logger) (*DocumentBundle, error) {
	files := storage.NewLocalFileStorage(cfg.OutputDir, logger)
	folders := storage.NewFolderManager(cfg.OutputDir, logger)

	for _, kind := range []storage.DocumentKind{storage.KindInvoice, storage.KindKYCApplication, storage.KindReceipt} {
		if _, err := folders.EnsureFolder(kind); err != nil {
			return nil, fmt.Errorf("failed to create %s folder: %w", kind, err)
		}
	}

	var verifier document.ArtifactVerifier
	if cfg.VerifyOutput {
		verifier = document.NewTextVerifier(logger)
	}

	return &DocumentBundle{
		Renderer: document.NewRenderer(files, folders, verifier, logger),
		Receipts: document.NewReceiptRenderer(files, folders, logger),
	}, nil
}

// ProvideNotifier builds the configured channel wrapped with the delivery log
func ProvideNotifier(cfg *config.NotificationConfig, profile entity.Profile, deliveries *repository.NotificationRepository, logger *zap.Logger) (notification.Notifier, error) {
	var (
		inner   notification.Notifier
		channel = cfg.Channel
	)

	switch cfg.Channel {
	case config.ChannelSMTP:
		inner = notification.NewSMTPNotifier(notification.SMTPConfig{
			Host:               cfg.SMTP.Host,
			Port:               cfg.SMTP.Port,
			Username:           cfg.SMTP.Username,
			Password:           cfg.SMTP.Password,
			From:               cfg.SMTP.From,
			FromName:           cfg.SMTP.FromName,
			Timeout:            cfg.SMTP.Timeout,
			RequireTLS:         cfg.SMTP.RequireTLS,
			InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
		}, profile, logger)
	case config.ChannelLark:
		client := lark.NewClient(lark.Config{
			AppID:     cfg.Lark.AppID,
			AppSecret: cfg.Lark.AppSecret,
			BaseURL:   cfg.Lark.BaseURL,
		}, logger)
		inner = notification.NewLarkNotifier(lark.NewMessageAPI(client, logger), profile, logger)
	case config.ChannelNone:
		inner = notification.NewDryRunNotifier(logger)
	default:
		return nil, fmt.Errorf("unknown notification channel %q", cfg.Channel)
	}

	logger.Info("Notification channel configured", zap.String("channel", channel))
	return notification.NewLoggingNotifier(inner, channel, deliveries, logger), nil
}
