package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vreb/brokerage-workflow/internal/application/port"
	"github.com/vreb/brokerage-workflow/internal/application/service"
	"github.com/vreb/brokerage-workflow/internal/application/workflow"
	"github.com/vreb/brokerage-workflow/internal/config"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/internal/notification"
	"github.com/vreb/brokerage-workflow/internal/repository"
	"github.com/vreb/brokerage-workflow/internal/validator"
	"github.com/vreb/brokerage-workflow/pkg/database"
	"go.uber.org/zap"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in dependency order and torn down in reverse.
type Container struct {
	config  *config.Config
	profile entity.Profile
	logger  *zap.Logger

	// Infrastructure
	db         *database.DB
	deliveries *repository.NotificationRepository
	stores     *StoreBundle
	documents  *DocumentBundle
	notifier   notification.Notifier

	// Application
	engine    workflow.WorkflowEngine
	invoices  service.InvoiceService
	customers service.KYCService

	// Lifecycle
	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	profile, err := cfg.Profile.ToEntity()
	if err != nil {
		return nil, err
	}

	return &Container{
		config:  cfg,
		profile: profile,
		logger:  logger,
	}, nil
}

// Start initializes all components.
// 1. Delivery log database
// 2. Record stores
// 3. Document renderers
// 4. Notifier
// 5. Workflow engine and application services
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization")

	db, err := ProvideDatabase(&c.config.Database, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.db = db
	c.deliveries = repository.NewNotificationRepository(db.DB, c.logger)
	c.logger.Info("Database initialized")

	if c.stores, err = ProvideStores(&c.config.Store, c.logger); err != nil {
		return c.abort(fmt.Errorf("failed to initialize stores: %w", err))
	}
	c.logger.Info("Record stores initialized",
		zap.String("format", c.config.Store.Format),
		zap.String("invoices", c.stores.Invoices.Path()))

	if c.documents, err = ProvideDocuments(&c.config.Document, c.logger); err != nil {
		return c.abort(fmt.Errorf("failed to initialize documents: %w", err))
	}
	c.logger.Info("Document renderers initialized")

	if c.notifier, err = ProvideNotifier(&c.config.Notification, c.profile, c.deliveries, c.logger); err != nil {
		return c.abort(fmt.Errorf("failed to initialize notifier: %w", err))
	}

	recordValidator := validator.NewRecordValidator(c.profile.InvoicePrefix)
	c.engine = workflow.NewWorkflowEngine(recordValidator, c.documents.Renderer, c.notifier, c.profile, c.logger)
	c.invoices = service.NewInvoiceService(c.stores.Invoices, c.engine, recordValidator, c.documents.Receipts, c.profile, c.logger)
	c.customers = service.NewKYCService(c.stores.KYC, validator.NewKYCValidator(), c.documents.Renderer, c.profile, c.logger)
	c.logger.Info("Application services initialized")

	c.ready.Store(true)
	c.logger.Info("Container started successfully")
	return nil
}

// abort closes what Start opened so far
func (c *Container) abort(err error) error {
	if c.db != nil {
		_ = c.db.Close()
		c.db = nil
	}
	return err
}

// Close releases all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")
	c.closed.Store(true)
	c.ready.Store(false)

	// Services, stores and renderers hold no open resources
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.Error("Failed to close database", zap.Error(err))
			return fmt.Errorf("close database: %w", err)
		}
		c.logger.Info("Database closed")
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health() *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	check := func(name string, err error) {
		if err != nil {
			status.Components[name] = ComponentHealth{Healthy: false, Message: err.Error()}
			status.Overall = false
			return
		}
		status.Components[name] = ComponentHealth{Healthy: true}
	}

	if c.db == nil {
		check("database", fmt.Errorf("not initialized"))
	} else {
		check("database", c.db.Ping())
	}

	if c.stores == nil {
		check("invoice_store", fmt.Errorf("not initialized"))
	} else {
		_, err := c.stores.Invoices.ListAll()
		check("invoice_store", err)
	}

	return status
}

// Config returns the loaded configuration
func (c *Container) Config() *config.Config { return c.config }

// Profile returns the issuer profile
func (c *Container) Profile() entity.Profile { return c.profile }

// InvoiceService returns the invoice application service
func (c *Container) InvoiceService() service.InvoiceService { return c.invoices }

// KYCService returns the KYC application service
func (c *Container) KYCService() service.KYCService { return c.customers }

// Deliveries returns the delivery log repository
func (c *Container) Deliveries() port.DeliveryRepository { return c.deliveries }

// Notifier returns the configured notifier, wrapped with the delivery log
func (c *Container) Notifier() notification.Notifier { return c.notifier }

// Renderer returns the invoice and application renderer
func (c *Container) Renderer() workflow.InvoiceRenderer { return c.documents.Renderer }
