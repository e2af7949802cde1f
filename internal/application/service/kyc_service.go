package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vreb/brokerage-workflow/internal/application/port"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"go.uber.org/zap"
)

// KYCService manages customer KYC applications
type KYCService interface {
	// Save validates and stores an application. With update unset a new
	// customer ID is assigned.
	Save(app *entity.KYCApplication, update bool) (*entity.KYCApplication, error)

	// Get returns the stored application
	Get(customerID string) (*entity.KYCApplication, error)

	// List returns applications with any field matching term
	List(term string) ([]*entity.KYCApplication, error)

	// SetStatus changes the review status
	SetStatus(customerID string, status entity.KYCStatus) (*entity.KYCApplication, error)

	// RenderApplication renders the application form and returns its path
	RenderApplication(customerID string) (string, error)
}

type kycServiceImpl struct {
	mu        sync.Mutex
	store     port.KYCRepository
	validator port.KYCValidator
	renderer  port.ApplicationRenderer
	profile   entity.Profile
	logger    *zap.Logger
}

// NewKYCService creates a new KYCService
func NewKYCService(
	kycStore port.KYCRepository,
	validator port.KYCValidator,
	renderer port.ApplicationRenderer,
	profile entity.Profile,
	logger *zap.Logger,
) KYCService {
	return &kycServiceImpl{
		store:     kycStore,
		validator: validator,
		renderer:  renderer,
		profile:   profile,
		logger:    logger,
	}
}

// Save implements KYCService
func (s *kycServiceImpl) Save(app *entity.KYCApplication, update bool) (*entity.KYCApplication, error) {
	if app == nil {
		return nil, &ValidationError{Errors: []string{"KYC application is required"}}
	}
	if errs := s.validator.Validate(app); len(errs) > 0 {
		s.logger.Info("KYC submission rejected",
			zap.String("customer_id", app.CustomerID),
			zap.Strings("errors", errs))
		return nil, &ValidationError{Errors: errs}
	}
	if update && strings.TrimSpace(app.CustomerID) == "" {
		return nil, &ValidationError{Errors: []string{"Customer ID is required for update"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.store.Save(app, update)
	if err != nil {
		return nil, fmt.Errorf("failed to save KYC application: %w", err)
	}
	return saved, nil
}

// Get implements KYCService
func (s *kycServiceImpl) Get(customerID string) (*entity.KYCApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.FindByCustomerID(customerID)
}

// List implements KYCService
func (s *kycServiceImpl) List(term string) ([]*entity.KYCApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Search(strings.TrimSpace(term))
}

// SetStatus implements KYCService
func (s *kycServiceImpl) SetStatus(customerID string, status entity.KYCStatus) (*entity.KYCApplication, error) {
	switch status {
	case entity.KYCStatusPending, entity.KYCStatusCompleted, entity.KYCStatusRejected:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.UpdateStatus(customerID, status)
}

// RenderApplication implements KYCService
func (s *kycServiceImpl) RenderApplication(customerID string) (string, error) {
	app, err := s.Get(customerID)
	if err != nil {
		return "", err
	}

	path, err := s.renderer.RenderApplication(app, s.profile)
	if err != nil {
		return "", fmt.Errorf("failed to render KYC application for %s: %w", customerID, err)
	}
	return path, nil
}
