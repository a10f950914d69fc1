package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
)

// RecordStore abstracts the write side of the movement ledgers.
type RecordStore interface {
	InsertInward(ctx context.Context, rec InwardRecord) error
	InsertOutward(ctx context.Context, rec OutwardRecord) error
	SoftDelete(ctx context.Context, companyID string, kind RecordKind, id string) error
}

// AuditPort abstracts audit logging functionality.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// CacheInvalidator is notified whenever a tenant's records change.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}

// Service captures inward and outward movements. It does not guard against
// over-issuing: an outward larger than available stock is accepted and shows
// up as negative stock in reports.
type Service struct {
	store     RecordStore
	audit     AuditPort
	cache     CacheInvalidator
	validator *validator.Validate
	logger    *slog.Logger
	now       func() time.Time
}

// NewService builds Service. audit and cache are optional.
func NewService(store RecordStore, audit AuditPort, cache CacheInvalidator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		audit:     audit,
		cache:     cache,
		validator: validator.New(),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RecordInward stores a receipt of stock.
func (s *Service) RecordInward(ctx context.Context, input InwardInput) (InwardRecord, error) {
	if input.Quantity <= 0 {
		return InwardRecord{}, ErrInvalidQuantity
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return InwardRecord{}, ErrInvalidUnitCost
	}
	if err := s.validator.Struct(input); err != nil {
		return InwardRecord{}, fmt.Errorf("inventory: %w: %v", shared.ErrValidation, err)
	}
	rec := InwardRecord{
		ID:              uuid.NewString(),
		CompanyID:       input.CompanyID,
		ProductID:       input.ProductID,
		WarehouseID:     input.WarehouseID,
		Quantity:        input.Quantity,
		UnitCost:        input.UnitCost,
		PartyID:         input.PartyID,
		TransactionDate: input.TransactionDate,
		CreatedAt:       s.now(),
		BatchNo:         input.BatchNo,
		ExpiryDate:      input.ExpiryDate,
	}
	if err := s.store.InsertInward(ctx, rec); err != nil {
		return InwardRecord{}, err
	}
	s.afterWrite(ctx, input.CompanyID, input.ActorID, "inventory:inward", rec.ID, map[string]any{
		"product_id":   rec.ProductID,
		"warehouse_id": rec.WarehouseID,
		"quantity":     rec.Quantity,
	})
	return rec, nil
}

// RecordOutward stores a dispatch of stock.
func (s *Service) RecordOutward(ctx context.Context, input OutwardInput) (OutwardRecord, error) {
	if input.Quantity <= 0 {
		return OutwardRecord{}, ErrInvalidQuantity
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return OutwardRecord{}, ErrInvalidUnitCost
	}
	if err := s.validator.Struct(input); err != nil {
		return OutwardRecord{}, fmt.Errorf("inventory: %w: %v", shared.ErrValidation, err)
	}
	rec := OutwardRecord{
		ID:              uuid.NewString(),
		CompanyID:       input.CompanyID,
		ProductID:       input.ProductID,
		WarehouseID:     input.WarehouseID,
		Quantity:        input.Quantity,
		UnitCost:        input.UnitCost,
		PartyID:         input.PartyID,
		Destination:     input.Destination,
		TransactionDate: input.TransactionDate,
		CreatedAt:       s.now(),
	}
	if err := s.store.InsertOutward(ctx, rec); err != nil {
		return OutwardRecord{}, err
	}
	s.afterWrite(ctx, input.CompanyID, input.ActorID, "inventory:outward", rec.ID, map[string]any{
		"product_id":   rec.ProductID,
		"warehouse_id": rec.WarehouseID,
		"quantity":     rec.Quantity,
		"destination":  rec.Destination,
	})
	return rec, nil
}

// Delete soft-deletes a record of the given kind.
func (s *Service) Delete(ctx context.Context, tenant shared.Tenant, kind RecordKind, id, actorID string) error {
	if !tenant.Valid() {
		return shared.ErrTenantRequired
	}
	if id == "" {
		return fmt.Errorf("inventory: %w: id required", shared.ErrValidation)
	}
	if err := s.store.SoftDelete(ctx, tenant.CompanyID, kind, id); err != nil {
		return err
	}
	s.afterWrite(ctx, tenant.CompanyID, actorID, fmt.Sprintf("inventory:%s:delete", kind), id, nil)
	return nil
}

func (s *Service) afterWrite(ctx context.Context, companyID, actorID, action, entityID string, meta map[string]any) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, companyID); err != nil {
			s.logger.Warn("invalidate report cache", slog.String("company_id", companyID), slog.Any("error", err))
		}
	}
	if s.audit != nil {
		err := s.audit.Record(ctx, shared.AuditLog{
			CompanyID: companyID,
			ActorID:   actorID,
			Action:    action,
			Entity:    "inventory_record",
			EntityID:  entityID,
			Meta:      meta,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("record audit log", slog.String("action", action), slog.Any("error", err))
		}
	}
}
