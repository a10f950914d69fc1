package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
)

type memoryRepo struct {
	inward  []InwardRecord
	outward []OutwardRecord
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{}
}

func (r *memoryRepo) InsertInward(ctx context.Context, rec InwardRecord) error {
	r.inward = append(r.inward, rec)
	return nil
}

func (r *memoryRepo) InsertOutward(ctx context.Context, rec OutwardRecord) error {
	r.outward = append(r.outward, rec)
	return nil
}

func (r *memoryRepo) SoftDelete(ctx context.Context, companyID string, kind RecordKind, id string) error {
	switch kind {
	case KindInward:
		for i := range r.inward {
			if r.inward[i].CompanyID == companyID && r.inward[i].ID == id {
				r.inward[i].IsDeleted = true
				return nil
			}
		}
	case KindOutward:
		for i := range r.outward {
			if r.outward[i].CompanyID == companyID && r.outward[i].ID == id {
				r.outward[i].IsDeleted = true
				return nil
			}
		}
	default:
		return ErrUnknownKind
	}
	return ErrRecordNotFound
}

type stubAudit struct {
	logs []shared.AuditLog
}

func (s *stubAudit) Record(ctx context.Context, log shared.AuditLog) error {
	s.logs = append(s.logs, log)
	return nil
}

type stubCache struct {
	invalidated []string
	err         error
}

func (s *stubCache) Invalidate(ctx context.Context, companyID string) error {
	s.invalidated = append(s.invalidated, companyID)
	return s.err
}

func newTestService() (*Service, *memoryRepo, *stubAudit, *stubCache) {
	repo := newMemoryRepo()
	audit := &stubAudit{}
	cache := &stubCache{}
	svc := NewService(repo, audit, cache, nil)
	svc.now = func() time.Time { return time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC) }
	return svc, repo, audit, cache
}

func TestRecordInwardStoresRecordAndInvalidates(t *testing.T) {
	svc, repo, audit, cache := newTestService()
	cost := decimal.RequireFromString("12.5")

	rec, err := svc.RecordInward(context.Background(), InwardInput{
		CompanyID:   "co-1",
		ProductID:   "P1",
		WarehouseID: "W1",
		Quantity:    50,
		UnitCost:    &cost,
		PartyID:     "S1",
		ActorID:     "user-7",
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Len(t, repo.inward, 1)
	require.Equal(t, rec, repo.inward[0])
	require.Equal(t, time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC), rec.CreatedAt)
	require.Equal(t, rec.CreatedAt, rec.EffectiveDate())
	require.Equal(t, []string{"co-1"}, cache.invalidated)
	require.Len(t, audit.logs, 1)
	require.Equal(t, "inventory:inward", audit.logs[0].Action)
	require.Equal(t, "user-7", audit.logs[0].ActorID)
}

func TestRecordInwardRejectsInvalidInput(t *testing.T) {
	svc, repo, _, cache := newTestService()
	negative := decimal.NewFromInt(-1)

	_, err := svc.RecordInward(context.Background(), InwardInput{CompanyID: "co-1", ProductID: "P1", WarehouseID: "W1", Quantity: 0})
	require.ErrorIs(t, err, ErrInvalidQuantity)
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.RecordInward(context.Background(), InwardInput{CompanyID: "co-1", ProductID: "P1", WarehouseID: "W1", Quantity: 1, UnitCost: &negative})
	require.ErrorIs(t, err, ErrInvalidUnitCost)

	_, err = svc.RecordInward(context.Background(), InwardInput{CompanyID: "co-1", WarehouseID: "W1", Quantity: 1})
	require.ErrorIs(t, err, shared.ErrValidation)

	require.Empty(t, repo.inward)
	require.Empty(t, cache.invalidated)
}

func TestRecordOutwardAllowsOverIssue(t *testing.T) {
	svc, repo, audit, _ := newTestService()

	rec, err := svc.RecordOutward(context.Background(), OutwardInput{
		CompanyID:       "co-1",
		ProductID:       "P1",
		WarehouseID:     "W1",
		Quantity:        500,
		Destination:     "Salon Belle",
		TransactionDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, repo.outward, 1)
	require.Equal(t, "2025-01-02", rec.EffectiveDate().Format("2006-01-02"))
	require.Equal(t, "Salon Belle", audit.logs[0].Meta["destination"])
}

func TestRecordSurvivesCacheFailure(t *testing.T) {
	svc, repo, _, cache := newTestService()
	cache.err = errors.New("redis down")

	_, err := svc.RecordOutward(context.Background(), OutwardInput{CompanyID: "co-1", ProductID: "P1", WarehouseID: "W1", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, repo.outward, 1)
}

func TestDeleteSoftDeletesRecord(t *testing.T) {
	svc, repo, audit, cache := newTestService()
	tenant := shared.NewTenant("co-1", "user-1")
	rec, err := svc.RecordInward(context.Background(), InwardInput{CompanyID: "co-1", ProductID: "P1", WarehouseID: "W1", Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), tenant, KindInward, rec.ID, tenant.ActorID))
	require.True(t, repo.inward[0].IsDeleted)
	require.Len(t, cache.invalidated, 2)
	require.Equal(t, "inventory:inward:delete", audit.logs[1].Action)

	err = svc.Delete(context.Background(), shared.NewTenant("co-2", ""), KindInward, rec.ID, "")
	require.ErrorIs(t, err, ErrRecordNotFound)
	require.ErrorIs(t, err, shared.ErrNotFound)

	err = svc.Delete(context.Background(), shared.Tenant{}, KindInward, rec.ID, "")
	require.ErrorIs(t, err, shared.ErrTenantRequired)
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("outward")
	require.NoError(t, err)
	require.Equal(t, KindOutward, kind)

	_, err = ParseKind("transfer")
	require.ErrorIs(t, err, ErrUnknownKind)
}
