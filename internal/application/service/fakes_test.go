package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/internal/domain/repository"
)

// In-memory repository fakes. They follow the storage contracts the services
// rely on: not-found reads return (nil, nil) and list results are copies.

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func strPtr(s string) *string {
	return &s
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeFiscalRepo struct {
	records []entity.FiscalRecord
}

func (r *fakeFiscalRepo) Create(ctx context.Context, record *entity.FiscalRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeFiscalRepo) CreateBatch(ctx context.Context, records []entity.FiscalRecord) error {
	for i := range records {
		if err := r.Create(ctx, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeFiscalRepo) GetByNumber(ctx context.Context, period, number string) (*entity.FiscalRecord, error) {
	for i := range r.records {
		if r.records[i].Period == period && r.records[i].Number == number {
			record := r.records[i]
			return &record, nil
		}
	}
	return nil, nil
}

func (r *fakeFiscalRepo) Update(ctx context.Context, record *entity.FiscalRecord) error {
	for i := range r.records {
		if r.records[i].Period == record.Period && r.records[i].Number == record.Number {
			r.records[i] = *record
			return nil
		}
	}
	return errors.New("fiscal record not found")
}

func (r *fakeFiscalRepo) List(ctx context.Context, params *repository.FiscalRecordFilterParams) ([]entity.FiscalRecord, int64, error) {
	out := []entity.FiscalRecord{}
	for _, record := range r.records {
		if params.Period != "" && record.Period != params.Period {
			continue
		}
		if params.DivergenceStatus != nil && record.DivergenceStatus != *params.DivergenceStatus {
			continue
		}
		if params.DivergenceType != nil && (record.DivergenceType == nil || *record.DivergenceType != *params.DivergenceType) {
			continue
		}
		out = append(out, record)
	}
	return out, int64(len(out)), nil
}

func (r *fakeFiscalRepo) ListByPeriod(ctx context.Context, period string) ([]entity.FiscalRecord, error) {
	out := []entity.FiscalRecord{}
	for _, record := range r.records {
		if record.Period == period {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeFiscalRepo) CountByDivergenceType(ctx context.Context, period string) (map[enum.DivergenceType]int64, error) {
	counts := make(map[enum.DivergenceType]int64)
	for _, record := range r.records {
		if record.Period != period || record.DivergenceStatus != enum.DivergenceStatusDivergente {
			continue
		}
		if record.DivergenceType != nil {
			counts[*record.DivergenceType]++
		}
	}
	return counts, nil
}

func (r *fakeFiscalRepo) DeleteByPeriod(ctx context.Context, period string) error {
	kept := []entity.FiscalRecord{}
	for _, record := range r.records {
		if record.Period != period {
			kept = append(kept, record)
		}
	}
	r.records = kept
	return nil
}

type fakeLedgerRepo struct {
	events []entity.LedgerEvent
}

func (r *fakeLedgerRepo) Append(ctx context.Context, event *entity.LedgerEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeLedgerRepo) AppendBatch(ctx context.Context, events []entity.LedgerEvent) error {
	for i := range events {
		if err := r.Append(ctx, &events[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeLedgerRepo) List(ctx context.Context, params *repository.LedgerFilterParams) ([]entity.LedgerEvent, int64, error) {
	out := []entity.LedgerEvent{}
	for _, event := range r.events {
		if params.Period != "" && event.Period != params.Period {
			continue
		}
		if params.Vendor != "" && event.Vendor != params.Vendor {
			continue
		}
		if params.OriginID != "" && event.OriginID != params.OriginID {
			continue
		}
		if params.Type != nil && event.Type != *params.Type {
			continue
		}
		out = append(out, event)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLedgerRepo) ClearReportEvents(ctx context.Context, period string) error {
	kept := []entity.LedgerEvent{}
	for _, event := range r.events {
		if event.Period == period && event.FromReport {
			continue
		}
		kept = append(kept, event)
	}
	r.events = kept
	return nil
}

func (r *fakeLedgerRepo) VendorTotals(ctx context.Context, period string) ([]repository.VendorTotal, error) {
	totals := make(map[string]decimal.Decimal)
	for _, event := range r.events {
		if event.Period != period {
			continue
		}
		totals[event.Vendor] = totals[event.Vendor].Add(event.Value)
	}
	out := make([]repository.VendorTotal, 0, len(totals))
	for vendor, total := range totals {
		out = append(out, repository.VendorTotal{Vendor: vendor, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vendor < out[j].Vendor })
	return out, nil
}

func (r *fakeLedgerRepo) VendorSummaries(ctx context.Context, period string) ([]repository.VendorLedgerSummary, error) {
	summaries := make(map[string]*repository.VendorLedgerSummary)
	for _, event := range r.events {
		if event.Period != period || event.Type == enum.LedgerEventPagamento {
			continue
		}
		summary, ok := summaries[event.Vendor]
		if !ok {
			summary = &repository.VendorLedgerSummary{
				Vendor:  event.Vendor,
				Gross:   decimal.Zero,
				Returns: decimal.Zero,
			}
			summaries[event.Vendor] = summary
		}
		if event.Value.IsPositive() {
			summary.Gross = summary.Gross.Add(event.Value)
		} else {
			summary.Returns = summary.Returns.Add(event.Value.Neg())
		}
	}
	out := make([]repository.VendorLedgerSummary, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vendor < out[j].Vendor })
	return out, nil
}

type fakeReceivableRepo struct {
	items       map[string]entity.Receivable
	settlements []entity.Settlement
}

func newFakeReceivableRepo() *fakeReceivableRepo {
	return &fakeReceivableRepo{items: make(map[string]entity.Receivable)}
}

func (r *fakeReceivableRepo) Create(ctx context.Context, receivable *entity.Receivable) error {
	if _, exists := r.items[receivable.ID]; exists {
		return errors.New("duplicate receivable")
	}
	r.items[receivable.ID] = *receivable
	return nil
}

func (r *fakeReceivableRepo) GetByID(ctx context.Context, id string) (*entity.Receivable, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	for _, settlement := range r.settlements {
		if settlement.ReceivableID == id {
			item.Settlements = append(item.Settlements, settlement)
		}
	}
	return &item, nil
}

func (r *fakeReceivableRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Receivable, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *fakeReceivableRepo) Update(ctx context.Context, receivable *entity.Receivable) error {
	if _, ok := r.items[receivable.ID]; !ok {
		return errors.New("receivable not found")
	}
	stored := *receivable
	stored.Settlements = nil
	r.items[receivable.ID] = stored
	return nil
}

func (r *fakeReceivableRepo) List(ctx context.Context, params *repository.ReceivableFilterParams) ([]entity.Receivable, int64, error) {
	now := time.Now()
	out := []entity.Receivable{}
	for _, item := range r.items {
		if params.Period != "" && item.Period != params.Period {
			continue
		}
		if params.Vendor != "" && item.Vendor != params.Vendor {
			continue
		}
		if params.Status != nil {
			if *params.Status == enum.ReceivableStatusVencida {
				if !item.IsOverdue(now) {
					continue
				}
			} else if item.Status != *params.Status {
				continue
			}
		}
		if params.OverdueOnly && !item.IsOverdue(now) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeReceivableRepo) ListOpen(ctx context.Context, dueBefore *time.Time) ([]entity.Receivable, error) {
	out := []entity.Receivable{}
	for _, item := range r.items {
		if !item.Status.IsOpen() {
			continue
		}
		if dueBefore != nil && !item.DueDate.Before(*dueBefore) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReceivableRepo) AddSettlement(ctx context.Context, settlement *entity.Settlement) error {
	if settlement.ID == uuid.Nil {
		settlement.ID = uuid.New()
	}
	r.settlements = append(r.settlements, *settlement)
	return nil
}

type fakeResolutionRepo struct {
	records []entity.ResolutionRecord
}

func (r *fakeResolutionRepo) Create(ctx context.Context, record *entity.ResolutionRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeResolutionRepo) ListByRecord(ctx context.Context, period, number string) ([]entity.ResolutionRecord, error) {
	out := []entity.ResolutionRecord{}
	for _, record := range r.records {
		if record.Period == period && record.RecordNumber == number {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeResolutionRepo) ListByPeriod(ctx context.Context, period string) ([]entity.ResolutionRecord, error) {
	out := []entity.ResolutionRecord{}
	for _, record := range r.records {
		if record.Period == period {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeCommissionRepo struct {
	items []entity.Commission
}

func (r *fakeCommissionRepo) DeleteByPeriod(ctx context.Context, period string) error {
	kept := []entity.Commission{}
	for _, item := range r.items {
		if item.Period != period {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeCommissionRepo) CreateBatch(ctx context.Context, commissions []entity.Commission) error {
	for i := range commissions {
		if commissions[i].ID == uuid.Nil {
			commissions[i].ID = uuid.New()
		}
		r.items = append(r.items, commissions[i])
	}
	return nil
}

func (r *fakeCommissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Commission, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (r *fakeCommissionRepo) Update(ctx context.Context, commission *entity.Commission) error {
	for i := range r.items {
		if r.items[i].ID == commission.ID {
			r.items[i] = *commission
			return nil
		}
	}
	return errors.New("commission not found")
}

func (r *fakeCommissionRepo) ListByPeriod(ctx context.Context, period string) ([]entity.Commission, error) {
	out := []entity.Commission{}
	for _, item := range r.items {
		if item.Period == period {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vendor < out[j].Vendor })
	return out, nil
}

type fakeVendorRepo struct {
	vendors []entity.Vendor
}

func (r *fakeVendorRepo) Create(ctx context.Context, vendor *entity.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	r.vendors = append(r.vendors, *vendor)
	return nil
}

func (r *fakeVendorRepo) GetByCode(ctx context.Context, code string) (*entity.Vendor, error) {
	for i := range r.vendors {
		if r.vendors[i].Code == code {
			vendor := r.vendors[i]
			return &vendor, nil
		}
	}
	return nil, nil
}

func (r *fakeVendorRepo) Update(ctx context.Context, vendor *entity.Vendor) error {
	for i := range r.vendors {
		if r.vendors[i].Code == vendor.Code {
			r.vendors[i] = *vendor
			return nil
		}
	}
	return errors.New("vendor not found")
}

func (r *fakeVendorRepo) List(ctx context.Context, activeOnly bool) ([]entity.Vendor, error) {
	out := []entity.Vendor{}
	for _, vendor := range r.vendors {
		if activeOnly && !vendor.Active {
			continue
		}
		out = append(out, vendor)
	}
	return out, nil
}

type fakeClosingRepo struct {
	items map[string]entity.ClosingPeriod
}

func newFakeClosingRepo() *fakeClosingRepo {
	return &fakeClosingRepo{items: make(map[string]entity.ClosingPeriod)}
}

func (r *fakeClosingRepo) Create(ctx context.Context, period *entity.ClosingPeriod) error {
	if _, exists := r.items[period.Period]; exists {
		return errors.New("duplicate period")
	}
	r.items[period.Period] = *period
	return nil
}

func (r *fakeClosingRepo) Get(ctx context.Context, period string) (*entity.ClosingPeriod, error) {
	item, ok := r.items[period]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *fakeClosingRepo) Update(ctx context.Context, period *entity.ClosingPeriod) error {
	if _, ok := r.items[period.Period]; !ok {
		return errors.New("period not found")
	}
	r.items[period.Period] = *period
	return nil
}

func (r *fakeClosingRepo) List(ctx context.Context) ([]entity.ClosingPeriod, error) {
	out := []entity.ClosingPeriod{}
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	return out, nil
}

type fakeUserRepo struct {
	users []entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByProviderID(ctx context.Context, provider, providerID string) (*entity.User, error) {
	for i := range r.users {
		if r.users[i].Provider == provider && r.users[i].ProviderID != nil && *r.users[i].ProviderID == providerID {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return errors.New("user not found")
}
