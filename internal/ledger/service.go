package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DeleteChallenge is the exact text a user must type to permanently delete a
// record. Case-sensitive on purpose.
const DeleteChallenge = "ELIMINAR"

// PushMode tells the gateway whether a push appends a new row or updates an
// existing one.
type PushMode string

const (
	PushCreate PushMode = "create"
	PushUpdate PushMode = "update"
)

// Gateway synchronizes the local store with the external persistence
// service. Implementations are best-effort: a failed call must never block
// or revert a local mutation.
type Gateway interface {
	Pull(ctx context.Context) ([]SaleRecord, error)
	Push(ctx context.Context, mode PushMode, record SaleRecord) error
}

// Policy holds the product decisions that are knobs rather than rules.
type Policy struct {
	// AutoSyncPayments pushes an update after each registered payment.
	// Off by default: the source app marks payments local-only and asks
	// the user to resync manually.
	AutoSyncPayments bool
}

// Service provides the record lifecycle operations on a Store, reconciling
// each mutation with the external sheet. Local state always commits first;
// the sheet is eventually-consistent at best.
type Service struct {
	// mu serializes the mutation operations. Each one is a read-modify-write
	// spanning several store calls, so the store's own lock is not enough:
	// two concurrent payments could read the same balance and lose an
	// increment. Held only for the local mutation, never across a push.
	mu      sync.Mutex
	store   *Store
	gateway Gateway
	logger  *zap.Logger
	policy  Policy
}

// NewService creates a new Service.
func NewService(store *Store, gateway Gateway, logger *zap.Logger, policy Policy) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		store:   store,
		gateway: gateway,
		logger:  logger,
		policy:  policy,
	}
}

// Store exposes the underlying record store.
func (s *Service) Store() *Store {
	return s.store
}

// SubmitResult reports what a Submit did.
type SubmitResult struct {
	Record  SaleRecord `json:"record"`
	Created bool       `json:"created"`
	Synced  bool       `json:"synced"`
}

// Submit registers a new sale or commits an edit of an existing one. The
// mode is detected by whether the submitted order number is already in the
// store. Validation failures abort before any mutation and before any
// reconciliation. The push to the sheet is best-effort: on failure the local
// record stands and Synced is false.
func (s *Service) Submit(ctx context.Context, record SaleRecord) (SubmitResult, error) {
	if err := record.Validate(); err != nil {
		return SubmitResult{}, err
	}

	record, created := s.applySubmit(record)

	mode := PushUpdate
	if created {
		mode = PushCreate
	}
	synced := s.push(ctx, mode, record)

	s.logger.Info("sale submitted",
		zap.String("order_number", record.OrderNumber),
		zap.Bool("created", created),
		zap.Bool("synced", synced),
	)
	return SubmitResult{Record: record, Created: created, Synced: synced}, nil
}

// applySubmit is the local half of Submit, one critical section.
func (s *Service) applySubmit(record SaleRecord) (SaleRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.OrderNumber == "" {
		record.OrderNumber = s.store.NextOrderNumber()
	}
	if record.SaleDate == "" {
		record.SaleDate = time.Now().Format("2006-01-02")
	}

	// Sticky cancel: editing a cancelled record never revives it.
	previous := PaymentStatus("")
	if existing, err := s.store.Get(record.OrderNumber); err == nil {
		previous = existing.PaymentStatus
	}
	record.PaymentStatus = DerivePaymentStatus(record.TotalAmount, record.AmountPaid, previous)

	created := s.store.UpsertByOrderNumber(record)
	return record, created
}

// RegisterPayment adds amount to the record's paid total and recomputes its
// status. Cancelled records reject the payment, settled records reject it,
// and paying more than the remaining balance needs an explicit confirmation.
func (s *Service) RegisterPayment(ctx context.Context, orderNumber string, amount decimal.Decimal, confirmOverpayment bool) (SaleRecord, error) {
	record, err := s.applyPayment(orderNumber, amount, confirmOverpayment)
	if err != nil {
		return SaleRecord{}, err
	}

	if s.policy.AutoSyncPayments {
		s.push(ctx, PushUpdate, record)
	} else {
		s.logger.Warn("payment registered locally only, resync to update the sheet",
			zap.String("order_number", record.OrderNumber))
	}

	s.logger.Info("payment registered",
		zap.String("order_number", record.OrderNumber),
		zap.String("amount", amount.String()),
		zap.String("status", string(record.PaymentStatus)),
	)
	return record, nil
}

// applyPayment validates and commits one payment atomically: the balance read
// and the write happen under the same lock, so concurrent payments stack up
// instead of overwriting each other.
func (s *Service) applyPayment(orderNumber string, amount decimal.Decimal, confirmOverpayment bool) (SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.Get(orderNumber)
	if err != nil {
		return SaleRecord{}, err
	}
	if record.PaymentStatus == StatusCancelled {
		return SaleRecord{}, fmt.Errorf("%w: cannot register a payment on a cancelled sale", ErrInvalidState)
	}
	remaining := record.Remaining()
	if remaining.LessThanOrEqual(decimal.Zero) {
		return SaleRecord{}, ErrAlreadySettled
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return SaleRecord{}, newValidationError("payment amount must be a positive number")
	}
	if amount.GreaterThan(remaining) && !confirmOverpayment {
		return SaleRecord{}, fmt.Errorf("%w: payment of %s exceeds remaining balance %s", ErrConfirmationRequired, amount, remaining)
	}

	record.AmountPaid = record.AmountPaid.Add(amount)
	record.PaymentStatus = DerivePaymentStatus(record.TotalAmount, record.AmountPaid, record.PaymentStatus)
	s.store.UpsertByOrderNumber(record)
	return record, nil
}

// Cancel marks the record as cancelled and stamps the cancellation date into
// its notes. Notes are append-only: the stamp extends them, never rewrites
// them. Cancelled is terminal; a second cancel is rejected.
func (s *Service) Cancel(ctx context.Context, orderNumber string, confirmed bool) (SaleRecord, error) {
	record, err := s.applyCancel(orderNumber, confirmed)
	if err != nil {
		return SaleRecord{}, err
	}

	s.logger.Warn("sale cancelled locally, resync to update the sheet",
		zap.String("order_number", record.OrderNumber))
	return record, nil
}

// applyCancel is the local half of Cancel, one critical section.
func (s *Service) applyCancel(orderNumber string, confirmed bool) (SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.Get(orderNumber)
	if err != nil {
		return SaleRecord{}, err
	}
	if record.PaymentStatus == StatusCancelled {
		return SaleRecord{}, ErrAlreadyCancelled
	}
	if !confirmed {
		return SaleRecord{}, fmt.Errorf("%w: cancellation must be confirmed", ErrConfirmationRequired)
	}

	record.PaymentStatus = StatusCancelled
	record.Notes += fmt.Sprintf(" [CANCELADO el %s]", time.Now().Format("2/1/2006"))
	s.store.UpsertByOrderNumber(record)
	return record, nil
}

// Delete removes the record permanently. It proceeds only with an explicit
// confirmation plus a challenge text that must match DeleteChallenge exactly;
// anything else leaves the store unchanged. The bridge has no delete action,
// so the sheet row survives until the next manual cleanup there.
func (s *Service) Delete(orderNumber string, confirmed bool, challenge string) error {
	if err := s.applyDelete(orderNumber, confirmed, challenge); err != nil {
		return err
	}
	s.logger.Warn("sale deleted permanently, the sheet still holds its row",
		zap.String("order_number", orderNumber))
	return nil
}

// applyDelete resolves the record's index and removes it under the same
// lock, so a concurrent mutation cannot shift positions in between.
func (s *Service) applyDelete(orderNumber string, confirmed bool, challenge string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, ok := s.store.FindByOrderNumber(orderNumber)
	if !ok {
		return ErrNotFound
	}
	if !confirmed {
		return fmt.Errorf("%w: deletion must be confirmed", ErrConfirmationRequired)
	}
	if challenge != DeleteChallenge {
		return fmt.Errorf("%w: type exactly %q to delete permanently", ErrConfirmationRequired, DeleteChallenge)
	}
	return s.store.RemoveAt(index)
}

// BeginEdit returns a snapshot of the record to pre-fill the edit form. The
// record stays in the store and is only overwritten when the edit is
// submitted, so an abandoned edit loses nothing.
func (s *Service) BeginEdit(orderNumber string) (SaleRecord, error) {
	return s.store.Get(orderNumber)
}

// ResyncResult reports the outcome of a manual resync.
type ResyncResult struct {
	Count    int    `json:"count"`
	Fallback bool   `json:"fallback"`
	Warning  string `json:"warning,omitempty"`
}

// Resync pulls the full external collection and replaces the local store
// wholesale, which can overwrite local-only changes made since the last
// push. When the pull fails, the store is loaded with the fixed example
// dataset instead of being left empty, and the diagnostic is surfaced.
func (s *Service) Resync(ctx context.Context) ResyncResult {
	records, err := s.gateway.Pull(ctx)
	if err != nil {
		s.logger.Error("pull from sheet failed, loading example dataset", zap.Error(err))
		fallback := ExampleRecords()
		s.load(fallback)
		return ResyncResult{
			Count:    len(fallback),
			Fallback: true,
			Warning:  fmt.Sprintf("could not load data from the sheet (%v); using local example data", err),
		}
	}
	s.load(records)
	s.logger.Info("store resynced from sheet", zap.Int("count", len(records)))
	return ResyncResult{Count: len(records)}
}

// load replaces the store contents without interleaving inside another
// mutation's critical section.
func (s *Service) load(records []SaleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Load(records)
}

// NextOrderNumber previews the number the next created sale would get.
func (s *Service) NextOrderNumber() string {
	return s.store.NextOrderNumber()
}

// SearchFilter narrows the table view. Empty fields match everything. Date
// bounds compare against the sale date; ISO dates order lexicographically.
type SearchFilter struct {
	Type     SaleType
	Status   PaymentStatus
	DateFrom string
	DateTo   string
	Query    string
}

// SearchMetadata carries the dashboard aggregates computed alongside a
// search. Monetary sums skip cancelled records; ActiveOrders counts records
// that are neither paid nor cancelled.
type SearchMetadata struct {
	Quantity          int              `json:"quantity"`
	TotalInvoiced     decimal.Decimal  `json:"total_invoiced"`
	TotalCollected    decimal.Decimal  `json:"total_collected"`
	PendingCollection decimal.Decimal  `json:"pending_collection"`
	TotalProfit       decimal.Decimal  `json:"total_profit"`
	ActiveOrders      int              `json:"active_orders"`
	ByType            map[SaleType]int `json:"by_type"`
}

// Search returns the records matching the filter, in store order, together
// with the dashboard metadata over the matching set.
func (s *Service) Search(filter SearchFilter) ([]SaleRecord, SearchMetadata) {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	results := make([]SaleRecord, 0)
	metadata := SearchMetadata{
		TotalInvoiced:     decimal.Zero,
		TotalCollected:    decimal.Zero,
		PendingCollection: decimal.Zero,
		TotalProfit:       decimal.Zero,
		ByType:            make(map[SaleType]int),
	}

	for _, record := range s.store.All() {
		if filter.Type != "" && record.SaleType != filter.Type {
			continue
		}
		if filter.Status != "" && record.PaymentStatus != filter.Status {
			continue
		}
		if filter.DateFrom != "" && record.SaleDate < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && record.SaleDate > filter.DateTo {
			continue
		}
		if query != "" && !matchesQuery(record, query) {
			continue
		}

		results = append(results, record)
		metadata.Quantity++

		if record.PaymentStatus == StatusCancelled {
			continue
		}
		metadata.TotalInvoiced = metadata.TotalInvoiced.Add(record.TotalAmount)
		metadata.TotalCollected = metadata.TotalCollected.Add(record.AmountPaid)
		metadata.TotalProfit = metadata.TotalProfit.Add(record.Profit())
		metadata.ByType[record.SaleType]++
		if record.PaymentStatus != StatusPaid {
			metadata.ActiveOrders++
		}
	}
	metadata.PendingCollection = metadata.TotalInvoiced.Sub(metadata.TotalCollected)

	return results, metadata
}

func matchesQuery(record SaleRecord, query string) bool {
	return strings.Contains(strings.ToLower(record.ClientName), query) ||
		strings.Contains(strings.ToLower(record.ClientEmail), query) ||
		strings.Contains(strings.ToLower(record.Destination), query)
}

// push is the best-effort half of every mutation: a failure is a warning,
// never an error for the caller, and the local mutation stands.
func (s *Service) push(ctx context.Context, mode PushMode, record SaleRecord) bool {
	if s.gateway == nil {
		return false
	}
	if err := s.gateway.Push(ctx, mode, record); err != nil {
		s.logger.Warn("push to sheet failed, local data kept",
			zap.String("order_number", record.OrderNumber),
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		return false
	}
	return true
}
