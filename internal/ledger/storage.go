package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Store is the in-memory ordered collection of sale records and the single
// source of truth for the UI. It owns every record exclusively: all methods
// return copies, and mutations go through the store's own lookup.
//
// The original app was single-threaded; an HTTP server is not, so the store
// is guarded by a mutex.
type Store struct {
	mu      sync.Mutex
	records []SaleRecord
	counter int
	prefix  string
}

// NewStore creates an empty store. prefix is the order-number prefix,
// e.g. "NTS" for orders like NTS-2025-001.
func NewStore(prefix string) *Store {
	return &Store{
		counter: 1,
		prefix:  prefix,
	}
}

// Load replaces the collection wholesale, as after an initial sync or a
// manual resync. Duplicated order numbers keep their first occurrence. The
// counter is recomputed as max numeric suffix + 1, defaulting to 1.
func (s *Store) Load(records []SaleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
	seen := make(map[string]bool, len(records))
	maxSuffix := 0
	for _, r := range records {
		if seen[r.OrderNumber] {
			continue
		}
		seen[r.OrderNumber] = true
		s.records = append(s.records, r)
		if n, ok := orderSuffix(r.OrderNumber); ok && n > maxSuffix {
			maxSuffix = n
		}
	}
	s.counter = maxSuffix + 1
}

// FindByOrderNumber returns the record's current index, or false if it is
// not present. Lookup is linear: the collection is small and the UI
// re-derives indices after every filtered view anyway.
func (s *Store) FindByOrderNumber(orderNumber string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(orderNumber)
}

// Get returns a copy of the record with the given order number.
func (s *Store) Get(orderNumber string) (SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.indexOf(orderNumber)
	if !ok {
		return SaleRecord{}, ErrNotFound
	}
	return s.records[i], nil
}

// UpsertByOrderNumber replaces an existing record in place, preserving its
// position, or appends a new one and advances the counter. It reports
// whether a new record was created.
func (s *Store) UpsertByOrderNumber(record SaleRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.indexOf(record.OrderNumber); ok {
		s.records[i] = record
		return false
	}
	s.records = append(s.records, record)
	if n, ok := orderSuffix(record.OrderNumber); ok && n+1 > s.counter {
		s.counter = n + 1
	} else {
		s.counter++
	}
	return true
}

// RemoveAt deletes the record at index permanently. The counter is not
// touched: issued numbers are never reused while the store lives.
func (s *Store) RemoveAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return ErrNotFound
	}
	s.records = append(s.records[:index], s.records[index+1:]...)
	return nil
}

// All returns a copy of every record, in store order.
func (s *Store) All() []SaleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SaleRecord, len(s.records))
	copy(out, s.records)
	return out
}

// ActiveOnly returns every non-cancelled record. Aggregate metrics are
// computed over this view.
func (s *Store) ActiveOnly() []SaleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SaleRecord, 0, len(s.records))
	for _, r := range s.records {
		if r.PaymentStatus != StatusCancelled {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// NextOrderNumber formats the number the next created record would get,
// without committing it: the counter only advances when a record is saved.
// The suffix is minimum three digits but widens past 999 instead of
// truncating.
func (s *Store) NextOrderNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%s-%d-%03d", s.prefix, time.Now().Year(), s.counter)
}

// Counter exposes the current counter value, mostly for tests.
func (s *Store) Counter() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter
}

func (s *Store) indexOf(orderNumber string) (int, bool) {
	for i, r := range s.records {
		if r.OrderNumber == orderNumber {
			return i, true
		}
	}
	return 0, false
}

// orderSuffix extracts the numeric suffix of an order number like
// "NTS-2025-007". Returns false for numbers that do not follow the format.
func orderSuffix(orderNumber string) (int, bool) {
	parts := strings.Split(orderNumber, "-")
	if len(parts) < 3 {
		return 0, false
	}
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
