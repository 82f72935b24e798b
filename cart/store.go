package cart

import (
	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
)

// State is the full cart state the UI renders from. Items are ordered by
// insertion and keyed by product id (no duplicates). ErrorID is transient: it
// flags the product whose last add was clipped by the unit ceiling and is
// never persisted.
type State struct {
	Items          []models.CartLineItem `json:"items"`
	ErrorID        string                `json:"errorId,omitempty"`
	BillingDetails models.BillingDetails `json:"billingDetails"`
}

// Persister stores and loads the durable part of a cart under a storage key.
type Persister interface {
	Save(key string, rec Record) error
	Load(key string) (Record, bool, error)
}

// Record is what actually gets persisted: items and billing details only.
type Record struct {
	Items          []models.CartLineItem `json:"items"`
	BillingDetails models.BillingDetails `json:"billingDetails"`
}

// Store owns a single cart. All mutations are synchronous: each one fully
// completes, persists, and notifies subscribers before the next begins.
type Store struct {
	key         string
	state       State
	persister   Persister
	subscribers []func(State)
}

// NewStore loads the cart persisted under key. A missing or unreadable record
// yields an empty cart; the error id always starts empty.
func NewStore(key string, p Persister) *Store {
	s := &Store{key: key, persister: p}
	rec, ok, err := p.Load(key)
	if err == nil && ok {
		s.state.Items = rec.Items
		s.state.BillingDetails = rec.BillingDetails
	}
	return s
}

// Subscribe registers fn to run synchronously after every mutation.
func (s *Store) Subscribe(fn func(State)) {
	s.subscribers = append(s.subscribers, fn)
}

// State returns a snapshot safe for the caller to hold across mutations.
func (s *Store) State() State {
	snap := s.state
	snap.Items = append([]models.CartLineItem(nil), s.state.Items...)
	return snap
}

// Items returns a copy of the current line items.
func (s *Store) Items() []models.CartLineItem {
	return append([]models.CartLineItem(nil), s.state.Items...)
}

// AddItem merges item into the cart. An existing line item has the requested
// quantity added and clamped to the unit ceiling; when the unclamped sum
// strictly exceeds the ceiling the item's id is flagged as the error id. A new
// item is inserted with its quantity clamped. Never returns an error to the
// caller: ceiling violations surface only through ErrorID.
func (s *Store) AddItem(item models.CartLineItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if existing := s.find(item.ID); existing != nil {
		newQuantity := existing.Quantity + quantity
		existing.Quantity = min(newQuantity, models.MaxUnitsPerItem)
		if newQuantity > models.MaxUnitsPerItem {
			s.state.ErrorID = item.ID
		}
	} else {
		item.Quantity = min(quantity, models.MaxUnitsPerItem)
		s.state.Items = append(s.state.Items, item)
	}
	s.commit()
}

// DecreaseItem subtracts by units from the item's quantity, flooring at 1.
// This path never removes the item; removal is only via RemoveItem. Absent
// items are a no-op.
func (s *Store) DecreaseItem(id string, by int) {
	existing := s.find(id)
	if existing == nil {
		return
	}
	if by < 1 {
		by = 1
	}
	existing.Quantity -= by
	if existing.Quantity < 1 {
		existing.Quantity = 1
	}
	s.commit()
}

// RemoveItem deletes the item unconditionally, regardless of quantity.
func (s *Store) RemoveItem(id string) {
	kept := s.state.Items[:0]
	for _, it := range s.state.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.state.Items = kept
	s.commit()
}

// Clear empties the cart, the error flag, and the cached billing details.
func (s *Store) Clear() {
	s.state.Items = nil
	s.state.ErrorID = ""
	s.state.BillingDetails = models.BillingDetails{}
	s.commit()
}

// AcknowledgeError clears the transient error id. No persistence: the flag was
// never written in the first place.
func (s *Store) AcknowledgeError() {
	s.state.ErrorID = ""
	s.notify()
}

// SetBillingDetails replaces the cached billing details.
func (s *Store) SetBillingDetails(details models.BillingDetails) {
	s.state.BillingDetails = details
	s.commit()
}

// Merge folds the line items of another cart (a device cart carried through
// login) into this one, running each through the normal add rules so the unit
// ceiling still holds.
func (s *Store) Merge(items []models.CartLineItem) {
	for _, it := range items {
		s.AddItem(it, it.Quantity)
	}
}

func (s *Store) find(id string) *models.CartLineItem {
	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			return &s.state.Items[i]
		}
	}
	return nil
}

// commit persists the durable fields and then notifies subscribers. A failed
// save keeps the in-memory state authoritative; the next mutation retries.
func (s *Store) commit() {
	if s.persister != nil {
		_ = s.persister.Save(s.key, Record{
			Items:          s.state.Items,
			BillingDetails: s.state.BillingDetails,
		})
	}
	s.notify()
}

func (s *Store) notify() {
	snap := s.State()
	for _, fn := range s.subscribers {
		fn(snap)
	}
}
