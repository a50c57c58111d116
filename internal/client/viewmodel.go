package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/premesh-10/HealthMateAI/internal/domain/history"
)

// HistoryStore is the slice of the store the view model needs.
type HistoryStore interface {
	List(ctx context.Context, limit, skip int) ([]*history.AnalysisRecord, error)
	Delete(ctx context.Context, id history.RecordID) error
}

// ViewModel holds the loaded history list for display: mapping, search,
// export, detail lookup, and optimistic deletes. Entries keep the store's
// ordering; the view model never re-sorts.
type ViewModel struct {
	store HistoryStore

	mu         sync.Mutex
	entries    []history.HistoryEntry
	search     string
	generation uint64
	cancelPrev context.CancelFunc
}

func NewViewModel(store HistoryStore) *ViewModel {
	return &ViewModel{store: store}
}

// Load fetches the history list. A Load supersedes any prior in-flight
// load: the old request is cancelled and its result, if it still arrives,
// is discarded rather than applied over newer state.
func (vm *ViewModel) Load(ctx context.Context, limit, skip int) error {
	vm.mu.Lock()
	if vm.cancelPrev != nil {
		vm.cancelPrev()
	}
	ctx, cancel := context.WithCancel(ctx)
	vm.cancelPrev = cancel
	vm.generation++
	gen := vm.generation
	vm.mu.Unlock()

	records, err := vm.store.List(ctx, limit, skip)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if gen != vm.generation {
		// superseded load; neither its state nor its error applies
		return nil
	}
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return nil
		}
		return err
	}
	vm.entries = history.MapRecords(records)
	return nil
}

// Close cancels any in-flight load. Used on view teardown.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.cancelPrev != nil {
		vm.cancelPrev()
		vm.cancelPrev = nil
	}
}

// SetSearch updates the filter term applied by Visible and Export.
func (vm *ViewModel) SetSearch(term string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.search = term
}

// Entries returns the full loaded set in store order.
func (vm *ViewModel) Entries() []history.HistoryEntry {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]history.HistoryEntry(nil), vm.entries...)
}

// Visible returns the loaded set filtered by the current search term.
func (vm *ViewModel) Visible() []history.HistoryEntry {
	vm.mu.Lock()
	entries := append([]history.HistoryEntry(nil), vm.entries...)
	term := vm.search
	vm.mu.Unlock()
	return history.Search(entries, term)
}

// Detail returns the full entry for expanded display from the
// already-loaded set; it never re-fetches.
func (vm *ViewModel) Detail(id history.RecordID) (history.HistoryEntry, bool) {
	return history.Find(vm.Entries(), id)
}

// Export serializes the currently visible set to the CSV artifact. An
// empty visible set yields ErrNothingToExport and no file.
func (vm *ViewModel) Export(now time.Time) (filename, csv string, err error) {
	csv, err = history.ExportCSV(vm.Visible())
	if err != nil {
		return "", "", err
	}
	return history.ExportFilename(now), csv, nil
}

// Delete removes the entry from the displayed list immediately, then
// confirms with the backend. On remote failure the entry stays removed
// from view (the accepted trade-off: the local view may diverge from the
// store until the next full reload) and the error is reported.
func (vm *ViewModel) Delete(ctx context.Context, id history.RecordID) error {
	vm.mu.Lock()
	for i, e := range vm.entries {
		if e.ID == id {
			vm.entries = append(vm.entries[:i], vm.entries[i+1:]...)
			break
		}
	}
	vm.mu.Unlock()

	return vm.store.Delete(ctx, id)
}
