package viewer

import (
	"sync"

	"github.com/leitor-app/leitor/internal/domain"
)

// surfaceStore holds the last rendered surface per visible page slot.
// Slots are logically independent, so two in-flight renders never contend
// on the same surface; a slot is simply overwritten by whichever render
// for it resolves last.
type surfaceStore struct {
	mu    sync.RWMutex
	byDoc map[string][]*domain.Surface
}

func newSurfaceStore() *surfaceStore {
	return &surfaceStore{byDoc: make(map[string][]*domain.Surface)}
}

// clear resets a document's slots to freshly cleared (empty) surfaces.
func (st *surfaceStore) clear(documentID string, slots int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.byDoc[documentID] = make([]*domain.Surface, slots)
}

// set stores a resolved render into its slot. Stale slots (from a view
// change that shrank the visible set) are dropped.
func (st *surfaceStore) set(documentID string, slot int, surface domain.Surface) {
	st.mu.Lock()
	defer st.mu.Unlock()
	slots := st.byDoc[documentID]
	if slot < 0 || slot >= len(slots) {
		return
	}
	slots[slot] = &surface
}

// snapshot returns the resolved surfaces in slot order.
func (st *surfaceStore) snapshot(documentID string) []domain.Surface {
	st.mu.RLock()
	defer st.mu.RUnlock()
	slots := st.byDoc[documentID]
	out := make([]domain.Surface, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// drop removes a document's surfaces entirely.
func (st *surfaceStore) drop(documentID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.byDoc, documentID)
}
