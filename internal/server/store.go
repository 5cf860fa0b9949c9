package server

import (
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/yahyarisas/spark-app/internal/assessment"
	"github.com/yahyarisas/spark-app/internal/prediction"
)

// stored pairs a wizard session with the variant driving it and the
// last prediction outcome. mu serializes actions on one assessment;
// distinct assessments share nothing mutable.
type stored struct {
	mu      sync.Mutex
	variant *assessment.Variant
	session assessment.Session
	outcome *prediction.Outcome
}

// SessionStore keeps in-flight assessments in memory, keyed by id. The
// controller itself is stateless between actions; this is the hosting
// layer's persistence.
type SessionStore struct {
	mu    sync.RWMutex
	items map[string]*stored
}

func NewSessionStore() *SessionStore {
	return &SessionStore{items: make(map[string]*stored)}
}

func (st *SessionStore) Create(v *assessment.Variant) (string, *stored, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", nil, err
	}

	item := &stored{variant: v, session: assessment.NewSession()}

	st.mu.Lock()
	st.items[id] = item
	st.mu.Unlock()

	return id, item, nil
}

func (st *SessionStore) Get(id string) (*stored, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	item, ok := st.items[id]
	return item, ok
}
