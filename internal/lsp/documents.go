package lsp

import (
	"sync"

	"go.lsp.dev/uri"
)

// documentStore tracks the text of open documents. The server lints from
// this store; it never touches the filesystem for open documents.
type documentStore struct {
	mu   sync.RWMutex
	docs map[uri.URI]string
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[uri.URI]string)}
}

func (s *documentStore) open(u uri.URI, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[u] = text
}

func (s *documentStore) update(u uri.URI, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[u] = text
}

func (s *documentStore) close(u uri.URI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, u)
}

func (s *documentStore) get(u uri.URI) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[u]
	return text, ok
}
