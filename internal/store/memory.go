package store

import (
	"sort"
	"sync"

	"github.com/krznanoziyal/storyassist-api/internal/models"
)

// MemoryDocumentStore is the default document store: a process-lifetime map.
// Matches the service's stateless deployment; nothing survives a restart.
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]models.Document
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: make(map[string]models.Document)}
}

func (s *MemoryDocumentStore) Create(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = *doc
	return nil
}

func (s *MemoryDocumentStore) Get(id string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (s *MemoryDocumentStore) List() ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]models.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	// Map iteration order is random; present newest-first like an editor's
	// recent-files list
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].LastModified.After(docs[j].LastModified)
	})
	return docs, nil
}

func (s *MemoryDocumentStore) Update(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; !ok {
		return ErrNotFound
	}
	s.docs[doc.ID] = *doc
	return nil
}

func (s *MemoryDocumentStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *MemoryDocumentStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

// MemoryStoryBibleStore keeps generated story-bible items in memory, keyed by
// (document, category).
type MemoryStoryBibleStore struct {
	mu    sync.RWMutex
	items map[string]models.StoryBibleItem // key: "{category}_{documentID}"
}

func NewMemoryStoryBibleStore() *MemoryStoryBibleStore {
	return &MemoryStoryBibleStore{items: make(map[string]models.StoryBibleItem)}
}

func (s *MemoryStoryBibleStore) Put(item *models.StoryBibleItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	return nil
}

func (s *MemoryStoryBibleStore) Get(documentID, category string) (*models.StoryBibleItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[category+"_"+documentID]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStoryBibleStore) ListByDocument(documentID string) ([]models.StoryBibleItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.StoryBibleItem, 0)
	for _, item := range s.items {
		if item.DocumentID == documentID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Type < items[j].Type
	})
	return items, nil
}
