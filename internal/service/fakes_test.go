package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/magicchef/magic-chef/backend/internal/provider"
)

// fakeGenerator returns a canned recipe and counts its calls.
type fakeGenerator struct {
	recipe *provider.GeneratedRecipe
	err    error
	calls  int
}

func (f *fakeGenerator) GenerateRecipe(ctx context.Context, req provider.GenerationRequest) (*provider.GeneratedRecipe, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.recipe, nil
}

// fakeTranslator uppercases every text and counts its calls.
type fakeTranslator struct {
	supported map[string]bool
	err       error
	short     bool
	calls     int
}

func (f *fakeTranslator) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.short {
		return texts[:1], nil
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = strings.ToUpper(t)
	}
	return out, nil
}

func (f *fakeTranslator) Supports(lang string) bool {
	if f.supported == nil {
		return true
	}
	return f.supported[lang]
}

// fakeOCREngine returns canned text and counts its calls.
type fakeOCREngine struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCREngine) ExtractText(ctx context.Context, image []byte, filename string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// memoryDraftStore keeps drafts in a map so tests need no redis.
type memoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]*RecipeDraft
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{drafts: make(map[string]*RecipeDraft)}
}

func (s *memoryDraftStore) SaveDraft(ctx context.Context, draft *RecipeDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if draft.ID == "" {
		draft.ID = "draft-" + string(rune('a'+len(s.drafts)))
	}
	s.drafts[draft.ID] = draft
	return nil
}

func (s *memoryDraftStore) GetDraft(ctx context.Context, id string) (*RecipeDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return draft, nil
}

func (s *memoryDraftStore) DeleteDraft(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

// memoryObjectStore records puts and deletes in memory.
type memoryObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func newMemoryObjectStore() *memoryObjectStore {
	return &memoryObjectStore{objects: make(map[string][]byte)}
}

func (s *memoryObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut {
		return "", errors.New("storage unavailable")
	}
	s.objects[key] = data
	return "/uploads/" + key, nil
}

func (s *memoryObjectStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memoryObjectStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
