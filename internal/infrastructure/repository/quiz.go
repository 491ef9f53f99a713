package repository

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"quizmatch/internal/domain"
)

// QuizRegistry stores quiz templates by ID. Templates are immutable once
// registered, so a read lock suffices for lookups.
type QuizRegistry struct {
	mu        sync.RWMutex
	templates map[string]*domain.QuizTemplate
}

func NewQuizRegistry() *QuizRegistry {
	return &QuizRegistry{
		templates: make(map[string]*domain.QuizTemplate),
	}
}

func (r *QuizRegistry) Register(quizID string, template *domain.QuizTemplate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[quizID] = template
}

func (r *QuizRegistry) Get(quizID string) (*domain.QuizTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	template, ok := r.templates[quizID]
	if !ok {
		return nil, domain.ErrQuizNotFound
	}
	return template, nil
}

func (r *QuizRegistry) ListIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *QuizRegistry) Remove(quizID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.templates[quizID]; !ok {
		return false
	}
	delete(r.templates, quizID)
	return true
}

func (r *QuizRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// LoadDir registers every *.json quiz file found in dir, keyed by file name
// without extension. A missing directory is not an error; it just means
// nothing to load.
func (r *QuizRegistry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		template, err := domain.LoadQuizFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return loaded, err
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		r.Register(id, template)
		loaded++
	}

	return loaded, nil
}
