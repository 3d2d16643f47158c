package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"quizku_backend/internals/features/quiz/catalog/model"
)

// QuestionKey identifies one question. Section keys are only unique within
// their module, never globally.
type QuestionKey struct {
	ModuleName string
	SectionKey string
}

// Catalog is the in-memory snapshot of the question bank. It is loaded once
// at startup and is read-only afterwards; integrity audits always go back to
// the quiz_questions table instead of trusting this snapshot.
type Catalog struct {
	modules []string
	counts  map[string]int
	keys    []QuestionKey
	index   map[QuestionKey]struct{}
}

// Module order and sizes of the fixed question bank (876 questions total).
var defaultModules = []struct {
	Name  string
	Count int
}{
	{"database", 150},
	{"network", 120},
	{"os", 110},
	{"algorithm", 140},
	{"security", 100},
	{"web", 96},
	{"language", 90},
	{"architecture", 70},
}

// Default builds the production catalog: 8 modules, section keys q1..qN.
func Default() *Catalog {
	c := &Catalog{
		counts: make(map[string]int),
		index:  make(map[QuestionKey]struct{}),
	}
	for _, m := range defaultModules {
		c.modules = append(c.modules, m.Name)
		c.counts[m.Name] = m.Count
		for i := 1; i <= m.Count; i++ {
			k := QuestionKey{ModuleName: m.Name, SectionKey: fmt.Sprintf("q%d", i)}
			c.keys = append(c.keys, k)
			c.index[k] = struct{}{}
		}
	}
	return c
}

// FromKeys builds a catalog from an explicit key list (used by tests and by
// LoadFromDB). Duplicate keys are rejected.
func FromKeys(keys []QuestionKey) (*Catalog, error) {
	c := &Catalog{
		counts: make(map[string]int),
		index:  make(map[QuestionKey]struct{}),
	}
	for _, k := range keys {
		if _, dup := c.index[k]; dup {
			return nil, fmt.Errorf("duplicate catalog key %s/%s", k.ModuleName, k.SectionKey)
		}
		if c.counts[k.ModuleName] == 0 {
			c.modules = append(c.modules, k.ModuleName)
		}
		c.counts[k.ModuleName]++
		c.keys = append(c.keys, k)
		c.index[k] = struct{}{}
	}
	return c, nil
}

// LoadFromDB reads the quiz_questions table into a snapshot.
func LoadFromDB(db *gorm.DB) (*Catalog, error) {
	var rows []model.QuizQuestionModel
	if err := db.
		Order("quiz_question_module_name ASC, quiz_question_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	keys := make([]QuestionKey, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, QuestionKey{
			ModuleName: r.QuizQuestionModuleName,
			SectionKey: r.QuizQuestionSectionKey,
		})
	}
	c, err := FromKeys(keys)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Question catalog loaded: %d modules, %d questions", len(c.modules), len(c.keys))
	return c, nil
}

func (c *Catalog) TotalQuestions() int { return len(c.keys) }

func (c *Catalog) Modules() []string {
	out := make([]string, len(c.modules))
	copy(out, c.modules)
	return out
}

func (c *Catalog) ModuleCount(moduleName string) int { return c.counts[moduleName] }

func (c *Catalog) HasModule(moduleName string) bool {
	_, ok := c.counts[moduleName]
	return ok
}

func (c *Catalog) Has(moduleName, sectionKey string) bool {
	_, ok := c.index[QuestionKey{ModuleName: moduleName, SectionKey: sectionKey}]
	return ok
}

// Keys returns all catalog keys in module order.
func (c *Catalog) Keys() []QuestionKey {
	out := make([]QuestionKey, len(c.keys))
	copy(out, c.keys)
	return out
}
