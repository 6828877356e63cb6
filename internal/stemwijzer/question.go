package stemwijzer

import (
	"fmt"
	"slices"
)

// Category groups statements by policy area.
type Category string

const (
	CategoryClimate     Category = "Klimaat"
	CategoryImmigration Category = "Immigratie"
	CategoryHealthcare  Category = "Zorg"
	CategoryHousing     Category = "Woningmarkt"
	CategoryEconomy     Category = "Economie"
	CategoryEurope      Category = "Europa"
	CategoryEducation   Category = "Onderwijs"
	CategoryNature      Category = "Natuur"
	CategorySecurity    Category = "Veiligheid"
)

// Categories is the fixed category set in display order.
var Categories = []Category{
	CategoryClimate,
	CategoryImmigration,
	CategoryHealthcare,
	CategoryHousing,
	CategoryEconomy,
	CategoryEurope,
	CategoryEducation,
	CategoryNature,
	CategorySecurity,
}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// ParseCategory matches the category name exactly.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

type Question struct {
	ID          int      `json:"id" yaml:"id"`
	Text        string   `json:"question" yaml:"question"`
	Category    Category `json:"category" yaml:"category"`
	Subcategory string   `json:"subcategory" yaml:"subcategory"`
}

// Catalog is an immutable, id-indexed list of questions.
type Catalog struct {
	questions []Question
	byID      map[int]Question
}

// NewCatalog builds a catalog, rejecting non-positive or duplicated ids and
// unknown categories. The input slice is copied.
func NewCatalog(questions []Question) (*Catalog, error) {
	c := &Catalog{
		questions: make([]Question, 0, len(questions)),
		byID:      make(map[int]Question, len(questions)),
	}

	for _, q := range questions {
		if q.ID < 1 {
			return nil, fmt.Errorf("question id %d must be positive", q.ID)
		}
		if _, ok := c.byID[q.ID]; ok {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		if !q.Category.Valid() {
			return nil, fmt.Errorf("question %d: unknown category %q", q.ID, q.Category)
		}
		c.questions = append(c.questions, q)
		c.byID[q.ID] = q
	}

	return c, nil
}

// Questions returns a copy of the questions in catalog order.
func (c *Catalog) Questions() []Question {
	return slices.Clone(c.questions)
}

func (c *Catalog) Question(id int) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

func (c *Catalog) Len() int {
	return len(c.questions)
}

// CountByCategory returns how many questions each category holds. Every
// category of the fixed set is present, even when empty.
func (c *Catalog) CountByCategory() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		counts[cat] = 0
	}
	for _, q := range c.questions {
		counts[q.Category]++
	}
	return counts
}
