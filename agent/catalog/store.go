package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

// SentinelAny marks a scholarship that is not tied to a college or major.
const SentinelAny = "Any"

var (
	//go:embed data/colleges.json
	collegesRaw []byte

	//go:embed data/scholarships.json
	scholarshipsRaw []byte
)

type College struct {
	Name            string   `json:"name"`
	Major           string   `json:"major"`
	Rank            int      `json:"rank"`
	Location        string   `json:"location"`
	Scholarships    []string `json:"scholarships"`
	Notes           string   `json:"notes"`
	MinGPA          float64  `json:"min_gpa"`
	SkillsPreferred []string `json:"skills_preferred"`
}

func (c College) clone() College {
	c.Scholarships = slices.Clone(c.Scholarships)
	c.SkillsPreferred = slices.Clone(c.SkillsPreferred)
	return c
}

type Scholarship struct {
	Name     string `json:"name"`
	College  string `json:"college"`
	Major    string `json:"major"`
	Criteria string `json:"criteria"`
	Amount   string `json:"amount"`
}

// Store holds the college and scholarship fixtures. It is never mutated
// after construction and every accessor hands out copies.
type Store struct {
	colleges     []College
	scholarships []Scholarship
}

var (
	defaultStore *Store
	defaultOnce  sync.Once
)

// Default returns the store built from the embedded fixtures.
func Default() *Store {
	defaultOnce.Do(func() {
		st, err := load(collegesRaw, scholarshipsRaw)
		if err != nil {
			panic(err)
		}
		defaultStore = st
	})
	return defaultStore
}

func New(colleges []College, scholarships []Scholarship) *Store {
	st := &Store{
		colleges:     make([]College, 0, len(colleges)),
		scholarships: slices.Clone(scholarships),
	}
	for _, c := range colleges {
		st.colleges = append(st.colleges, c.clone())
	}
	return st
}

func load(collegesJSON, scholarshipsJSON []byte) (*Store, error) {
	var colleges []College
	if err := json.Unmarshal(collegesJSON, &colleges); err != nil {
		return nil, fmt.Errorf("decode college fixtures: %w", err)
	}
	var scholarships []Scholarship
	if err := json.Unmarshal(scholarshipsJSON, &scholarships); err != nil {
		return nil, fmt.Errorf("decode scholarship fixtures: %w", err)
	}

	for i, c := range colleges {
		if c.Name == "" || c.Major == "" {
			return nil, fmt.Errorf("college fixture %d: name and major are required", i)
		}
		if c.Rank <= 0 {
			return nil, fmt.Errorf("college fixture %q: rank must be > 0", c.Name)
		}
	}
	for i, s := range scholarships {
		if s.Name == "" {
			return nil, fmt.Errorf("scholarship fixture %d: name is required", i)
		}
	}

	return &Store{colleges: colleges, scholarships: scholarships}, nil
}

// Colleges returns the college records in fixture order.
func (s *Store) Colleges() []College {
	out := make([]College, 0, len(s.colleges))
	for _, c := range s.colleges {
		out = append(out, c.clone())
	}
	return out
}

// Scholarships returns the scholarship records in fixture order.
func (s *Store) Scholarships() []Scholarship {
	return slices.Clone(s.scholarships)
}

func (s *Store) LenColleges() int {
	return len(s.colleges)
}

func (s *Store) LenScholarships() int {
	return len(s.scholarships)
}
