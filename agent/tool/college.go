package tool

import (
	"slices"
	"strings"

	catalogx "github.com/tanpawarit/Chative-College-Advisor/agent/catalog"
)

const (
	ToolGetCollegeData = "get_college_data"

	MaxCollegeResults = 5
	NoCollegesMessage = "No colleges found matching the criteria in the simulated database. Please try broadening your search or modifying criteria."
)

type CollegeCriteria struct {
	Major              string   `json:"major"`
	MinRank            *int     `json:"min_rank,omitempty"`
	MaxRank            *int     `json:"max_rank,omitempty"`
	LocationPreference string   `json:"location_preference,omitempty"`
	AcademicSkills     []string `json:"academic_skills,omitempty"`
	// ExtraCurriculars is accepted for the model's benefit and reported in
	// debug notices. It never filters.
	ExtraCurriculars []string `json:"extra_curriculars,omitempty"`
}

// FindColleges returns up to MaxCollegeResults colleges ordered by rank.
func FindColleges(store *catalogx.Store, criteria CollegeCriteria) QueryResult[catalogx.College] {
	var matches []catalogx.College
	for _, c := range store.Colleges() {
		if collegeMatches(c, criteria) {
			matches = append(matches, c)
		}
	}

	if len(matches) == 0 {
		return NotFound[catalogx.College](NoCollegesMessage)
	}

	slices.SortStableFunc(matches, func(a, b catalogx.College) int {
		return a.Rank - b.Rank
	})
	if len(matches) > MaxCollegeResults {
		matches = matches[:MaxCollegeResults]
	}
	return Found(matches)
}

func collegeMatches(c catalogx.College, criteria CollegeCriteria) bool {
	if !strings.EqualFold(c.Major, criteria.Major) {
		return false
	}
	if criteria.MinRank != nil && c.Rank < *criteria.MinRank {
		return false
	}
	if criteria.MaxRank != nil && c.Rank > *criteria.MaxRank {
		return false
	}
	if criteria.LocationPreference != "" && !containsFold(c.Location, criteria.LocationPreference) {
		return false
	}
	if len(criteria.AcademicSkills) > 0 && !anySkillPreferred(criteria.AcademicSkills, c.SkillsPreferred) {
		return false
	}
	return true
}

func anySkillPreferred(skills []string, preferred []string) bool {
	for _, skill := range skills {
		for _, p := range preferred {
			if strings.EqualFold(skill, p) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
