package tool

import (
	"strings"

	catalogx "github.com/tanpawarit/Chative-College-Advisor/agent/catalog"
)

const (
	ToolSearchScholarships = "search_scholarships"

	MaxScholarshipResults = 3
	NoScholarshipsMessage = "No scholarships found matching your criteria in the simulated database. Try broadening your search."

	sentinelAny = "any"
)

type ScholarshipCriteria struct {
	CollegeName     string   `json:"college_name,omitempty"`
	Major           string   `json:"major,omitempty"`
	AcademicProfile string   `json:"academic_profile,omitempty"`
	Skills          []string `json:"skills,omitempty"`
}

// FindScholarships returns the first MaxScholarshipResults matches in catalog order.
func FindScholarships(store *catalogx.Store, criteria ScholarshipCriteria) QueryResult[catalogx.Scholarship] {
	var matches []catalogx.Scholarship
	for _, s := range store.Scholarships() {
		if !scholarshipMatches(s, criteria) {
			continue
		}
		matches = append(matches, s)
		if len(matches) == MaxScholarshipResults {
			break
		}
	}

	if len(matches) == 0 {
		return NotFound[catalogx.Scholarship](NoScholarshipsMessage)
	}
	return Found(matches)
}

func scholarshipMatches(s catalogx.Scholarship, criteria ScholarshipCriteria) bool {
	if isFilter(criteria.CollegeName) && !containsFold(s.College, criteria.CollegeName) {
		return false
	}
	if isFilter(criteria.Major) && !containsFold(s.Major, criteria.Major) {
		return false
	}
	if criteria.AcademicProfile != "" && !containsFold(s.Criteria, criteria.AcademicProfile) {
		return false
	}
	if len(criteria.Skills) > 0 {
		for _, skill := range criteria.Skills {
			if containsFold(s.Criteria, skill) {
				return true
			}
		}
		return false
	}
	return true
}

// isFilter reports whether v narrows the search: empty and "any" do not.
func isFilter(v string) bool {
	return v != "" && !strings.EqualFold(v, sentinelAny)
}
