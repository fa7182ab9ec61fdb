package models

// Category separates regular roles from internships.
type Category string

const (
	CategoryJob        Category = "job"
	CategoryInternship Category = "internship"
)

// JobPosting is the normalized, scored posting returned by the pipeline.
type JobPosting struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	Salary         string   `json:"salary"`
	ApplyLink      string   `json:"apply_link"`
	Source         string   `json:"source"`
	MatchScore     int      `json:"match_score"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	Category       Category `json:"category"`
}

// RecommendResult is the caller-visible output of one pipeline run.
type RecommendResult struct {
	Jobs        []JobPosting `json:"jobs"`
	Internships []JobPosting `json:"internships"`
}
