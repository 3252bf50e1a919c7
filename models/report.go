package models

// IssueType classifies an integrity violation found by the audit.
type IssueType string

const (
	IssueOrphanedInspiration IssueType = "orphaned_inspiration"
	IssueDuplicateThemeName  IssueType = "duplicate_theme_name"
	IssueBlankContent        IssueType = "blank_content"
)

type IntegrityIssue struct {
	Type    IssueType `json:"type"`
	Detail  string    `json:"detail"`
	Subject string    `json:"subject"`
}

// IntegrityReport is the result of a read-only audit over both tables.
// Issues are violations of the store's invariants; warnings are non-fatal
// anomalies kept for display only.
type IntegrityReport struct {
	ThemeCount           int              `json:"theme_count"`
	InspirationCount     int              `json:"inspiration_count"`
	OrphanedInspirations int              `json:"orphaned_inspirations"`
	Issues               []IntegrityIssue `json:"issues"`
	Warnings             []string         `json:"warnings"`
	Valid                bool             `json:"valid"`
}
