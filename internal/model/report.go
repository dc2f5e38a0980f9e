package model

import "time"

// AnalysisReport represents the complete result of analysing one case against a GR
type AnalysisReport struct {
	ID          string    `json:"id" yaml:"id"`                     // uuid, one per analysis run
	CaseID      string    `json:"case_id" yaml:"case_id"`           // file number printed on the order
	Subject     string    `json:"subject" yaml:"subject"`
	Officer     string    `json:"officer" yaml:"officer"`
	HearingDate string    `json:"hearing_date" yaml:"hearing_date"` // intake hearing date, fallback for facts
	AnalyzedAt  time.Time `json:"analyzed_at" yaml:"analyzed_at"`

	Case Source `json:"case" yaml:"case"`
	GR   Source `json:"gr" yaml:"gr"`

	GRHighlight string    `json:"gr_highlight" yaml:"gr_highlight"` // HTML fragment
	Facts       CaseFacts `json:"facts" yaml:"facts"`
	References  []string  `json:"references" yaml:"references"`     // decision references, max 10

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Source describes where one input document's text came from
type Source struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Method  Method `json:"method" yaml:"method"`
	Runes   int    `json:"runes" yaml:"runes"`
	Preview string `json:"preview" yaml:"preview"` // truncated, redacted in sensitive mode
	Text    string `json:"-" yaml:"-"`             // full text, kept out of serialised reports
}

// Decision carries the operator's choices for the order draft
type Decision struct {
	CaseID     string   `json:"case_id" yaml:"case_id"`
	Subject    string   `json:"subject" yaml:"subject"`
	References []string `json:"references" yaml:"references"`
}

// Decision returns the decision block used by the order builders
func (r *AnalysisReport) Decision() Decision {
	return Decision{
		CaseID:     r.CaseID,
		Subject:    r.Subject,
		References: r.References,
	}
}
