package model

// CaseFacts holds the structured facts pulled out of a case narrative.
// Every field stays at its zero value (empty string, empty slice) when the
// corresponding rule does not match.
type CaseFacts struct {
	ComplainantName    string   `json:"complainant_name" yaml:"complainant_name"`
	ComplainantVillage string   `json:"complainant_village" yaml:"complainant_village"`
	ComplainantTaluka  string   `json:"complainant_taluka" yaml:"complainant_taluka"`
	HearingDate        string   `json:"hearing_date" yaml:"hearing_date"` // dd/mm/yyyy as written
	HearingTime        string   `json:"hearing_time" yaml:"hearing_time"` // numeral + " वाजता"
	DistanceKM         string   `json:"distance_km" yaml:"distance_km"`   // matched span, verbatim
	Attendees          []string `json:"attendees" yaml:"attendees"`       // document order
	Refs               []string `json:"refs" yaml:"refs"`                 // distinct, first-occurrence order, max 8
}

// NewCaseFacts returns a record with every field at its default value.
// Slices are non-nil so they serialise as [] rather than null.
func NewCaseFacts() CaseFacts {
	return CaseFacts{
		Attendees: []string{},
		Refs:      []string{},
	}
}

// IsEmpty reports whether no rule populated any field.
func (f CaseFacts) IsEmpty() bool {
	return f.ComplainantName == "" &&
		f.ComplainantVillage == "" &&
		f.ComplainantTaluka == "" &&
		f.HearingDate == "" &&
		f.HearingTime == "" &&
		f.DistanceKM == "" &&
		len(f.Attendees) == 0 &&
		len(f.Refs) == 0
}
