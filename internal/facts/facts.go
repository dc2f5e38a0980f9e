// Package facts pulls structured case facts out of Marathi narrative text
// with independent regular-expression rules.
package facts

import (
	"regexp"
	"strings"

	"github.com/ppiankov/nirnay/internal/model"
	"github.com/ppiankov/nirnay/internal/util"
)

// MaxRefs caps the reference lines kept from a case narrative.
const MaxRefs = 8

var (
	// honorific, two-part name, रा. village, optional ता. taluka
	identityPattern = regexp.MustCompile(`(सौ\.|श्रीमती|श्री\.?)\s*([अ-ह][^\s,]*)\s+([अ-ह][^,]*)[, ]+\s*रा\.\s*([अ-ह][^,]*)(?:,\s*ता\.\s*([अ-ह][^,]*))?`)

	hearingDatePattern = regexp.MustCompile(`(सुनावणी)\s*(दिनांक|दिनाँक|दि\.?)\s*[:\-]?\s*([0-9०-९]{1,2}/[0-9०-९]{1,2}/[0-9०-९]{4})`)

	hearingTimePattern = regexp.MustCompile(`(सकाळी|सायंकाळी)\s*([०-९0-9]{1,2}(\.[0-9]+)?)\s*(वा|वाजता)`)

	distancePattern = regexp.MustCompile(`([0-9०-९]+(?:\.[0-9०-९]+)?)\s*(कि\.?मी\.?|किमी|किलोमीटर)`)

	attendeeMarker = regexp.MustCompile(`(श्री|श्रीमती|सौ\.)`)

	referenceLine = regexp.MustCompile(`(शासन निर्णय|पत्र|तक्रार अर्ज|सुनावणी|क्रमांक|दिनांक)`)
)

const (
	attendanceMarker = "उपस्थित होते"
	complaintMarker  = "तक्रार"
	attendeeCutset   = " \n\t•-"
)

// Identity is the complainant's name and address
type Identity struct {
	Name    string
	Village string
	Taluka  string
}

// MatchIdentity finds the first honorific-led name with a रा. village.
func MatchIdentity(text string) (Identity, bool) {
	m := identityPattern.FindStringSubmatch(text)
	if m == nil {
		return Identity{}, false
	}
	return Identity{
		Name:    strings.TrimSpace(m[2] + " " + m[3]),
		Village: strings.TrimSpace(m[4]),
		Taluka:  strings.TrimSpace(m[5]),
	}, true
}

// MatchHearingDate returns the d/m/yyyy date that follows सुनावणी दिनांक.
func MatchHearingDate(text string) (string, bool) {
	m := hearingDatePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[3], true
}

// MatchHearingTime returns e.g. "११ वाजता" for "सकाळी ११ वा".
func MatchHearingTime(text string) (string, bool) {
	m := hearingTimePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[2] + " वाजता", true
}

// MatchDistance returns the numeral and unit exactly as written.
func MatchDistance(text string) (string, bool) {
	m := distancePattern.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}

// MatchAttendees lists the honorific-bearing lines between the first
// "उपस्थित होते" and the next "तक्रार".
func MatchAttendees(text string) ([]string, bool) {
	_, after, found := strings.Cut(text, attendanceMarker)
	if !found {
		return []string{}, false
	}
	block, _, _ := strings.Cut(after, complaintMarker)

	attendees := []string{}
	for _, ln := range util.SplitLines(block) {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		ln = strings.Trim(ln, attendeeCutset)
		if attendeeMarker.MatchString(ln) {
			attendees = append(attendees, ln)
		}
	}
	return attendees, len(attendees) > 0
}

// MatchReferences returns distinct reference-like lines, at most MaxRefs.
func MatchReferences(text string) ([]string, bool) {
	var refs []string
	for _, ln := range util.SplitLines(text) {
		if referenceLine.MatchString(ln) {
			refs = append(refs, strings.TrimSpace(ln))
		}
	}
	refs = util.Dedupe(refs)
	if len(refs) > MaxRefs {
		refs = refs[:MaxRefs]
	}
	return refs, len(refs) > 0
}

// Rule fills one or more fields of a CaseFacts record
type Rule struct {
	Name  string
	Apply func(text string, f *model.CaseFacts)
}

// Rules are applied in order by Parse. Each is independent of the others.
var Rules = []Rule{
	{Name: "identity", Apply: func(text string, f *model.CaseFacts) {
		if id, ok := MatchIdentity(text); ok {
			f.ComplainantName = id.Name
			f.ComplainantVillage = id.Village
			f.ComplainantTaluka = id.Taluka
		}
	}},
	{Name: "hearing_date", Apply: func(text string, f *model.CaseFacts) {
		if v, ok := MatchHearingDate(text); ok {
			f.HearingDate = v
		}
	}},
	{Name: "hearing_time", Apply: func(text string, f *model.CaseFacts) {
		if v, ok := MatchHearingTime(text); ok {
			f.HearingTime = v
		}
	}},
	{Name: "distance", Apply: func(text string, f *model.CaseFacts) {
		if v, ok := MatchDistance(text); ok {
			f.DistanceKM = v
		}
	}},
	{Name: "attendees", Apply: func(text string, f *model.CaseFacts) {
		if v, ok := MatchAttendees(text); ok {
			f.Attendees = v
		}
	}},
	{Name: "references", Apply: func(text string, f *model.CaseFacts) {
		if v, ok := MatchReferences(text); ok {
			f.Refs = v
		}
	}},
}

// Parse applies every rule to text. It never fails; fields whose rule
// does not match keep their empty defaults.
func Parse(text string) model.CaseFacts {
	return ParseWith(text, Rules)
}

// ParseWith applies a custom rule set.
func ParseWith(text string, rules []Rule) model.CaseFacts {
	f := model.NewCaseFacts()
	for _, r := range rules {
		r.Apply(text, &f)
	}
	return f
}
