// Package order renders quasi-judicial decision order drafts in Marathi
// and English from an analysis report.
package order

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/ppiankov/nirnay/internal/model"
	"github.com/ppiankov/nirnay/internal/util"
)

// Language selects the draft template
type Language string

const (
	Marathi Language = "mr"
	English Language = "en"
)

// DateLayout is dd/mm/yyyy, used for every date printed on a draft.
const DateLayout = "02/01/2006"

const (
	placeholder       = "—"
	watermarkMarathi  = "> _[ राजमुद्रा जलचिन्ह / State Emblem watermark ]_"
	watermarkEnglish  = "> _[ State Emblem watermark ]_"
	residentClause    = "शासन निर्णयातील **स्थानिक रहिवासी** अटीचा भंग झाल्याचे दिसते."
	localCriteriaRule = "शासन निर्णयानुसार स्थानिक निकष लागू."
)

// nowFunc allows tests to pin the draft date
var nowFunc = time.Now

// ParseLanguage accepts mr, en and their English names, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mr", "marathi":
		return Marathi, nil
	case "en", "english":
		return English, nil
	}
	return "", fmt.Errorf("language %q: %w", s, model.ErrUnsupported)
}

// Input carries everything a draft is built from
type Input struct {
	Officer     string
	HearingDate string // intake hearing date, used when the case text has none
	Decision    model.Decision
	Facts       model.CaseFacts
	GRText      string
}

// InputFromReport collects draft input from a finished analysis.
func InputFromReport(r *model.AnalysisReport) Input {
	return Input{
		Officer:     r.Officer,
		HearingDate: r.HearingDate,
		Decision:    r.Decision(),
		Facts:       r.Facts,
		GRText:      r.GR.Text,
	}
}

// Signature is the signing block appended below the order
type Signature struct {
	Name        string
	Designation string
	Place       string
	Date        string // dd/mm/yyyy; today when empty
}

// Options controls the parts around the order body
type Options struct {
	Language    Language
	Date        string // order date; today when empty
	Authority   string // Marathi closing line
	AuthorityEN string // English closing line
	Signature   *Signature
	Watermark   bool
}

// OptionsFromConfig builds draft options from office settings.
func OptionsFromConfig(office model.OfficeConfig, lang Language) Options {
	opts := Options{
		Language:    lang,
		Authority:   office.Authority,
		AuthorityEN: office.AuthorityEN,
		Watermark:   office.Watermark,
	}
	if office.Signature {
		opts.Signature = &Signature{
			Name:        office.Signatory,
			Designation: office.Designation,
			Place:       office.Place,
		}
	}
	return opts
}

type orderData struct {
	Officer     string
	CaseID      string
	Subject     string
	Date        string
	Refs        []string
	Complainant string
	Village     string
	Taluka      string
	HearingDate string
	HearingTime string
	Distance    string
	Attendees   []string
	ClauseHint  string
	Authority   string
}

var funcs = template.FuncMap{
	"numbered": numbered,
}

var (
	marathiTemplate = template.Must(template.New("mr").Funcs(funcs).Parse(marathiText))
	englishTemplate = template.Must(template.New("en").Funcs(funcs).Parse(englishText))
)

// Body renders the order text without watermark or signature.
func Body(lang Language, in Input, opts Options) (string, error) {
	date := opts.Date
	if date == "" {
		date = today()
	}

	var (
		tmpl *template.Template
		data orderData
	)
	switch lang {
	case Marathi, "":
		tmpl = marathiTemplate
		data = marathiData(in, date, util.Or(opts.Authority, "जिल्हा परिषद, चंद्रपूर"))
	case English:
		tmpl = englishTemplate
		data = englishData(in, date, util.Or(opts.AuthorityEN, "Zilla Parishad, Chandrapur"))
	default:
		return "", fmt.Errorf("render order: language %q: %w", lang, model.ErrUnsupported)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render order: %w", err)
	}
	return b.String(), nil
}

// Draft renders the downloadable Markdown: optional watermark line, the
// order body and the optional signature block.
func Draft(in Input, opts Options) (string, error) {
	lang := opts.Language
	if lang == "" {
		lang = Marathi
	}
	body, err := Body(lang, in, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if opts.Watermark {
		if lang == English {
			b.WriteString(watermarkEnglish)
		} else {
			b.WriteString(watermarkMarathi)
		}
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	if opts.Signature != nil {
		b.WriteString(signatureBlock(lang, *opts.Signature))
	}
	return b.String(), nil
}

// FileName returns the download name for a draft. Path separators in the
// file number are replaced so the name stays a single path element.
func FileName(caseID string, lang Language) string {
	id := strings.NewReplacer("/", "-", "\\", "-").Replace(strings.TrimSpace(caseID))
	if id == "" {
		id = "order"
	}
	suffix := "MR"
	if lang == English {
		suffix = "EN"
	}
	return id + "_Order_" + suffix + ".md"
}

// References returns the decision references, or the references found in
// the case text when the operator supplied none.
func References(in Input) []string {
	if len(in.Decision.References) > 0 {
		return in.Decision.References
	}
	return in.Facts.Refs
}

// ClauseHint states whether the GR carries the local residency condition.
func ClauseHint(grText string) string {
	if strings.Contains(grText, "स्थानिक") && strings.Contains(grText, "रहिवासी") {
		return residentClause
	}
	return localCriteriaRule
}

func marathiData(in Input, date, authority string) orderData {
	f := in.Facts
	return orderData{
		Officer:     in.Officer,
		CaseID:      in.Decision.CaseID,
		Subject:     in.Decision.Subject,
		Date:        date,
		Refs:        References(in),
		Complainant: util.Or(f.ComplainantName, placeholder),
		Village:     util.Or(f.ComplainantVillage, placeholder),
		Taluka:      util.Or(f.ComplainantTaluka, placeholder),
		HearingDate: util.Or(f.HearingDate, in.HearingDate, placeholder),
		HearingTime: util.Or(f.HearingTime, placeholder),
		Distance:    util.Or(f.DistanceKM, placeholder),
		Attendees:   f.Attendees,
		ClauseHint:  ClauseHint(in.GRText),
		Authority:   authority,
	}
}

func englishData(in Input, date, authority string) orderData {
	f := in.Facts
	return orderData{
		Officer:     in.Officer,
		CaseID:      in.Decision.CaseID,
		Subject:     in.Decision.Subject,
		Date:        date,
		Complainant: util.Or(f.ComplainantName, "Complainant"),
		Village:     util.Or(f.ComplainantVillage, "village"),
		Taluka:      util.Or(f.ComplainantTaluka, "taluka"),
		Authority:   authority,
	}
}

func signatureBlock(lang Language, s Signature) string {
	date := util.Or(s.Date, today())
	if lang == English {
		return fmt.Sprintf("\n\n(%s)\n%s\nPlace: %s  Date: %s\n", s.Name, s.Designation, s.Place, date)
	}
	return fmt.Sprintf("\n\n(%s)\n%s\nस्थान: %s  दिनांक: %s\n", s.Name, s.Designation, s.Place, date)
}

// numbered renders items as tab-indented numbered lines, or a dash.
func numbered(items []string) string {
	if len(items) == 0 {
		return "\n\t" + placeholder
	}
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "\n\t%d.\t%s", i+1, item)
	}
	return b.String()
}

func today() string {
	return nowFunc().Format(DateLayout)
}
