package prakriya

import (
	"strings"

	"github.com/drdhaval2785/prakriya/pkg/dataset"
	"github.com/drdhaval2785/prakriya/pkg/translit"
)

// DerivationStep is one rule application.
type DerivationStep struct {
	Sutra    string `json:"sutra"`
	SutraNum string `json:"sutra_num"`
	Form     string `json:"form"`
}

// Record is one interpretation of a verb form under one root.
type Record struct {
	Verb             string           `json:"verb"`
	VerbAccent       string           `json:"verbaccent"`
	Lakara           string           `json:"lakara"`
	Purusha          string           `json:"purusha"`
	Vachana          string           `json:"vachana"`
	Gana             string           `json:"gana"`
	Meaning          string           `json:"meaning"`
	Number           string           `json:"number"`
	Madhaviya        string           `json:"madhaviya"`
	Kshiratarangini  string           `json:"kshiratarangini"`
	Dhatupradipa     string           `json:"dhatupradipa"`
	JNU              string           `json:"jnu"`
	UoHyd            string           `json:"uohyd"`
	Upasarga         string           `json:"upasarga"`
	PadadeciderID    string           `json:"padadecider_id"`
	PadadeciderSutra string           `json:"padadecider_sutra"`
	ItID             string           `json:"it_id"`
	ItStatus         string           `json:"it_status"`
	ItSutra          string           `json:"it_sutra"`
	Suffix           string           `json:"suffix"`
	Prakriya         []DerivationStep `json:"prakriya"`
}

// FieldPrakriya selects the derivation list.
const FieldPrakriya = "prakriya"

var scalarFields = []string{
	"verb", "verbaccent", "lakara", "purusha", "vachana", "gana", "meaning",
	"number", "madhaviya", "kshiratarangini", "dhatupradipa", "jnu", "uohyd",
	"upasarga", "padadecider_id", "padadecider_sutra", "it_id", "it_status",
	"it_sutra", "suffix",
}

// Fields lists every recognised field name, "prakriya" last.
func Fields() []string {
	out := make([]string, 0, len(scalarFields)+1)
	out = append(out, scalarFields...)
	return append(out, FieldPrakriya)
}

// ValidField reports whether name can be projected.
func ValidField(name string) bool {
	return name == FieldPrakriya || contains(scalarFields, name)
}

func (r *Record) ref(name string) *string {
	switch name {
	case "verb":
		return &r.Verb
	case "verbaccent":
		return &r.VerbAccent
	case "lakara":
		return &r.Lakara
	case "purusha":
		return &r.Purusha
	case "vachana":
		return &r.Vachana
	case "gana":
		return &r.Gana
	case "meaning":
		return &r.Meaning
	case "number":
		return &r.Number
	case "madhaviya":
		return &r.Madhaviya
	case "kshiratarangini":
		return &r.Kshiratarangini
	case "dhatupradipa":
		return &r.Dhatupradipa
	case "jnu":
		return &r.JNU
	case "uohyd":
		return &r.UoHyd
	case "upasarga":
		return &r.Upasarga
	case "padadecider_id":
		return &r.PadadeciderID
	case "padadecider_sutra":
		return &r.PadadeciderSutra
	case "it_id":
		return &r.ItID
	case "it_status":
		return &r.ItStatus
	case "it_sutra":
		return &r.ItSutra
	case "suffix":
		return &r.Suffix
	}
	return nil
}

// Field returns a scalar field by its stored name.
func (r Record) Field(name string) (string, bool) {
	p := r.ref(name)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Stored data spells the candrabindu "!" in places; rule ids use "~" for
// sentinel codes and forms use "@" for the rutva marker.
var (
	fixNasal    = strings.NewReplacer("!", "~")
	fixRuleNum  = strings.NewReplacer("~", "-")
	fixStepForm = strings.NewReplacer("!", "~", "@", "u~")
)

// newRecord builds a fresh Record from stored data. Unresolved rule ids get
// empty rule text.
func newRecord(raw dataset.RawRecord, rules map[string]string) Record {
	var r Record
	for name, v := range raw.Fields {
		if p := r.ref(name); p != nil {
			*p = fixNasal.Replace(v)
		}
	}
	r.Prakriya = make([]DerivationStep, len(raw.Derivation))
	for i, st := range raw.Derivation {
		r.Prakriya[i] = DerivationStep{
			Sutra:    rules[st.SutraNum],
			SutraNum: fixRuleNum.Replace(st.SutraNum),
			Form:     fixStepForm.Replace(st.Form),
		}
	}
	return r
}

// convert renders the Sanskrit fields of r in scheme to. Identifiers, rule
// numbers and links are left alone.
func (r Record) convert(to translit.Scheme) Record {
	if to == translit.Canonical {
		return r
	}
	out := r
	for _, name := range scalarFields {
		if !translit.Convertible(name) {
			continue
		}
		p := out.ref(name)
		*p, _ = translit.FromCanonical(*p, to)
	}
	out.Prakriya = convertSteps(r.Prakriya, to)
	return out
}

func convertSteps(steps []DerivationStep, to translit.Scheme) []DerivationStep {
	out := make([]DerivationStep, len(steps))
	for i, st := range steps {
		st.Sutra, _ = translit.FromCanonical(st.Sutra, to)
		st.Form, _ = translit.FromCanonical(st.Form, to)
		out[i] = st
	}
	return out
}

// Project narrows records to one field. An empty field returns the records
// themselves, "prakriya" returns one derivation list per record, and any
// other recognised field returns one value per record, in record order.
func Project(records []Record, field string) (any, error) {
	switch {
	case field == "":
		return records, nil
	case field == FieldPrakriya:
		out := make([][]DerivationStep, len(records))
		for i, r := range records {
			out[i] = r.Prakriya
		}
		return out, nil
	case ValidField(field):
		out := make([]string, len(records))
		for i, r := range records {
			out[i], _ = r.Field(field)
		}
		return out, nil
	}
	return nil, &QueryError{Kind: ErrUnknownField, Value: field, Allowed: Fields()}
}
