package dataset

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawStep is one stored derivation entry, before rule text is attached.
type RawStep struct {
	SutraNum string `json:"sutra_num"`
	Form     string `json:"form"`
}

// RawRecord is one stored interpretation of a verb form. Scalar fields are
// kept by their stored key; the derivation list is split out.
type RawRecord struct {
	Fields     map[string]string
	Derivation []RawStep
}

func (r *RawRecord) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Fields = make(map[string]string, len(raw))
	r.Derivation = nil
	for k, v := range raw {
		if k == "derivation" {
			if err := json.Unmarshal(v, &r.Derivation); err != nil {
				return fmt.Errorf("derivation: %w", err)
			}
			continue
		}
		r.Fields[k] = scalar(v)
	}
	return nil
}

// scalar renders a stored value as text. Strings are unquoted; anything
// else (numbers, null) keeps its JSON spelling.
func scalar(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	if string(v) == "null" {
		return ""
	}
	return strings.TrimSpace(string(v))
}

// Shard maps an SLP1 verb form to its stored interpretations.
type Shard map[string][]RawRecord

// Entry metadata keys stored next to the tense keys of a generation entry.
var entryInfoKeys = map[string]bool{
	"gana":                 true,
	"meaning":              true,
	"verbwithoutanubandha": true,
	"padI":                 true,
	"it":                   true,
}

// EntryInfo describes the dictionary entry a generated form belongs to.
type EntryInfo struct {
	Gana                 string `json:"gana,omitempty"`
	Meaning              string `json:"meaning,omitempty"`
	VerbWithoutAnubandha string `json:"verbwithoutanubandha,omitempty"`
	PadI                 string `json:"padI,omitempty"`
	It                   string `json:"it,omitempty"`
}

// Entry is one dictionary entry of the generation table:
// tense -> suffix -> surface forms, in stored order.
type Entry struct {
	Info   EntryInfo
	Tenses map[string]map[string][]string
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Tenses = make(map[string]map[string][]string)
	for k, v := range raw {
		if entryInfoKeys[k] {
			e.setInfo(k, scalar(v))
			continue
		}
		var suffixes map[string][]json.RawMessage
		if err := json.Unmarshal(v, &suffixes); err != nil {
			return fmt.Errorf("tense %q: %w", k, err)
		}
		bySuffix := make(map[string][]string, len(suffixes))
		for suffix, items := range suffixes {
			forms := make([]string, 0, len(items))
			for _, it := range items {
				if f, ok := surfaceForm(it); ok {
					forms = append(forms, f)
				}
			}
			bySuffix[suffix] = forms
		}
		e.Tenses[k] = bySuffix
	}
	return nil
}

func (e *Entry) setInfo(key, val string) {
	switch key {
	case "gana":
		e.Info.Gana = val
	case "meaning":
		e.Info.Meaning = val
	case "verbwithoutanubandha":
		e.Info.VerbWithoutAnubandha = val
	case "padI":
		e.Info.PadI = val
	case "it":
		e.Info.It = val
	}
}

// surfaceForm accepts both list encodings: a bare string, or an array whose
// first element is the form.
func surfaceForm(v json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, true
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(v, &arr); err != nil || len(arr) == 0 {
		return "", false
	}
	if err := json.Unmarshal(arr[0], &s); err != nil {
		return "", false
	}
	return s, true
}

// FormTable is the generation table: root -> entry number -> Entry.
type FormTable map[string]map[string]Entry

// AliasMap maps an alternate root spelling to the stored roots.
type AliasMap map[string][]string
