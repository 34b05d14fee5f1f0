package prakriya

import (
	"context"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/drdhaval2785/prakriya/pkg/dataset"
)

// FormSource serves the generation table. Both *dataset.Store and
// *formdb.Store implement it.
type FormSource interface {
	LookupRoot(ctx context.Context, root string) (map[string]dataset.Entry, bool, error)
	LookupAlias(ctx context.Context, alias string) ([]string, error)
}

// Query selects generated forms. Zero fields are "not given" and widen the
// selection: no suffix and no complete person/number pair means every
// suffix; no tense means every tense.
type Query struct {
	Root   string
	Tense  Tense
	Person Person
	Number Number
	Suffix Suffix
}

func (q Query) validate() error {
	if q.Tense != "" && !q.Tense.Valid() {
		return &QueryError{Kind: ErrInvalidTense, Value: string(q.Tense), Allowed: names(Tenses)}
	}
	if q.Person != "" && !q.Person.Valid() {
		return &QueryError{Kind: ErrInvalidPerson, Value: string(q.Person), Allowed: names(Persons)}
	}
	if q.Number != "" && !q.Number.Valid() {
		return &QueryError{Kind: ErrInvalidVachana, Value: string(q.Number), Allowed: names(Numbers)}
	}
	if q.Suffix != "" && !q.Suffix.Valid() {
		return &QueryError{Kind: ErrInvalidSuffix, Value: string(q.Suffix), Allowed: names(Suffixes)}
	}
	return nil
}

// suffixes returns the suffix set to query, nil meaning all.
func (q Query) suffixes() []Suffix {
	if q.Suffix != "" {
		return []Suffix{q.Suffix}
	}
	if pair, ok := SuffixesFor(q.Person, q.Number); ok {
		return pair[:]
	}
	return nil
}

// Generator looks up generated surface forms for a root.
type Generator struct {
	forms FormSource
}

func NewGenerator(forms FormSource) *Generator {
	return &Generator{forms: forms}
}

// Generate returns entry number -> surface forms. Forms of one suffix keep
// their stored order with repeats dropped; suffix groups are concatenated in
// suffix order, tense by tense.
func (g *Generator) Generate(ctx context.Context, q Query) (map[string][]string, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	entries, err := g.Entries(ctx, q.Root)
	if err != nil {
		return nil, err
	}
	tenses := Tenses
	if q.Tense != "" {
		tenses = []Tense{q.Tense}
	}
	suffixes := q.suffixes()
	if suffixes == nil {
		suffixes = Suffixes
	}

	out := make(map[string][]string)
	for num, e := range entries {
		var forms []string
		for _, t := range tenses {
			bySuffix, ok := e.Tenses[string(t)]
			if !ok {
				continue
			}
			for _, s := range suffixes {
				forms = append(forms, dedupe(bySuffix[string(s)])...)
			}
		}
		if len(forms) > 0 {
			out[num] = forms
		}
	}
	if len(out) == 0 {
		return nil, queryErr(ErrNoData, q.Root)
	}
	return out, nil
}

// Entries returns every entry of root, keyed by entry number. Roots missing
// from the table are looked up in the alias table and all of their targets
// are merged.
func (g *Generator) Entries(ctx context.Context, root string) (map[string]dataset.Entry, error) {
	entries, ok, err := g.forms.LookupRoot(ctx, root)
	if err != nil {
		return nil, err
	}
	if ok {
		return entries, nil
	}
	targets, err := g.forms.LookupAlias(ctx, root)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]dataset.Entry)
	for _, t := range targets {
		es, ok, err := g.forms.LookupRoot(ctx, t)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for num, e := range es {
			merged[num] = e
		}
	}
	if len(merged) == 0 {
		return nil, queryErr(ErrUnknownVerb, root)
	}
	return merged, nil
}

// dedupe drops repeats, comparing NFC forms, and keeps first-seen order.
func dedupe(forms []string) []string {
	if len(forms) < 2 {
		return forms
	}
	seen := make(map[string]bool, len(forms))
	out := make([]string, 0, len(forms))
	for _, f := range forms {
		k := norm.NFC.String(f)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}
	return out
}

// EntryNumbers returns the keys of m in sorted order.
func EntryNumbers[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
