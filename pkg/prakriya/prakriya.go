// Package prakriya answers two questions about Sanskrit finite verbs: how a
// given form was derived (Lookup) and which forms a root yields for a
// tense, person and number (Generate).
//
// All stored data is SLP1. A Prakriya converts every textual argument from
// its input scheme to SLP1 before looking anything up, and renders results
// in its output scheme.
package prakriya

import (
	"context"
	"log/slog"

	"github.com/drdhaval2785/prakriya/pkg/dataset"
	"github.com/drdhaval2785/prakriya/pkg/translit"
)

// Prakriya is a query session with input and output scheme preferences.
// Setting preferences is not safe concurrently with queries; use
// WithSchemes to derive per-request sessions that share the data.
type Prakriya struct {
	resolver  *Resolver
	generator *Generator
	in, out   translit.Scheme
	log       *slog.Logger
}

// Option configures a Prakriya.
type Option func(*Prakriya)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Prakriya) { p.log = l }
}

// New builds a session over separate fact and form sources. Both schemes
// start as SLP1.
func New(facts FactSource, forms FormSource, opts ...Option) *Prakriya {
	p := &Prakriya{
		resolver:  NewResolver(facts),
		generator: NewGenerator(forms),
		in:        translit.Canonical,
		out:       translit.Canonical,
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// NewFromStore builds a session that serves both lookups and generation
// from one dataset store.
func NewFromStore(s *dataset.Store, opts ...Option) *Prakriya {
	return New(s, s, opts...)
}

// SetInputScheme validates and sets the scheme of query arguments.
func (p *Prakriya) SetInputScheme(name string) error {
	s, err := translit.ParseScheme(name)
	if err != nil {
		return err
	}
	p.in = s
	return nil
}

// SetOutputScheme validates and sets the scheme of results.
func (p *Prakriya) SetOutputScheme(name string) error {
	s, err := translit.ParseScheme(name)
	if err != nil {
		return err
	}
	p.out = s
	return nil
}

func (p *Prakriya) InputScheme() translit.Scheme  { return p.in }
func (p *Prakriya) OutputScheme() translit.Scheme { return p.out }

// WithSchemes returns a copy of p using the given schemes. Empty names keep
// p's current preference.
func (p *Prakriya) WithSchemes(in, out string) (*Prakriya, error) {
	c := *p
	if in != "" {
		if err := c.SetInputScheme(in); err != nil {
			return nil, err
		}
	}
	if out != "" {
		if err := c.SetOutputScheme(out); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (p *Prakriya) canonical(text string) string {
	// in is always a validated scheme, so conversion cannot fail
	s, _ := translit.ToCanonical(text, p.in)
	return s
}

func (p *Prakriya) render(text string) string {
	s, _ := translit.FromCanonical(text, p.out)
	return s
}

// Lookup returns every stored interpretation of form.
func (p *Prakriya) Lookup(ctx context.Context, form string) ([]Record, error) {
	slp := p.canonical(form)
	records, err := p.resolver.Resolve(ctx, slp)
	if err != nil {
		p.log.Debug("lookup failed", "form", slp, "err", err)
		return nil, err
	}
	for i := range records {
		records[i] = records[i].convert(p.out)
	}
	return records, nil
}

// LookupField returns one field of every interpretation of form. The field
// name is checked before any data is read. An empty field behaves like
// Lookup.
func (p *Prakriya) LookupField(ctx context.Context, form, field string) (any, error) {
	if field != "" && !ValidField(field) {
		return nil, &QueryError{Kind: ErrUnknownField, Value: field, Allowed: Fields()}
	}
	records, err := p.Lookup(ctx, form)
	if err != nil {
		return nil, err
	}
	return Project(records, field)
}

// GenerateQuery holds generation arguments in the session's input scheme.
// Empty fields are "not given".
type GenerateQuery struct {
	Root    string
	Lakara  string
	Purusha string
	Vachana string
	Suffix  string
}

func (p *Prakriya) parse(q GenerateQuery) (Query, error) {
	var (
		out Query
		err error
	)
	out.Root = p.canonical(q.Root)
	if out.Tense, err = ParseTense(p.canonical(q.Lakara)); err != nil {
		return Query{}, err
	}
	if out.Person, err = ParsePerson(p.canonical(q.Purusha)); err != nil {
		return Query{}, err
	}
	if out.Number, err = ParseNumber(p.canonical(q.Vachana)); err != nil {
		return Query{}, err
	}
	if out.Suffix, err = ParseSuffix(p.canonical(q.Suffix)); err != nil {
		return Query{}, err
	}
	return out, nil
}

// Generate returns entry number -> surface forms for the query.
func (p *Prakriya) Generate(ctx context.Context, q GenerateQuery) (map[string][]string, error) {
	query, err := p.parse(q)
	if err != nil {
		return nil, err
	}
	res, err := p.generator.Generate(ctx, query)
	if err != nil {
		return nil, err
	}
	for num, forms := range res {
		res[num] = p.renderAll(forms)
	}
	return res, nil
}

func (p *Prakriya) renderAll(forms []string) []string {
	out := make([]string, len(forms))
	for i, f := range forms {
		out[i] = p.render(f)
	}
	return out
}

// EntryForms is the generation tree of one dictionary entry.
type EntryForms struct {
	Info   dataset.EntryInfo              `json:"info"`
	Tenses map[string]map[string][]string `json:"tenses"`
}

// FormTree returns the full tense -> suffix -> forms tree of every entry of
// root, keyed by entry number.
func (p *Prakriya) FormTree(ctx context.Context, root string) (map[string]EntryForms, error) {
	entries, err := p.generator.Entries(ctx, p.canonical(root))
	if err != nil {
		return nil, err
	}
	out := make(map[string]EntryForms, len(entries))
	for num, e := range entries {
		tree := EntryForms{
			Info:   p.renderInfo(e.Info),
			Tenses: make(map[string]map[string][]string, len(e.Tenses)),
		}
		for t, bySuffix := range e.Tenses {
			m := make(map[string][]string, len(bySuffix))
			for s, forms := range bySuffix {
				m[p.render(s)] = p.renderAll(dedupe(forms))
			}
			tree.Tenses[p.render(t)] = m
		}
		out[num] = tree
	}
	return out, nil
}

// RootInfo returns the entry metadata of every entry of root.
func (p *Prakriya) RootInfo(ctx context.Context, root string) (map[string]dataset.EntryInfo, error) {
	entries, err := p.generator.Entries(ctx, p.canonical(root))
	if err != nil {
		return nil, err
	}
	out := make(map[string]dataset.EntryInfo, len(entries))
	for num, e := range entries {
		out[num] = p.renderInfo(e.Info)
	}
	return out, nil
}

func (p *Prakriya) renderInfo(info dataset.EntryInfo) dataset.EntryInfo {
	return dataset.EntryInfo{
		Gana:                 p.render(info.Gana),
		Meaning:              p.render(info.Meaning),
		VerbWithoutAnubandha: p.render(info.VerbWithoutAnubandha),
		PadI:                 p.render(info.PadI),
		It:                   p.render(info.It),
	}
}
