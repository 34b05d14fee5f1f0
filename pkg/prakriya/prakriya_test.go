package prakriya

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drdhaval2785/prakriya/internal/testhelper"
	"github.com/drdhaval2785/prakriya/pkg/dataset"
	"github.com/drdhaval2785/prakriya/pkg/translit"
)

func newSession(t *testing.T) *Prakriya {
	t.Helper()
	store, err := dataset.New(dataset.Options{Dir: testhelper.DatasetDir(t)})
	require.NoError(t, err)
	return NewFromStore(store)
}

func TestLookup_Bavati(t *testing.T) {
	ctx := context.Background()
	p := newSession(t)

	verb, err := p.LookupField(ctx, "Bavati", "verb")
	require.NoError(t, err)
	assert.Equal(t, []string{"BU"}, verb)

	lakara, err := p.LookupField(ctx, "Bavati", "lakara")
	require.NoError(t, err)
	assert.Equal(t, []string{"law"}, lakara)

	all, err := p.LookupField(ctx, "Bavati", "")
	require.NoError(t, err)
	records := all.([]Record)
	require.Len(t, records, 1)
	steps := records[0].Prakriya
	require.Len(t, steps, 6)
	assert.Equal(t, DerivationStep{Sutra: "BUvAdayo DAtavaH", SutraNum: "1.3.1", Form: "BU"}, steps[0])
	assert.Equal(t, "kartari Sap\u200c", steps[2].Sutra)
	assert.Equal(t, DerivationStep{Sutra: "antimaM rUpam", SutraNum: "-2", Form: "Bavati"}, steps[5])
}

func TestLookup_DataHygiene(t *testing.T) {
	p := newSession(t)
	records, err := p.Lookup(context.Background(), "baBUva")
	require.NoError(t, err)
	require.Len(t, records, 2)

	as := records[1]
	assert.Equal(t, "asa~", as.Verb)
	assert.Equal(t, "अस॑~", as.VerbAccent)
	assert.Equal(t, "asa~", as.Prakriya[0].Form)
	assert.Equal(t, "BU+u~", as.Prakriya[1].Form)
	// unknown rule ids resolve to empty text
	assert.Equal(t, "", as.Prakriya[2].Sutra)
	assert.Equal(t, "9.9.99", as.Prakriya[2].SutraNum)
}

func TestLookup_Homonyms(t *testing.T) {
	p := newSession(t)
	records, err := p.Lookup(context.Background(), "baBUva")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotEqual(t, records[0].Verb, records[1].Verb)
	assert.NotEqual(t, records[0].Number, records[1].Number)
	assert.Equal(t, "01.0001", records[0].Number)
	assert.Equal(t, "02.0060", records[1].Number)
}

func TestLookup_UnknownForm(t *testing.T) {
	p := newSession(t)
	for _, form := range []string{"xyzabc", "Bavatu", "Ba", ""} {
		_, err := p.Lookup(context.Background(), form)
		assert.ErrorIs(t, err, ErrUnknownForm, form)
	}
}

type failingFacts struct{ t *testing.T }

func (f failingFacts) ShardIndex(context.Context) (map[string]string, error) {
	f.t.Fatal("dataset read before field validation")
	return nil, nil
}

func (f failingFacts) Shard(context.Context, string) (dataset.Shard, error) {
	f.t.Fatal("dataset read before field validation")
	return nil, nil
}

func (f failingFacts) RuleTexts(context.Context) (map[string]string, error) {
	f.t.Fatal("dataset read before field validation")
	return nil, nil
}

func TestLookupField_UnknownFieldFailsFast(t *testing.T) {
	p := New(failingFacts{t}, nil)
	_, err := p.LookupField(context.Background(), "Bavati", "colour")
	require.ErrorIs(t, err, ErrUnknownField)
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "colour", qe.Value)
}

func TestProjectionConsistency(t *testing.T) {
	ctx := context.Background()
	p := newSession(t)
	require.NoError(t, p.SetOutputScheme("iast"))

	records, err := p.Lookup(ctx, "baBUva")
	require.NoError(t, err)
	for _, field := range Fields() {
		want, err := Project(records, field)
		require.NoError(t, err)
		got, err := p.LookupField(ctx, "baBUva", field)
		require.NoError(t, err)
		assert.Equal(t, want, got, field)
	}
	_, err = Project(records, "nope")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestLookup_OutputScheme(t *testing.T) {
	ctx := context.Background()
	p := newSession(t)
	require.NoError(t, p.SetOutputScheme("devanagari"))

	records, err := p.Lookup(ctx, "Bavati")
	require.NoError(t, err)
	r := records[0]
	assert.Equal(t, "भू", r.Verb)
	assert.Equal(t, "लट्", r.Lakara)
	assert.Equal(t, "सत्तायाम्", r.Meaning)
	// identifiers, rule numbers and links are never converted
	assert.Equal(t, "01.0001", r.Number)
	assert.Equal(t, "parasmEpadI", r.PadadeciderID)
	assert.Equal(t, "http://sanskrit.jnu.ac.in/tinanta/tinanta.jsp?t=1", r.JNU)
	assert.Equal(t, "भू॑", r.VerbAccent)
	assert.Equal(t, "1.3.1", r.Prakriya[0].SutraNum)
	assert.Equal(t, "भूवादयो धातवः", r.Prakriya[0].Sutra)
	assert.Equal(t, "-2", r.Prakriya[5].SutraNum)
}

func TestLookup_InputScheme(t *testing.T) {
	p := newSession(t)
	require.NoError(t, p.SetInputScheme("Devanagari"))
	got, err := p.LookupField(context.Background(), "भवति", "lakara")
	require.NoError(t, err)
	assert.Equal(t, []string{"law"}, got)
}

func canonicalRecord(t *testing.T, r Record, from translit.Scheme) Record {
	t.Helper()
	back := func(s string) string {
		out, err := translit.ToCanonical(s, from)
		require.NoError(t, err)
		return out
	}
	for _, name := range scalarFields {
		if translit.Convertible(name) {
			p := r.ref(name)
			*p = back(*p)
		}
	}
	steps := make([]DerivationStep, len(r.Prakriya))
	for i, st := range r.Prakriya {
		steps[i] = DerivationStep{Sutra: back(st.Sutra), SutraNum: st.SutraNum, Form: back(st.Form)}
	}
	r.Prakriya = steps
	return r
}

func TestLookup_RoundTripEveryScheme(t *testing.T) {
	ctx := context.Background()
	base := newSession(t)
	want, err := base.Lookup(ctx, "Bavati")
	require.NoError(t, err)

	for _, s := range translit.Schemes() {
		t.Run(string(s), func(t *testing.T) {
			p, err := base.WithSchemes(string(s), string(s))
			require.NoError(t, err)
			form, err := translit.FromCanonical("Bavati", s)
			require.NoError(t, err)

			got, err := p.Lookup(ctx, form)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, want[0], canonicalRecord(t, got[0], s))
		})
	}
}

func TestSchemePreferencesFailFast(t *testing.T) {
	p := New(failingFacts{t}, nil)

	err := p.SetInputScheme("klingon")
	assert.ErrorIs(t, err, ErrInvalidScript)
	assert.Equal(t, translit.SLP1, p.InputScheme())

	err = p.SetOutputScheme("tamil")
	assert.ErrorIs(t, err, ErrInvalidScript)
	assert.Equal(t, translit.SLP1, p.OutputScheme())

	_, err = p.WithSchemes("", "bogus")
	assert.ErrorIs(t, err, ErrInvalidScript)

	c, err := p.WithSchemes("hk", "")
	require.NoError(t, err)
	assert.Equal(t, translit.HK, c.InputScheme())
	assert.Equal(t, translit.SLP1, c.OutputScheme())
	assert.Equal(t, translit.SLP1, p.InputScheme(), "base session untouched")
}

func TestLookup_Idempotent(t *testing.T) {
	ctx := context.Background()
	p := newSession(t)
	a, err := p.Lookup(ctx, "baBUva")
	require.NoError(t, err)
	b, err := p.Lookup(ctx, "baBUva")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// results are caller-owned
	a[0].Prakriya[0].Form = "changed"
	c, err := p.Lookup(ctx, "baBUva")
	require.NoError(t, err)
	assert.Equal(t, "BU", c[0].Prakriya[0].Form)
}

func TestFields(t *testing.T) {
	f := Fields()
	assert.Len(t, f, 21)
	assert.Equal(t, FieldPrakriya, f[len(f)-1])
	assert.Contains(t, f, "padadecider_sutra")
	assert.True(t, ValidField("verb"))
	assert.False(t, ValidField("derivation"))
}

func TestShardKey(t *testing.T) {
	assert.Equal(t, "Bav", ShardKey("Bavati"))
	assert.Equal(t, "Ba", ShardKey("Ba"))
	assert.Equal(t, "", ShardKey(""))
	assert.Equal(t, "भवत", ShardKey("भवति"))
}
