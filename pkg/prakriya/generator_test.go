package prakriya

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drdhaval2785/prakriya/pkg/dataset"
)

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	p := newSession(t)

	tests := []struct {
		name string
		q    GenerateQuery
		want map[string][]string
	}{
		{
			name: "person and number pick both suffix layers",
			q:    GenerateQuery{Root: "BU", Lakara: "law", Purusha: "praTama", Vachana: "eka"},
			want: map[string][]string{"01.0001": {"Bavati", "BUyate"}},
		},
		{
			name: "explicit suffix, repeats dropped, stored order kept",
			q:    GenerateQuery{Root: "BU", Lakara: "low", Suffix: "tip"},
			want: map[string][]string{"01.0001": {"Bavatu", "BavatAt"}},
		},
		{
			name: "suffix wins over person and number",
			q:    GenerateQuery{Root: "BU", Lakara: "law", Purusha: "uttama", Vachana: "bahu", Suffix: "tas"},
			want: map[string][]string{"01.0001": {"BavataH"}},
		},
		{
			name: "tense only means every suffix",
			q:    GenerateQuery{Root: "BU", Lakara: "law"},
			want: map[string][]string{"01.0001": {"Bavati", "BavataH", "Bavanti", "BUyate"}},
		},
		{
			name: "no tense means every tense",
			q:    GenerateQuery{Root: "BU", Suffix: "tip"},
			want: map[string][]string{"01.0001": {"Bavati", "baBUva", "Bavatu", "BavatAt"}},
		},
		{
			name: "person without number is ignored",
			q:    GenerateQuery{Root: "BU", Lakara: "low", Purusha: "praTama"},
			want: map[string][]string{"01.0001": {"Bavatu", "BavatAt", "BUyatAm"}},
		},
		{
			name: "alias expands to homonymous roots",
			q:    GenerateQuery{Root: "as", Lakara: "law", Purusha: "praTama", Vachana: "eka"},
			want: map[string][]string{"02.0060": {"asti"}, "04.0101": {"asyati"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Generate(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	ctx := context.Background()
	p := newSession(t)

	tests := []struct {
		name string
		q    GenerateQuery
		want error
	}{
		{"unknown root", GenerateQuery{Root: "unknownRoot123", Suffix: "tip"}, ErrUnknownVerb},
		{"bad tense", GenerateQuery{Root: "BU", Lakara: "xyz"}, ErrInvalidTense},
		{"bad person", GenerateQuery{Root: "BU", Purusha: "caturTa", Vachana: "eka"}, ErrInvalidPerson},
		{"bad number", GenerateQuery{Root: "BU", Purusha: "praTama", Vachana: "catur"}, ErrInvalidVachana},
		{"bad suffix", GenerateQuery{Root: "BU", Suffix: "xyz"}, ErrInvalidSuffix},
		{"no data", GenerateQuery{Root: "BU", Lakara: "liw", Suffix: "mas"}, ErrNoData},
		{"tense missing for root", GenerateQuery{Root: "asu~", Lakara: "lfN"}, ErrNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Generate(ctx, tt.q)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerate_SuffixFilterIsSubset(t *testing.T) {
	ctx := context.Background()
	p := newSession(t)

	broad, err := p.Generate(ctx, GenerateQuery{Root: "BU", Lakara: "low"})
	require.NoError(t, err)
	for _, s := range []string{"tip", "ta"} {
		narrow, err := p.Generate(ctx, GenerateQuery{Root: "BU", Lakara: "low", Suffix: s})
		require.NoError(t, err)
		for num, forms := range narrow {
			assert.Subset(t, broad[num], forms)
		}
	}
}

func TestGenerate_Devanagari(t *testing.T) {
	p := newSession(t)
	require.NoError(t, p.SetInputScheme("devanagari"))
	require.NoError(t, p.SetOutputScheme("devanagari"))

	got, err := p.Generate(context.Background(), GenerateQuery{Root: "भू", Lakara: "लट्", Purusha: "प्रथम", Vachana: "एक"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"01.0001": {"भवति", "भूयते"}}, got)
}

func TestFormTreeAndRootInfo(t *testing.T) {
	ctx := context.Background()
	p := newSession(t)

	tree, err := p.FormTree(ctx, "BU")
	require.NoError(t, err)
	require.Contains(t, tree, "01.0001")
	e := tree["01.0001"]
	assert.Equal(t, "BvAdi", e.Info.Gana)
	assert.Equal(t, []string{"Bavatu", "BavatAt"}, e.Tenses["low"]["tip"])
	assert.Equal(t, []string{"baBUva"}, e.Tenses["liw"]["tip"])

	info, err := p.RootInfo(ctx, "Bu")
	require.NoError(t, err)
	assert.Equal(t, map[string]dataset.EntryInfo{
		"01.0001": {Gana: "BvAdi", Meaning: "sattAyAm", VerbWithoutAnubandha: "BU", PadI: "parasmEpadI", It: "seT"},
	}, info)

	_, err = p.FormTree(ctx, "nothing")
	assert.ErrorIs(t, err, ErrUnknownVerb)
}

type memForms struct {
	roots   map[string]map[string]dataset.Entry
	aliases map[string][]string
}

func (m memForms) LookupRoot(_ context.Context, root string) (map[string]dataset.Entry, bool, error) {
	e, ok := m.roots[root]
	return e, ok, nil
}

func (m memForms) LookupAlias(_ context.Context, alias string) ([]string, error) {
	return m.aliases[alias], nil
}

func TestGenerator_DedupeUsesNFC(t *testing.T) {
	// the same Devanagari form, precomposed and decomposed
	forms := memForms{roots: map[string]map[string]dataset.Entry{
		"x": {"00.0001": {Tenses: map[string]map[string][]string{
			"law": {"tip": {"क़", "क़", "ka"}},
		}}},
	}}
	g := NewGenerator(forms)
	got, err := g.Generate(context.Background(), Query{Root: "x", Tense: Law, Suffix: "tip"})
	require.NoError(t, err)
	assert.Len(t, got["00.0001"], 2)
}

func TestGenerator_ValidatesQuery(t *testing.T) {
	g := NewGenerator(memForms{})
	_, err := g.Generate(context.Background(), Query{Root: "x", Tense: "bad"})
	assert.ErrorIs(t, err, ErrInvalidTense)
	_, err = g.Generate(context.Background(), Query{Root: "x"})
	assert.ErrorIs(t, err, ErrUnknownVerb)
}

func TestSuffixesFor(t *testing.T) {
	pair, ok := SuffixesFor(MaDyama, Dvi)
	require.True(t, ok)
	assert.Equal(t, [2]Suffix{"Tas", "ATAm"}, pair)
	_, ok = SuffixesFor(PraTama, "")
	assert.False(t, ok)
	assert.Len(t, Suffixes, 18)
	assert.Len(t, Tenses, 10)
}
