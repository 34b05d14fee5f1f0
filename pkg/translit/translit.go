package translit

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

type codec interface {
	encode(slp string) string
	decode(text string) string
}

var codecs = buildCodecs()

func buildCodecs() map[Scheme]codec {
	out := make(map[Scheme]codec, len(schemes))
	for s, table := range romanTables {
		out[s] = newRomanCodec(table, romanAlternates[s], foldCase[s])
	}
	for s, base := range brahmicBlocks {
		out[s] = newBrahmicCodec(base, brahmicGaps[s])
	}
	return out
}

// ToCanonical decodes text written in from into SLP1.
func ToCanonical(text string, from Scheme) (string, error) {
	c, ok := codecs[from]
	if !ok {
		return "", &InvalidScriptError{Name: string(from)}
	}
	if from == Canonical {
		return text, nil
	}
	return c.decode(norm.NFC.String(text)), nil
}

// FromCanonical encodes SLP1 text into to.
func FromCanonical(slp string, to Scheme) (string, error) {
	c, ok := codecs[to]
	if !ok {
		return "", &InvalidScriptError{Name: string(to)}
	}
	if to == Canonical {
		return slp, nil
	}
	return c.encode(slp), nil
}

type romanCodec struct {
	enc    map[rune]string
	dec    map[string]string
	maxLen int
	fold   bool
}

func newRomanCodec(table []string, alternates map[string]string, fold bool) *romanCodec {
	c := &romanCodec{
		enc:  make(map[rune]string, len(inventory)),
		dec:  make(map[string]string, len(inventory)+len(alternates)),
		fold: fold,
	}
	for i, r := range inventory {
		tok := table[i]
		c.enc[r] = tok
		c.dec[tok] = string(r)
	}
	for tok, slp := range alternates {
		if _, taken := c.dec[tok]; !taken {
			c.dec[tok] = slp
		}
	}
	for tok := range c.dec {
		if n := utf8.RuneCountInString(tok); n > c.maxLen {
			c.maxLen = n
		}
	}
	return c
}

func (c *romanCodec) encode(slp string) string {
	var b strings.Builder
	b.Grow(len(slp))
	for _, r := range slp {
		if tok, ok := c.enc[r]; ok {
			b.WriteString(tok)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// decode tokenizes greedily, longest match first. Unknown runes pass through.
func (c *romanCodec) decode(text string) string {
	if c.fold {
		text = strings.ToLower(text)
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); {
		matched := false
		for l := min(c.maxLen, len(runes)-i); l > 0; l-- {
			if slp, ok := c.dec[string(runes[i:i+l])]; ok {
				b.WriteString(slp)
				i += l
				matched = true
				break
			}
		}
		if !matched {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}

type glyphKind uint8

const (
	kindVowel glyphKind = iota + 1
	kindSign
	kindConsonant
	kindMark
	kindVirama
	kindDigit
	kindDanda
	kindDoubleDanda
)

type glyph struct {
	kind glyphKind
	slp  rune
}

type brahmicCodec struct {
	vowels     map[rune]rune
	signs      map[rune]rune
	marks      map[rune]rune
	consonants map[rune]rune
	virama     rune
	zero       rune
	dec        map[rune]glyph
	split      map[[2]rune]glyph // letters NFC stores as base + nukta
}

func newBrahmicCodec(base rune, gaps map[rune]bool) *brahmicCodec {
	at := func(off rune) rune {
		if gaps[off] {
			return devaBase + off
		}
		return base + off
	}
	c := &brahmicCodec{
		vowels:     make(map[rune]rune),
		signs:      make(map[rune]rune),
		marks:      make(map[rune]rune),
		consonants: make(map[rune]rune),
		virama:     at(viramaOffset),
		zero:       at(digitOffset),
		dec:        make(map[rune]glyph),
		split:      make(map[[2]rune]glyph),
	}
	register := func(g rune, kind glyphKind, slp rune) {
		c.dec[g] = glyph{kind: kind, slp: slp}
		if d := []rune(norm.NFC.String(string(g))); len(d) == 2 && d[1] == at(nuktaOffset) {
			c.split[[2]rune{d[0], d[1]}] = glyph{kind: kind, slp: slp}
		}
	}
	for i, v := range slp1Vowels {
		g := at(vowelOffsets[i])
		c.vowels[v] = g
		register(g, kindVowel, v)
		if signOffsets[i] >= 0 {
			s := at(signOffsets[i])
			c.signs[v] = s
			register(s, kindSign, v)
		}
	}
	for i, m := range slp1Marks {
		g := at(markOffsets[i])
		c.marks[m] = g
		register(g, kindMark, m)
	}
	for i, k := range slp1Consonants {
		g := at(consonantOffsets[i])
		c.consonants[k] = g
		register(g, kindConsonant, k)
	}
	register(c.virama, kindVirama, 0)
	for d := rune(0); d < 10; d++ {
		register(c.zero+d, kindDigit, '0'+d)
	}
	register(danda, kindDanda, slp1Danda)
	register(doubleDanda, kindDoubleDanda, slp1Danda)
	return c
}

func (c *brahmicCodec) encode(slp string) string {
	runes := []rune(slp)
	var b strings.Builder
	b.Grow(len(slp) * 3)
	open := false // last consonant still waits for its vowel
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if g, ok := c.consonants[r]; ok {
			if open {
				b.WriteRune(c.virama)
			}
			b.WriteRune(g)
			open = true
			continue
		}
		if g, ok := c.vowels[r]; ok {
			if open {
				if s, ok := c.signs[r]; ok {
					b.WriteRune(s)
				}
				open = false
				continue
			}
			b.WriteRune(g)
			continue
		}
		if open {
			b.WriteRune(c.virama)
			open = false
		}
		switch {
		case c.marks[r] != 0:
			b.WriteRune(c.marks[r])
		case r == slp1Danda:
			if i+1 < len(runes) && runes[i+1] == slp1Danda {
				b.WriteRune(doubleDanda)
				i++
			} else {
				b.WriteRune(danda)
			}
		case r >= '0' && r <= '9':
			b.WriteRune(c.zero + r - '0')
		default:
			b.WriteRune(r)
		}
	}
	if open {
		b.WriteRune(c.virama)
	}
	return b.String()
}

func (c *brahmicCodec) decode(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); i++ {
		g, ok := c.dec[runes[i]]
		if i+1 < len(runes) {
			if sg, found := c.split[[2]rune{runes[i], runes[i+1]}]; found {
				g, ok = sg, true
				i++
			}
		}
		if !ok {
			b.WriteRune(runes[i])
			continue
		}
		switch g.kind {
		case kindConsonant:
			b.WriteRune(g.slp)
			next, ok := glyph{}, false
			if i+1 < len(runes) {
				next, ok = c.dec[runes[i+1]]
			}
			switch {
			case ok && next.kind == kindSign:
				b.WriteRune(next.slp)
				i++
			case ok && next.kind == kindVirama:
				i++
			default:
				b.WriteByte('a')
			}
		case kindVirama:
		case kindDoubleDanda:
			b.WriteString("..")
		default:
			b.WriteRune(g.slp)
		}
	}
	return b.String()
}
