package prakriya

// Tense is a lakAra in SLP1. The zero value means "not given".
type Tense string

const (
	Law     Tense = "law"
	Liw     Tense = "liw"
	Luw     Tense = "luw"
	Lfw     Tense = "lfw"
	Low     Tense = "low"
	LaN     Tense = "laN"
	ViDiliN Tense = "viDiliN"
	ASIrliN Tense = "ASIrliN"
	LuN     Tense = "luN"
	LfN     Tense = "lfN"
)

// Tenses in canonical order.
var Tenses = []Tense{Law, Liw, Luw, Lfw, Low, LaN, ViDiliN, ASIrliN, LuN, LfN}

// Person is a puruSa. The zero value means "not given".
type Person string

const (
	PraTama Person = "praTama"
	MaDyama Person = "maDyama"
	Uttama  Person = "uttama"
)

var Persons = []Person{PraTama, MaDyama, Uttama}

// Number is a vacana. The zero value means "not given".
type Number string

const (
	Eka  Number = "eka"
	Dvi  Number = "dvi"
	Bahu Number = "bahu"
)

var Numbers = []Number{Eka, Dvi, Bahu}

// Suffix is a tiN ending. The zero value means "not given".
type Suffix string

// Suffixes: the nine parasmaipada endings, then the nine Atmanepada ones.
var Suffixes = []Suffix{
	"tip", "tas", "Ji", "sip", "Tas", "Ta", "mip", "vas", "mas",
	"ta", "AtAm", "Ja", "TAs", "ATAm", "Dvam", "iw", "vahi", "mahiN",
}

type personNumber struct {
	p Person
	n Number
}

var suffixPairs = map[personNumber][2]Suffix{
	{PraTama, Eka}:  {"tip", "ta"},
	{PraTama, Dvi}:  {"tas", "AtAm"},
	{PraTama, Bahu}: {"Ji", "Ja"},
	{MaDyama, Eka}:  {"sip", "TAs"},
	{MaDyama, Dvi}:  {"Tas", "ATAm"},
	{MaDyama, Bahu}: {"Ta", "Dvam"},
	{Uttama, Eka}:   {"mip", "iw"},
	{Uttama, Dvi}:   {"vas", "vahi"},
	{Uttama, Bahu}:  {"mas", "mahiN"},
}

// SuffixesFor returns the parasmaipada and Atmanepada ending for a
// person/number pair.
func SuffixesFor(p Person, n Number) ([2]Suffix, bool) {
	s, ok := suffixPairs[personNumber{p, n}]
	return s, ok
}

func (t Tense) Valid() bool  { return contains(Tenses, t) }
func (p Person) Valid() bool { return contains(Persons, p) }
func (n Number) Valid() bool { return contains(Numbers, n) }
func (s Suffix) Valid() bool { return contains(Suffixes, s) }

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func names[T ~string](list []T) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = string(v)
	}
	return out
}

// ParseTense validates an SLP1 tense name. "" is accepted as absent.
func ParseTense(s string) (Tense, error) {
	t := Tense(s)
	if s != "" && !t.Valid() {
		return "", &QueryError{Kind: ErrInvalidTense, Value: s, Allowed: names(Tenses)}
	}
	return t, nil
}

// ParsePerson validates an SLP1 person name. "" is accepted as absent.
func ParsePerson(s string) (Person, error) {
	p := Person(s)
	if s != "" && !p.Valid() {
		return "", &QueryError{Kind: ErrInvalidPerson, Value: s, Allowed: names(Persons)}
	}
	return p, nil
}

// ParseNumber validates an SLP1 number name. "" is accepted as absent.
func ParseNumber(s string) (Number, error) {
	n := Number(s)
	if s != "" && !n.Valid() {
		return "", &QueryError{Kind: ErrInvalidVachana, Value: s, Allowed: names(Numbers)}
	}
	return n, nil
}

// ParseSuffix validates an SLP1 suffix code. "" is accepted as absent.
func ParseSuffix(s string) (Suffix, error) {
	x := Suffix(s)
	if s != "" && !x.Valid() {
		return "", &QueryError{Kind: ErrInvalidSuffix, Value: s, Allowed: names(Suffixes)}
	}
	return x, nil
}
