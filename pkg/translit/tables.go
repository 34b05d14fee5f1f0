package translit

// SLP1 phoneme inventory. Every table below is aligned with it.
const (
	slp1Vowels     = "aAiIuUfFxXeEoO"
	slp1Marks      = "MH~'"
	slp1Consonants = "kKgGNcCjJYwWqQRtTdDnpPbBmyrlvSzsh"
	slp1Danda      = '.'
)

var inventory = []rune(slp1Vowels + slp1Marks + slp1Consonants + string(slp1Danda))

// Roman schemes, one token per inventory entry.
var romanTables = map[Scheme][]string{
	SLP1: splitRunes(string(inventory)),
	IAST: {
		"a", "ā", "i", "ī", "u", "ū", "ṛ", "ṝ", "ḷ", "ḹ", "e", "ai", "o", "au",
		"ṃ", "ḥ", "m̐", "'",
		"k", "kh", "g", "gh", "ṅ", "c", "ch", "j", "jh", "ñ",
		"ṭ", "ṭh", "ḍ", "ḍh", "ṇ", "t", "th", "d", "dh", "n",
		"p", "ph", "b", "bh", "m", "y", "r", "l", "v", "ś", "ṣ", "s", "h",
		".",
	},
	HK: {
		"a", "A", "i", "I", "u", "U", "R", "RR", "lR", "lRR", "e", "ai", "o", "au",
		"M", "H", "~", "'",
		"k", "kh", "g", "gh", "G", "c", "ch", "j", "jh", "J",
		"T", "Th", "D", "Dh", "N", "t", "th", "d", "dh", "n",
		"p", "ph", "b", "bh", "m", "y", "r", "l", "v", "z", "S", "s", "h",
		".",
	},
	ITRANS: {
		"a", "A", "i", "I", "u", "U", "RRi", "RRI", "LLi", "LLI", "e", "ai", "o", "au",
		"M", "H", ".N", ".a",
		"k", "kh", "g", "gh", "~N", "ch", "Ch", "j", "jh", "~n",
		"T", "Th", "D", "Dh", "N", "t", "th", "d", "dh", "n",
		"p", "ph", "b", "bh", "m", "y", "r", "l", "v", "sh", "Sh", "s", "h",
		".",
	},
	Velthuis: {
		"a", "aa", "i", "ii", "u", "uu", ".r", ".rr", ".l", ".ll", "e", "ai", "o", "au",
		".m", ".h", "~", ".a",
		"k", "kh", "g", "gh", "\"n", "c", "ch", "j", "jh", "~n",
		".t", ".th", ".d", ".dh", ".n", "t", "th", "d", "dh", "n",
		"p", "ph", "b", "bh", "m", "y", "r", "l", "v", "\"s", ".s", "s", "h",
		".",
	},
	WX: {
		"a", "A", "i", "I", "u", "U", "q", "Q", "L", "LL", "e", "E", "o", "O",
		"M", "H", "z", "Z",
		"k", "K", "g", "G", "f", "c", "C", "j", "J", "F",
		"t", "T", "d", "D", "N", "w", "W", "x", "X", "n",
		"p", "P", "b", "B", "m", "y", "r", "l", "v", "S", "R", "s", "h",
		".",
	},
}

// Extra input spellings accepted when decoding. Never produced on output.
var romanAlternates = map[Scheme]map[string]string{
	ITRANS: {
		"aa": "A", "ii": "I", "uu": "U",
		"R^i": "f", "R^I": "F", "L^i": "x", "L^I": "X",
		"N^": "N", "JN": "Y", "chh": "C", "w": "v", "shh": "z",
		"x": "kz", "GY": "jY", "dny": "jY", ".n": "M", "|": ".",
	},
	IAST: {"ṁ": "M", "|": "."},
	HK:   {"|": "."},
	WX:   {"|": "."},
}

// Schemes whose input is case-insensitive.
var foldCase = map[Scheme]bool{IAST: true, Velthuis: true}

// Offsets inside an ISCII-parallel Unicode block, aligned with slp1Vowels.
var (
	vowelOffsets = []rune{0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x60, 0x0C, 0x61, 0x0F, 0x10, 0x13, 0x14}
	// -1: the inherent vowel has no sign.
	signOffsets      = []rune{-1, 0x3E, 0x3F, 0x40, 0x41, 0x42, 0x43, 0x44, 0x62, 0x63, 0x47, 0x48, 0x4B, 0x4C}
	markOffsets      = []rune{0x02, 0x03, 0x01, 0x3D}
	consonantOffsets = []rune{
		0x15, 0x16, 0x17, 0x18, 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E,
		0x1F, 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28,
		0x2A, 0x2B, 0x2C, 0x2D, 0x2E, 0x2F, 0x30, 0x32, 0x35, 0x36, 0x37, 0x38, 0x39,
	}
)

const (
	nuktaOffset  = 0x3C
	viramaOffset = 0x4D
	digitOffset  = 0x66
	devaBase     = 0x0900
	danda        = '।'
	doubleDanda  = '॥'
)

var brahmicBlocks = map[Scheme]rune{
	Devanagari: 0x0900,
	Bengali:    0x0980,
	Gurmukhi:   0x0A00,
	Gujarati:   0x0A80,
	Oriya:      0x0B00,
	Telugu:     0x0C00,
	Kannada:    0x0C80,
	Malayalam:  0x0D00,
}

// Offsets a block leaves unassigned. Their Devanagari glyph is used instead.
var brahmicGaps = map[Scheme]map[rune]bool{
	Gurmukhi: {
		0x0B: true, 0x0C: true, 0x60: true, 0x61: true,
		0x43: true, 0x44: true, 0x62: true, 0x63: true,
		0x37: true, 0x3D: true,
	},
	Bengali: {0x35: true},
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
