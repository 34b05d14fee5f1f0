package translit

// Convert rewrites text from one scheme to another through SLP1.
// Equal schemes return text unchanged, byte for byte.
func Convert(text string, from, to Scheme) (string, error) {
	if !from.Valid() {
		return "", &InvalidScriptError{Name: string(from)}
	}
	if !to.Valid() {
		return "", &InvalidScriptError{Name: string(to)}
	}
	if from == to {
		return text, nil
	}
	slp, err := ToCanonical(text, from)
	if err != nil {
		return "", err
	}
	return FromCanonical(slp, to)
}

// Fields holding Sanskrit text. Everything else (entry numbers, rule ids,
// accents, reference links) is copied verbatim.
var convertible = map[string]bool{
	"verb":                 true,
	"lakara":               true,
	"purusha":              true,
	"vachana":              true,
	"gana":                 true,
	"meaning":              true,
	"suffix":               true,
	"upasarga":             true,
	"padadecider_sutra":    true,
	"it_id":                true,
	"it_status":            true,
	"sutra":                true,
	"form":                 true,
	"verbwithoutanubandha": true,
	"padI":                 true,
	"it":                   true,
}

// Convertible reports whether values of field are Sanskrit text.
func Convertible(field string) bool {
	return convertible[field]
}

// ConvertTree converts every string reachable under a convertible key of v.
// Maps and slices are rebuilt; v itself is never mutated. Bare strings and
// slices of strings at the top level are treated as convertible.
//
// It is the untyped entry point for callers holding their own decoded JSON
// (map[string]any, []any) in SLP1, such as raw dataset shards. Typed
// results from package prakriya are converted field by field instead.
func ConvertTree(v any, to Scheme) (any, error) {
	if !to.Valid() {
		return nil, &InvalidScriptError{Name: string(to)}
	}
	if to == Canonical {
		return v, nil
	}
	return convertNode(v, to, true), nil
}

func convertNode(v any, to Scheme, text bool) any {
	switch n := v.(type) {
	case string:
		if !text {
			return n
		}
		out, _ := FromCanonical(n, to)
		return out
	case []string:
		out := make([]string, len(n))
		for i, s := range n {
			out[i] = convertNode(s, to, text).(string)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = convertNode(e, to, text)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, e := range n {
			out[k] = convertNode(e, to, convertible[k])
		}
		return out
	default:
		return v
	}
}
