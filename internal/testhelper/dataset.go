// Package testhelper builds a small on-disk dataset for tests: two verb-form
// shards, the rule-text table, a generation table and a root alias table.
package testhelper

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// bavatiRecord is the single interpretation of the form "Bavati".
const bavatiRecord = `{
  "gana": "BvAdi",
  "verb": "BU",
  "dhatupradipa": "http://sanskrit.uohyd.ac.in/scl/dhaatupaatha/files-15-03-2017//XA1.html",
  "kshiratarangini": "http://sanskrit.uohyd.ac.in/scl/dhaatupaatha/files-15-03-2017//kRi1.html",
  "padadecider_sutra": "",
  "jnu": "http://sanskrit.jnu.ac.in/tinanta/tinanta.jsp?t=1",
  "padadecider_id": "parasmEpadI",
  "madhaviya": "http://sanskrit.uohyd.ac.in/scl/dhaatupaatha/files-15-03-2017//mA1.html",
  "number": "01.0001",
  "uohyd": "http://sanskrit.uohyd.ac.in/cgi-bin/scl/skt_gen/verb/verb_gen.cgi?vb=BU1_BU_BvAxiH_sawwAyAm",
  "it_status": "",
  "meaning": "sattAyAm",
  "vachana": "eka",
  "purusha": "praTama",
  "verbaccent": "भू॑",
  "lakara": "law",
  "it_id": "",
  "it_sutra": "",
  "upasarga": "",
  "suffix": "tip",
  "derivation": [
    {"sutra_num": "1.3.1", "form": "BU"},
    {"sutra_num": "3.2.123", "form": "BU+la~w"},
    {"sutra_num": "3.1.68", "form": "BU+Sap+tip"},
    {"sutra_num": "7.3.84", "form": "Bo+a+ti"},
    {"sutra_num": "6.1.78", "form": "Bav+a+ti"},
    {"sutra_num": "~2", "form": "Bavati"}
  ]
}`

const baBUvaFromBU = `{
  "gana": "BvAdi", "verb": "BU", "number": "01.0001", "meaning": "sattAyAm",
  "lakara": "liw", "purusha": "praTama", "vachana": "eka", "suffix": "tip",
  "padadecider_id": "parasmEpadI", "padadecider_sutra": "", "verbaccent": "भू॑",
  "it_id": "", "it_status": "", "it_sutra": "", "upasarga": "",
  "dhatupradipa": "", "kshiratarangini": "", "madhaviya": "", "jnu": "", "uohyd": "",
  "derivation": [
    {"sutra_num": "1.3.1", "form": "BU"},
    {"sutra_num": "~2", "form": "baBUva"}
  ]
}`

// The stored verb carries the corrupted nasal marker "!" and one step uses
// "@" for the rutva marker.
const baBUvaFromAs = `{
  "gana": "adAdi", "verb": "asa!", "number": "02.0060", "meaning": "Buvi",
  "lakara": "liw", "purusha": "praTama", "vachana": "eka", "suffix": "tip",
  "padadecider_id": "parasmEpadI", "padadecider_sutra": "", "verbaccent": "अस॑!",
  "it_id": "", "it_status": "", "it_sutra": "", "upasarga": "",
  "dhatupradipa": "", "kshiratarangini": "", "madhaviya": "", "jnu": "", "uohyd": "",
  "derivation": [
    {"sutra_num": "1.3.1", "form": "asa!"},
    {"sutra_num": "2.4.52", "form": "BU+@"},
    {"sutra_num": "9.9.99", "form": "BU+Ral"},
    {"sutra_num": "~2", "form": "baBUva"}
  ]
}`

const ruleTexts = `{
  "1.3.1": "BUvAdayo DAtavaH",
  "3.2.123": "vartamAne law",
  "3.1.68": "kartari Sap\u200c",
  "7.3.84": "sArvaDAtukArDaDAtukayoH",
  "6.1.78": "eco'yavAyAvaH",
  "2.4.52": "asterBUH",
  "~2": "antimaM rUpam"
}`

const formTable = `{
  "BU": {
    "01.0001": {
      "gana": "BvAdi",
      "meaning": "sattAyAm",
      "verbwithoutanubandha": "BU",
      "padI": "parasmEpadI",
      "it": "seT",
      "law": {
        "tip": [["Bavati", "1"]],
        "ta": ["BUyate"],
        "tas": ["BavataH"],
        "Ji": ["Bavanti"]
      },
      "low": {
        "tip": [["Bavatu"], ["BavatAt"], "Bavatu"],
        "ta": ["BUyatAm"]
      },
      "liw": {
        "tip": ["baBUva"]
      }
    }
  },
  "asa~": {
    "02.0060": {
      "gana": "adAdi",
      "meaning": "Buvi",
      "law": {"tip": ["asti"]},
      "liw": {"tip": ["baBUva"]}
    }
  },
  "asu~": {
    "04.0101": {
      "gana": "divAdi",
      "meaning": "kzepaRe",
      "law": {"tip": ["asyati"]}
    }
  }
}`

const aliases = `{
  "as": ["asa~", "asu~"],
  "Bu": ["BU"]
}`

// Files returns the full dataset keyed by path relative to the data dir.
func Files() map[string]string {
	return map[string]string{
		"jsonsorted/Bav.json": `{"Bavati": [` + bavatiRecord + `]}`,
		"jsonsorted/baB.json": `{"baBUva": [` + baBUvaFromBU + `, ` + baBUvaFromAs + `]}`,
		"sutrainfo.json":      ruleTexts,
		"mapforms.json":       formTable,
		"rootaliases.json":    aliases,
	}
}

// WriteDir writes files under dir.
func WriteDir(t testing.TB, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("testhelper: mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("testhelper: write %s: %v", name, err)
		}
	}
}

// Archive returns files packed as a .tar.gz, members in sorted order.
func Archive(t testing.TB, files map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, n := range names {
		body := []byte(files[n])
		hdr := &tar.Header{Name: n, Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("testhelper: tar header: %v", err)
		}
		if _, err := tw.Write(body); err != nil {
			t.Fatalf("testhelper: tar write: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("testhelper: tar close: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("testhelper: gzip close: %v", err)
	}
	return buf.Bytes()
}

// WriteArchive packs files into dir/name.
func WriteArchive(t testing.TB, dir, name string, files map[string]string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, Archive(t, files), 0o644); err != nil {
		t.Fatalf("testhelper: write archive: %v", err)
	}
	return p
}

// DatasetDir returns a temp dir holding the extracted dataset.
func DatasetDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	WriteDir(t, dir, Files())
	return dir
}
