package dataset

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// walkArchive calls fn for every regular file in a .tar.gz. fn returning
// io.EOF stops the walk early without error.
func walkArchive(archivePath string, fn func(h *tar.Header, r io.Reader) error) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open gzip %s: %w", archivePath, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		h, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar %s: %w", archivePath, err)
		}
		if h.Typeflag != tar.TypeReg {
			continue
		}
		if err := fn(h, tr); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// memberName normalises a tar header name ("./jsonsorted/Bav.json" and
// "jsonsorted/Bav.json" are the same member).
func memberName(name string) string {
	return strings.TrimPrefix(path.Clean(name), "./")
}

// safeJoin resolves a member name under dir, refusing names that escape it.
func safeJoin(dir, name string) (string, error) {
	clean := memberName(name)
	if clean == "." || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("archive member %q escapes data dir", name)
	}
	return filepath.Join(dir, filepath.FromSlash(clean)), nil
}

func writeMember(dest string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".extract-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	_, err = io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("extract %s: %w", dest, err)
	}
	return os.Rename(tmp.Name(), dest)
}

// extractMember copies a single member into dir. It returns
// errMemberNotFound when the archive does not carry it.
func extractMember(archivePath, name, dir string) error {
	want := memberName(name)
	dest, err := safeJoin(dir, want)
	if err != nil {
		return err
	}
	found := false
	err = walkArchive(archivePath, func(h *tar.Header, r io.Reader) error {
		if memberName(h.Name) != want {
			return nil
		}
		found = true
		if err := writeMember(dest, r); err != nil {
			return err
		}
		return io.EOF
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s: %w", name, errMemberNotFound)
	}
	return nil
}

// extractAll writes every member into dir and returns how many it wrote.
func extractAll(archivePath, dir string) (int, error) {
	n := 0
	err := walkArchive(archivePath, func(h *tar.Header, r io.Reader) error {
		dest, err := safeJoin(dir, h.Name)
		if err != nil {
			return err
		}
		if err := writeMember(dest, r); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// listMembers returns member names under prefix (a directory, no slash).
func listMembers(archivePath, prefix string) ([]string, error) {
	var names []string
	err := walkArchive(archivePath, func(h *tar.Header, _ io.Reader) error {
		name := memberName(h.Name)
		if strings.HasPrefix(name, prefix+"/") {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func isMissing(err error) bool {
	return errors.Is(err, errMemberNotFound) || errors.Is(err, os.ErrNotExist)
}
