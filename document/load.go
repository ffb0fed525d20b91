package document

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Decoder decodes the source bytes of a document.
type Decoder func(src []byte, filename string) (*Node, error)

// DecoderFor returns the decoder selected by the extension of path.
func DecoderFor(path string) (Decoder, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML, true
	case ".hcl":
		return DecodeHCL, true
	}

	return nil, false
}

// Load reads and decodes the document at path.
func Load(path string) (*Node, error) {
	decode, ok := DecoderFor(path)
	if !ok {
		return nil, ErrUnsupported.With(slog.String("file", path))
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound.With(slog.String("file", path)).Wrap(err)
		}

		return nil, ErrDecode.With(slog.String("file", path)).Wrap(err)
	}

	return decode(src, path)
}

// Find locates the document name.
//
// An absolute name, or a relative name that exists from the working
// directory, is returned unchanged. Otherwise each directory of searchPath is
// tried in order.
func Find(name string, searchPath []string) (string, error) {
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}

		return "", ErrNotFound.With(slog.String("file", name))
	}

	if isFile(name) {
		return name, nil
	}

	for _, dir := range searchPath {
		if path := filepath.Join(dir, name); isFile(path) {
			return path, nil
		}
	}

	return "", ErrNotFound.With(
		slog.String("file", name),
		slog.String("path", strings.Join(searchPath, string(os.PathListSeparator))),
	)
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
