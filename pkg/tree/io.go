package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
)

// Document formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported tree file %q (want .json or .toml)", path)
	}
}

// ReadFile reads a tree document, choosing the format by extension.
func ReadFile(path string) (*hierarchy.Node[Payload], error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// Read decodes a tree document in the given format and converts it to a
// hierarchy.
func Read(r io.Reader, format string) (*hierarchy.Node[Payload], error) {
	doc, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return ToHierarchy(doc)
}

// Decode reads a tree document without converting it.
func Decode(r io.Reader, format string) (Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Node{}, fmt.Errorf("read: %w", err)
	}

	var doc Node
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return Node{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format %q (want json or toml)", format)
	}
	if err != nil {
		return Node{}, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode %s", format)
	}
	return doc, nil
}

// Marshal encodes a hierarchy as a tree document. JSON output is indented.
func Marshal(root *hierarchy.Node[Payload], format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, root, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a hierarchy as a tree document to w.
func Write(w io.Writer, root *hierarchy.Node[Payload], format string) error {
	doc := ToDocument(root)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format %q (want json or toml)", format)
	}
	return nil
}

// WriteFile writes a hierarchy to path, choosing the format by extension.
// The file is created with 0644 permissions.
func WriteFile(root *hierarchy.Node[Payload], path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, root, format)
}
