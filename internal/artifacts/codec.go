package artifacts

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

type format string

const (
	formatGob  format = "gob"
	formatJSON format = "json"
	formatYAML format = "yaml"
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gob":
		return formatGob, nil
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unsupported artifact extension %q", filepath.Ext(path))
	}
}

func decode(r io.Reader, f format, v any) error {
	switch f {
	case formatGob:
		return gob.NewDecoder(r).Decode(v)
	case formatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case formatYAML:
		return yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(v)
	}
	return fmt.Errorf("unsupported artifact format %q", f)
}

func encode(w io.Writer, f format, v any) error {
	switch f {
	case formatGob:
		return gob.NewEncoder(w).Encode(v)
	case formatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case formatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("unsupported artifact format %q", f)
}

func writeFile(path string, v any) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(out, f, v); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}
