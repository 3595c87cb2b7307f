package catalogio

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"
)

// format is a document encoding, detected by file extension the same way
// store.FileTaskStore dispatches on dataFileFormat.
type format string

const (
	formatJSON format = "json"
	formatYAML format = "yaml"
	formatTOML format = "toml"
)

func formatForPath(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".toml":
		return formatTOML
	default:
		return formatJSON
	}
}

func decode(data []byte, f format, out any) error {
	switch f {
	case formatYAML:
		return yaml.Unmarshal(data, out)
	case formatTOML:
		return toml.Unmarshal(data, out)
	case formatJSON:
		return json.Unmarshal(data, out)
	default:
		return fmt.Errorf("catalogio: unsupported format %q", f)
	}
}

// DecodeDocument detects the encoding of path by extension and decodes
// data into out. Exported so sibling loaders (internal/contextio) can
// reuse the same JSON/YAML/TOML dispatch without duplicating it.
func DecodeDocument(data []byte, path string, out any) error {
	return decode(data, formatForPath(path), out)
}
