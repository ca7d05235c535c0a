package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/pomo/internal/log"
)

// ErrUnknownKey is returned by SetValue for a key pomo does not read.
var ErrUnknownKey = errors.New("unknown config key")

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindFloat
)

// settable lists the scalar keys SetValue accepts. theme.colors.<token> is
// handled separately.
var settable = map[string]valueKind{
	"mode":                kindString,
	"keys.stop":           kindString,
	"keys.resume":         kindString,
	"keys.reset":          kindString,
	"keys.quit":           kindString,
	"ui.show_state":       kindBool,
	"ui.alt_screen":       kindBool,
	"theme.preset":        kindString,
	"log.path":            kindString,
	"tracing.enabled":     kindBool,
	"tracing.exporter":    kindString,
	"tracing.file_path":   kindString,
	"tracing.sample_rate": kindFloat,
}

const colorsPrefix = "theme.colors."

// SetValue sets a single key in the config file at configPath and writes it
// back. Comments and formatting elsewhere are preserved by editing the
// yaml.Node tree. The file is created if missing. The updated config must
// pass Validate or nothing is written.
func SetValue(configPath, key, value string) error {
	path, kind, err := resolveKey(key)
	if err != nil {
		return err
	}
	scalar, err := scalarNode(kind, value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	// Read existing file content
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode}
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode}}
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level must be a mapping")
	}

	if err := setPath(doc.Content[0], path, scalar); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	// Marshal back to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	cfg, err := decode(buf.Bytes())
	if err != nil {
		return fmt.Errorf("re-reading config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		return err
	}
	log.Info(log.CatConfig, "Config value set", "path", configPath, "key", key, "value", value)
	return nil
}

// resolveKey splits key into mapping path segments.
func resolveKey(key string) ([]string, valueKind, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if token, ok := strings.CutPrefix(key, colorsPrefix); ok && token != "" {
		// The token stays one flat key: colors: {"clock.running": ...}
		return []string{"theme", "colors", token}, kindString, nil
	}
	kind, ok := settable[key]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return strings.Split(key, "."), kind, nil
}

func scalarNode(kind valueKind, value string) (*yaml.Node, error) {
	switch kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("expected true or false, got %q", value)
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", value)
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(f, 'f', -1, 64)}, nil
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}, nil
	}
}

// setPath walks m along path, creating mappings as needed, and replaces the
// value at the last segment. A replaced scalar keeps its comments.
func setPath(m *yaml.Node, path []string, value *yaml.Node) error {
	for i, seg := range path {
		last := i == len(path)-1

		var child *yaml.Node
		for j := 0; j+1 < len(m.Content); j += 2 {
			if m.Content[j].Value == seg {
				child = m.Content[j+1]
				if last {
					value.LineComment = child.LineComment
					value.HeadComment = child.HeadComment
					value.FootComment = child.FootComment
					m.Content[j+1] = value
					return nil
				}
				break
			}
		}

		if last {
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: seg}, value)
			return nil
		}

		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: seg}, child)
		}
		if child.Kind != yaml.MappingNode {
			if child.Kind == yaml.ScalarNode && (child.Tag == "!!null" || child.Value == "") {
				child.Kind = yaml.MappingNode
				child.Tag = ""
				child.Value = ""
			} else {
				return fmt.Errorf("%s is not a mapping", strings.Join(path[:i+1], "."))
			}
		}
		m = child
	}
	return nil
}

// writeAtomic writes data to a temp file next to path, then renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".pomo.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
