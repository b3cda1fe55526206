package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("url list not found")

// Load reads the URL list at path. Paths starting with s3:// are fetched from
// S3; everything else is read from the local filesystem.
func Load(ctx context.Context, path string) ([]string, error) {
	if strings.HasPrefix(path, "s3://") {
		data, err := fetchS3(ctx, path)
		if err != nil {
			return nil, err
		}
		return Parse(path, data)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading url list: %w", err)
	}
	return Parse(path, data)
}

// Parse picks the list format from name's extension. YAML lists may hold plain
// strings or {link: ...} entries; any other file is one URL per line. Blank
// entries are dropped in both cases.
func Parse(name string, data []byte) ([]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseLines(data)
	}
}

func parseLines(data []byte) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning url list: %w", err)
	}
	return urls, nil
}

type listEntry struct {
	Link string `yaml:"link"`
}

func (e *listEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		e.Link = value.Value
		return nil
	}
	type plain listEntry
	return value.Decode((*plain)(e))
}

func parseYAML(data []byte) ([]string, error) {
	var entries []listEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing YAML url list: %w", err)
	}
	var urls []string
	for _, entry := range entries {
		if link := strings.TrimSpace(entry.Link); link != "" {
			urls = append(urls, link)
		}
	}
	return urls, nil
}
