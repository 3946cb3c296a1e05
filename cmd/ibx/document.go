package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/ibx/dialect/sql/schema"
)

// document is the YAML form written by reflect and read by ddl, gen and
// diff.
type document struct {
	Tables    []*schema.Table    `yaml:"tables"`
	Views     []*schema.View     `yaml:"views,omitempty"`
	Sequences []*schema.Sequence `yaml:"sequences,omitempty"`
	Domains   []*schema.Domain   `yaml:"domains,omitempty"`
}

func readDocument(path string) (*document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseDocument(data)
}

func parseDocument(data []byte) (*document, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if len(doc.Tables) == 0 {
		return nil, errors.New("parse schema: no tables defined")
	}
	return &doc, nil
}

func writeDocument(w io.Writer, doc *document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
