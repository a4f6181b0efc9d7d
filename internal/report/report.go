// Package report renders claim results: the JSON record, its schema check,
// batch summary tables and XLSX workbooks.
package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"fnol/internal/claim"
)

// ErrContract marks output that does not match the result schema.
var ErrContract = errors.New("result does not match contract")

//go:embed result.schema.json
var resultSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("result.schema.json", bytes.NewReader(resultSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("result.schema.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// Schema returns the embedded JSON Schema for the result record.
func Schema() []byte {
	return append([]byte(nil), resultSchema...)
}

// Encode renders res as two-space indented JSON with a trailing newline.
// The output is checked against the result schema before it is returned.
func Encode(res claim.Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Validate checks a serialized result against the schema.
func Validate(data []byte) error {
	s, err := schema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrContract, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrContract, err)
	}
	return nil
}

// WriteFile encodes res to path, replacing any existing file.
func WriteFile(path string, res claim.Result) error {
	data, err := Encode(res)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
