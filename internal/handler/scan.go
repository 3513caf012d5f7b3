// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/jsonc"
	"github.com/xeipuuv/gojsonschema"
)

// RecordFileName is the name of the record file in a handler directory.
const RecordFileName = "info.json"

//go:embed record.schema.json
var recordSchemaJSON []byte

var recordSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(recordSchemaJSON))
})

// Scan reads all handlers from the given handlers directory.
//
// Every sub directory that contains a record file is a candidate. Records
// that can not be read or parsed are logged and skipped. Parsed handlers are
// not validated yet.
func Scan(dir string) ([]*Handler, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read handlers dir: %w", err)
	}

	handlers := make([]*Handler, 0, len(entries))

	for _, entry := range entries {
		handlerDir := filepath.Join(dir, entry.Name())

		info, err := os.Stat(handlerDir)
		if err != nil || !info.IsDir() {
			continue
		}

		recordPath := filepath.Join(handlerDir, RecordFileName)
		if _, err := os.Stat(recordPath); err != nil {
			continue
		}

		handler, err := ReadFile(recordPath)
		if err != nil {
			slog.Warn("Skip handler",
				slog.String("handler", entry.Name()),
				slog.Any("error", err))

			continue
		}

		handler.ID = entry.Name()
		handler.Dir = handlerDir

		slog.Debug("Found handler",
			slog.String("handler", handler.ID),
			slog.String("runtime", handler.Runtime.String()))

		handlers = append(handlers, handler)
	}

	return handlers, nil
}

// ReadFile reads and parses the record file at the given path.
func ReadFile(path string) (*Handler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	handler, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return handler, nil
}

// Parse parses a record.
//
// Comments and trailing commas are allowed. Absent fields keep their zero
// value. Fields of the wrong type fail the schema check.
func Parse(data []byte) (*Handler, error) {
	stripped := jsonc.ToJSON(data)

	schema, err := recordSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(stripped))
	if err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			msgs = append(msgs, resultErr.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
	}

	var handler Handler

	err = json.Unmarshal(stripped, &handler)
	if err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}

	return &handler, nil
}
