package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rocketscienceinc/tictactoe-agent/internal/policy"
)

const tableFormat = "tictactoe-value-table"

type fileEntry struct {
	State  string  `json:"state"`
	Action int     `json:"action"`
	Value  float64 `json:"value"`
}

type fileTable struct {
	Format  string      `json:"format"`
	Version int         `json:"version"`
	Entries []fileEntry `json:"entries"`
}

// TableFile reads and writes value tables as versioned JSON documents.
type TableFile struct {
	path string
}

func NewTableFile(path string) *TableFile {
	return &TableFile{
		path: path,
	}
}

func (that *TableFile) Load() (*policy.ValueTable, error) {
	file, err := os.Open(that.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open value table: %w", err)
	}
	defer file.Close()

	table, err := DecodeTable(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", that.path, err)
	}

	return table, nil
}

func (that *TableFile) Save(table *policy.ValueTable) error {
	file, err := os.Create(that.path)
	if err != nil {
		return fmt.Errorf("failed to create value table: %w", err)
	}

	if err = EncodeTable(file, table); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to save %s: %w", that.path, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close value table: %w", err)
	}

	return nil
}

// DecodeTable - parses a table document and rejects anything it does not fully understand.
func DecodeTable(r io.Reader) (*policy.ValueTable, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var doc fileTable
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptTable, err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrCorruptTable)
	}

	if doc.Format != tableFormat {
		return nil, fmt.Errorf("%w: unknown format %q", ErrCorruptTable, doc.Format)
	}

	if doc.Version != TableVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptTable, doc.Version)
	}

	builder := policy.NewTableBuilder()
	for i, entry := range doc.Entries {
		if err := builder.Add(entry.State, entry.Action, entry.Value); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrCorruptTable, i, err)
		}
	}

	return builder.Build(), nil
}

func EncodeTable(w io.Writer, table *policy.ValueTable) error {
	entries := table.Entries()

	doc := fileTable{
		Format:  tableFormat,
		Version: TableVersion,
		Entries: make([]fileEntry, 0, len(entries)),
	}

	for _, entry := range entries {
		doc.Entries = append(doc.Entries, fileEntry{
			State:  string(entry.State),
			Action: entry.Action,
			Value:  entry.Value,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("could not marshal value table: %w", err)
	}

	return nil
}
