package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/patchwork-labs/patchplan/pkg/bom"
	"github.com/patchwork-labs/patchplan/pkg/cabling"
)

// ResultJSON writes the result document verbatim with two-space
// indentation. Field order follows the result struct and is stable.
func ResultJSON(w io.Writer, result *cabling.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// ReadResult loads a result document previously written by ResultJSON.
func ReadResult(path string) (*cabling.Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file %s: %w", path, err)
	}
	var result cabling.Result
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, fmt.Errorf("failed to parse result file %s: %w", path, err)
	}
	return &result, nil
}

// WriteAll writes sessions.csv, bom.csv and result.json into dir.
func WriteAll(dir string, result *cabling.Result, projectID, revisionID string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	if err := writeFile(filepath.Join(dir, "sessions.csv"), func(w io.Writer) error {
		return SessionsCSV(w, result, projectID, revisionID)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "bom.csv"), func(w io.Writer) error {
		return BOMCSV(w, bom.Build(result))
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "result.json"), func(w io.Writer) error {
		return ResultJSON(w, result)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
