package storage

import (
	"os"
	"path/filepath"
)

// Local writes generated quote artifacts to a directory on disk. Existing
// files with the same stem are overwritten.
type Local struct{}

func (Local) Persist(dir, stem string, workbook, pdf []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, stem+".xlsx"), workbook, 0o644); err != nil {
		return err
	}
	if len(pdf) > 0 {
		if err := os.WriteFile(filepath.Join(dir, stem+".pdf"), pdf, 0o644); err != nil {
			return err
		}
	}
	return nil
}
