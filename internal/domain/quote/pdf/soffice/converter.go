package soffice

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Converter drives a headless LibreOffice found on PATH. Each conversion
// runs in its own scratch directory which is removed afterwards.
type Converter struct {
	Binary  string
	Timeout time.Duration
}

func New(binary string, timeout time.Duration) *Converter {
	if binary == "" {
		binary = "soffice"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Converter{Binary: binary, Timeout: timeout}
}

func (c *Converter) Name() string { return "libreoffice" }

func (c *Converter) Available() bool {
	_, err := exec.LookPath(c.Binary)
	return err == nil
}

func (c *Converter) Convert(ctx context.Context, workbook []byte) ([]byte, error) {
	tmp, err := os.MkdirTemp("", "quote-convert-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	src := filepath.Join(tmp, "quote.xlsx")
	if err := os.WriteFile(src, workbook, 0o600); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Binary,
		"--headless", "--convert-to", "pdf", "--outdir", tmp, src)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("soffice: %s", msg)
	}

	data, err := os.ReadFile(filepath.Join(tmp, "quote.pdf"))
	if err != nil {
		return nil, fmt.Errorf("soffice produced no output: %w", err)
	}
	return data, nil
}
