package excelauto

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Converter exports the workbook through Excel's COM automation, driven by
// PowerShell. Only meaningful on Windows hosts with Excel installed.
type Converter struct {
	Timeout time.Duration
}

func New(timeout time.Duration) *Converter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Converter{Timeout: timeout}
}

func (c *Converter) Name() string { return "excel-automation" }

func (c *Converter) Available() bool {
	if runtime.GOOS != "windows" {
		return false
	}
	_, err := exec.LookPath("powershell")
	return err == nil
}

func (c *Converter) Convert(ctx context.Context, workbook []byte) ([]byte, error) {
	tmp, err := os.MkdirTemp("", "quote-convert-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	src := filepath.Join(tmp, "quote.xlsx")
	dst := filepath.Join(tmp, "quote.pdf")
	if err := os.WriteFile(src, workbook, 0o600); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	script := fmt.Sprintf(`$excel = New-Object -ComObject Excel.Application
$excel.Visible = $false
$excel.DisplayAlerts = $false
$wb = $excel.Workbooks.Open('%s')
$wb.ExportAsFixedFormat(0, '%s')
$wb.Close($false)
$excel.Quit()`, src, dst)

	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("excel automation: %s", msg)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("excel automation produced no output: %w", err)
	}
	return data, nil
}
