// Package report provides the text sink collaborator the store writes its
// reports through. Writes are blocking and best-effort: a failure surfaces
// to the caller but never rolls back state already committed in memory.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Named destinations the store writes to.
const (
	DestDelivery     = "delivery"
	DestLowStock     = "low_stock"
	DestInvoice      = "invoice"
	DestSalesHistory = "sales_history"
	DestStockReport  = "stock_report"
)

// Sink receives report lines for a named destination. Write replaces the
// destination's contents; Append adds to them.
type Sink interface {
	Write(ctx context.Context, name string, lines []string) error
	Append(ctx context.Context, name string, lines []string) error
	// Ping reports whether the sink is able to accept writes.
	Ping(ctx context.Context) error
}

// FileSink stores each destination as <name>.txt under Dir.
type FileSink struct {
	Dir string
}

// NewFileSink creates the directory if needed and returns a sink over it.
func NewFileSink(dir string) (*FileSink, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("report: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create dir: %w", err)
	}
	return &FileSink{Dir: dir}, nil
}

// Write replaces the destination file with the provided lines.
func (s *FileSink) Write(ctx context.Context, name string, lines []string) error {
	return s.write(ctx, name, lines, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
}

// Append adds the provided lines to the end of the destination file.
func (s *FileSink) Append(ctx context.Context, name string, lines []string) error {
	return s.write(ctx, name, lines, os.O_CREATE|os.O_WRONLY|os.O_APPEND)
}

// Ping verifies the sink directory is writable.
func (s *FileSink) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.Dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("report: sink not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

func (s *FileSink) write(ctx context.Context, name string, lines []string, flags int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("report: destination name is required")
	}
	path := filepath.Join(s.Dir, name+".txt")
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("report: open %s: %w", name, err)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			_ = f.Close()
			return fmt.Errorf("report: write %s: %w", name, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", name, err)
	}
	return nil
}
