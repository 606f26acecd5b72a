package report_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-register/internal/report"
)

func TestFileSinkWriteReplaces(t *testing.T) {
	sink, err := report.NewFileSink(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, sink.Write(ctx, report.DestInvoice, []string{"Invoice", "Total: 10"}))
	require.NoError(t, sink.Write(ctx, report.DestInvoice, []string{"Invoice", "Total: 20"}))

	data, err := os.ReadFile(filepath.Join(sink.Dir, "invoice.txt"))
	require.NoError(t, err)
	require.Equal(t, "Invoice\nTotal: 20\n", string(data))
}

func TestFileSinkAppendAccumulates(t *testing.T) {
	sink, err := report.NewFileSink(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, sink.Append(ctx, report.DestSalesHistory, []string{"first"}))
	require.NoError(t, sink.Append(ctx, report.DestSalesHistory, []string{"second"}))

	data, err := os.ReadFile(filepath.Join(sink.Dir, "sales_history.txt"))
	require.NoError(t, err)
	require.Equal(t, "first\nsecond\n", string(data))
}

func TestFileSinkPing(t *testing.T) {
	sink, err := report.NewFileSink(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, sink.Ping(context.Background()))

	sink.Dir = filepath.Join(sink.Dir, "does-not-exist")
	require.Error(t, sink.Ping(context.Background()))
}

func TestNewFileSinkRequiresDir(t *testing.T) {
	_, err := report.NewFileSink("  ")
	require.Error(t, err)
}
