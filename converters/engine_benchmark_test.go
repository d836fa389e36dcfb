package converters

import (
	"context"
	"fmt"
	"io"
	"testing"
)

// BenchmarkApplyToSQLite measures applying a full-size generated script.
func BenchmarkApplyToSQLite(b *testing.B) {
	script := Script{
		Table:   "bench_table",
		Columns: []string{"col1", "col2", "col3"},
	}
	for i := 0; i < 10000; i++ {
		script.Statements = append(script.Statements,
			fmt.Sprintf("INSERT INTO bench_table (col1, col2, col3) VALUES ('val%d-1', %d, 'val%d-3');", i, i, i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ApplyToSQLite(context.Background(), script, io.Discard, &ApplyOptions{CreateTable: true}); err != nil {
			b.Fatalf("ApplyToSQLite failed: %v", err)
		}
	}
}
