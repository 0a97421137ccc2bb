// FILE: lixenwraith/filelog/example/raw/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/filelog"
)

// TestPayload defines a struct for testing complex type serialization.
type TestPayload struct {
	RequestID uint64
	User      string
	Metrics   map[string]float64
}

func main() {
	fmt.Println("--- Printer Sanitize Policy Test ---")

	dir, err := os.MkdirTemp("", "filelog-raw-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	byteRecord := "binary\ndata\twith\x00null|pipe"
	structRecord := TestPayload{
		RequestID: 9223372036854775807,
		User:      "test_user",
		Metrics: map[string]float64{
			"latency_ms":  15.7,
			"cpu_percent": 88.2,
		},
	}

	// Each policy writes into its own constant-named file
	for _, policy := range []string{"raw", "line", "hex", "field"} {
		printer, err := filelog.NewBuilder().
			Directory(dir).
			Prefix(policy).
			Naming("constant").
			Sanitize(policy).
			Synchronous(true).
			Build()
		if err != nil {
			panic(err)
		}

		printer.Print(filelog.LevelInfo, "bytes", byteRecord)
		printer.Dump(filelog.LevelDebug, "struct", structRecord)
		if err := printer.Shutdown(time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown %s: %v\n", policy, err)
		}

		content, err := os.ReadFile(filepath.Join(dir, policy+".log"))
		if err != nil {
			panic(err)
		}
		fmt.Printf("\n[%s]\n%s", policy, content)
	}
}
