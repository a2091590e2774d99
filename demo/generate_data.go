//go:build ignore

// Builds a sample directory tree for trying the browser:
//
//	go run demo/generate_data.go ./demo-data
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type file struct {
	path    string
	size    int64
	modTime int64
	isDir   bool
}

var files = []file{
	// Root directories
	{path: "reports", modTime: 1706695200, isDir: true},
	{path: "contracts", modTime: 1706608800, isDir: true},
	{path: "invoices", modTime: 1706522400, isDir: true},
	{path: "Photos", modTime: 1706436000, isDir: true},
	{path: ".cache", modTime: 1706436000, isDir: true},

	// Subdirectories
	{path: "reports/2024", modTime: 1706695200, isDir: true},
	{path: "reports/2025", modTime: 1706695200, isDir: true},
	{path: "invoices/clients", modTime: 1706522400, isDir: true},

	// Files in reports
	{path: "reports/2024/annual_report_2024.pdf", size: 2457600, modTime: 1706695200},
	{path: "reports/2024/quarterly_q1.pdf", size: 1048576, modTime: 1680307200},
	{path: "reports/2024/Quarterly_q2.pdf", size: 1153434, modTime: 1688169600},
	{path: "reports/2025/budget_forecast.xlsx", size: 786432, modTime: 1706695200},

	// Files in contracts
	{path: "contracts/service_agreement_acme.pdf", size: 358400, modTime: 1698796800},
	{path: "contracts/nda_template.docx", size: 45056, modTime: 1693526400},
	{path: "contracts/Ärztekammer.pdf", size: 2048, modTime: 1693526400},

	// Files in invoices/clients
	{path: "invoices/clients/INV-2024-001.pdf", size: 102400, modTime: 1704153600},
	{path: "invoices/clients/inv-2024-002.pdf", size: 98304, modTime: 1704758400},

	// Images use the file:// icon
	{path: "Photos/beach.jpg", size: 3145728, modTime: 1703980800},
	{path: "Photos/sunset.png", size: 2097152, modTime: 1703980800},
	{path: "Photos/scan.JPG", size: 1048576, modTime: 1703980800},

	// Root files, hidden ones are never listed
	{path: "readme.txt", size: 500, modTime: 1706695200},
	{path: "Notes.md", size: 1536, modTime: 1706695200},
	{path: ".hidden", size: 12, modTime: 1706695200},
	{path: ".cache/state", size: 64, modTime: 1706695200},
}

func main() {
	root := "demo-data"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f.path))
		if f.isDir {
			if err := os.MkdirAll(full, 0o755); err != nil {
				fail(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			fail(err)
		}
		fh, err := os.Create(full)
		if err != nil {
			fail(err)
		}
		if err := fh.Truncate(f.size); err != nil {
			fail(err)
		}
		fh.Close()
	}

	// Times are set last so creating children does not touch them.
	for i := len(files) - 1; i >= 0; i-- {
		f := files[i]
		t := time.Unix(f.modTime, 0)
		if err := os.Chtimes(filepath.Join(root, filepath.FromSlash(f.path)), t, t); err != nil {
			fail(err)
		}
	}

	fmt.Printf("Created %d entries under %s\n", len(files), root)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
