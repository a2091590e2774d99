package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ogefest/fbrowser/app"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var remove stringList
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", app.DefaultConfigPath, "Path to configuration file")
	role := fs.String("role", "", "Print only this role for each row (e.g. fileSize)")
	rename := fs.String("rename", "", "Rename a row before listing, as row:name")
	scan := fs.Bool("scan", false, "Read the directory with the background scanner")
	fs.Var(&remove, "rm", "File to remove before listing (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rt, err := app.Bootstrap(*configPath, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer rt.Close()

	m := rt.Model
	if *role != "" {
		if _, ok := m.Roles().Lookup(*role); !ok {
			fmt.Fprintf(stderr, "Unknown role %q, known roles: %s\n", *role, strings.Join(m.Roles().Keys(), ", "))
			return 2
		}
	}

	start := rt.StartPath(fs.Arg(0))
	if *scan {
		err = m.LoadBatches(context.Background(), start, rt.Config.Browser.BatchSize)
	} else {
		err = m.Load(start)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	status := 0
	if len(remove) > 0 {
		if err := m.Remove(remove); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			status = 1
		}
	}

	if *rename != "" {
		if err := renameRow(m, *rename); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			status = 1
		}
	}

	if *role != "" {
		for row := 0; row < m.RowCount(); row++ {
			fmt.Fprintf(stdout, "%d\t%v\n", row, m.Field(row, *role))
		}
	} else {
		printListing(stdout, m)
	}
	return status
}

func renameRow(m *app.Model, arg string) error {
	rowStr, name, ok := strings.Cut(arg, ":")
	if !ok {
		return fmt.Errorf("invalid -rename %q, expected row:name", arg)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return fmt.Errorf("invalid row %q: %w", rowStr, err)
	}
	if !app.ValidEntryName(name) {
		return fmt.Errorf("invalid name %q", name)
	}
	return m.Rename(row, name)
}

func printListing(out io.Writer, m *app.Model) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ROW\tNAME\tSIZE\tMODIFIED\n")
	for row := 0; row < m.RowCount(); row++ {
		name := m.Field(row, "fileName").(string)
		if m.Field(row, "isDir").(bool) {
			name += "/"
		}
		modified := m.Field(row, "modifiedDate").(time.Time)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", row, name, m.Field(row, "fileSize"), modified.Format(time.DateTime))
	}
	w.Flush()

	st := m.Stats()
	fmt.Fprintf(out, "\n%s: %d dirs, %d files, %s\n", m.Path(), st.Dirs, st.Files, app.FormatSize(st.TotalSize))
}
