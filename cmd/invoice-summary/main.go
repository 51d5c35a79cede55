package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invoicekit/invoice-summary/constants"
	"github.com/invoicekit/invoice-summary/internal/export"
	"github.com/invoicekit/invoice-summary/internal/pdftext"
	"github.com/invoicekit/invoice-summary/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var out string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "invoice-summary [file|dir]...",
		Short: "Extract invoice fields from PDF files into an XLSX summary",
		Long: `invoice-summary runs the pattern-based invoice extractor over the given
PDF files (directories are walked for PDFs) and writes one spreadsheet row
per detected line item to the output workbook.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			paths, err := collectPDFs(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no PDF files found in %s", strings.Join(args, ", "))
			}

			docs, closeAll, err := openDocuments(paths)
			if err != nil {
				return err
			}
			defer closeAll()

			proc := pipeline.NewProcessor(pdftext.NewReader(logger), logger)
			rows, sum, err := proc.Process(cmd.Context(), docs)
			if err != nil {
				return err
			}

			xlsx, err := export.NewService(logger).BuildWorkbook(rows)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, xlsx, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "extracted %d row(s) from %d document(s) -> %s\n",
				sum.Rows, sum.Documents, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", export.FileName, "output XLSX path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	return cmd
}

// collectPDFs expands the argument list: files are taken as-is, directories
// are walked for PDFs with hidden entries skipped and non-PDF files ignored.
func collectPDFs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !constants.IsAllowedExt(filepath.Ext(arg)) {
				return nil, fmt.Errorf("%s: only PDF files are supported", arg)
			}
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if path != arg && isHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if constants.IsAllowedExt(filepath.Ext(path)) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return paths, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// openDocuments opens every path for the pipeline; the returned closer
// releases all files.
func openDocuments(paths []string) ([]pipeline.Document, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	docs := make([]pipeline.Document, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, f)
		st, err := f.Stat()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		docs = append(docs, pipeline.Document{Name: filepath.Base(p), Reader: f, Size: st.Size()})
	}
	return docs, closeAll, nil
}
