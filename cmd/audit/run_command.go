package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"siteaudit-backend/internal/analysis"
	"siteaudit-backend/internal/bootstrap"
	"siteaudit-backend/internal/shared/config"
)

func newRunCommand() *cobra.Command {
	var (
		analyzerFlags []string
		formatFlag    string
		timeoutFlag   time.Duration
		verboseFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "run <url|file>",
		Short: "Audit a page by URL or local HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch formatFlag {
			case "table", "json":
			default:
				return fmt.Errorf("unknown format %q (want table or json)", formatFlag)
			}

			app, err := bootstrap.BuildCLI(config.Load())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag)
			defer cancel()

			target := args[0]
			var results map[string]*analysis.Result
			if isLocalFile(target) {
				html, err := os.ReadFile(target)
				if err != nil {
					return fmt.Errorf("read %s: %w", target, err)
				}
				results, err = app.AuditsService.RunHTML(ctx, string(html), analyzerFlags, nil)
				if err != nil {
					return err
				}
			} else {
				results, err = app.AuditsService.Run(ctx, target, analyzerFlags, nil)
				if err != nil {
					return err
				}
			}

			if formatFlag == "json" {
				return writeJSON(cmd, results)
			}
			writeTable(cmd, results, verboseFlag)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&analyzerFlags, "analyzer", "a", nil, "Analyzer to run (repeatable; default all)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table or json")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 60*time.Second, "Overall audit timeout")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Include recommendations in table output")

	return cmd
}

func isLocalFile(target string) bool {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return false
	}
	info, err := os.Stat(target)
	return err == nil && !info.IsDir()
}

func writeJSON(cmd *cobra.Command, results map[string]*analysis.Result) error {
	payload := make(map[string]any, len(results))
	for name, result := range results {
		payload[name] = result.ToMap()
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func writeTable(cmd *cobra.Command, results map[string]*analysis.Result, verbose bool) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		result := results[name]
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%.2f", result.Score),
			fmt.Sprintf("%d", len(result.Issues)),
			fmt.Sprintf("%d", len(result.Warnings)),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderResultsTable(
		[]string{"Analyzer", "Score", "Issues", "Warnings"},
		rows, 2, 3, 4,
	))

	for _, name := range names {
		result := results[name]
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "[%s] issue: %s\n", name, issue)
		}
		for _, warning := range result.Warnings {
			fmt.Fprintf(out, "[%s] warning: %s\n", name, warning)
		}
		if verbose {
			for _, rec := range result.Recommendations {
				fmt.Fprintf(out, "[%s] recommendation: %s\n", name, rec)
			}
		}
	}
}
