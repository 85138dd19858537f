package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jordan/talentbridge/internal/ats"
	"github.com/jordan/talentbridge/internal/ingestion"
)

var (
	scoreJobFile    string
	scoreJSONOutput bool
	scoreWorkers    int
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume files...]",
	Short: "Score one or more resumes from the command line",
	Long: `Extract text from the given resume files (PDF, DOCX, HTML, or plain text)
and print an ATS compatibility report for each. With --job, resumes are
also matched against the job description in that file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to a job description text file")
	scoreCmd.Flags().BoolVar(&scoreJSONOutput, "json", false, "Print full reports as JSON")
	scoreCmd.Flags().IntVar(&scoreWorkers, "workers", 4, "Number of resumes to score concurrently")
	rootCmd.AddCommand(scoreCmd)
}

type scoredFile struct {
	Path   string      `json:"path"`
	Result *ats.Result `json:"result,omitempty"`
	Err    string      `json:"error,omitempty"`
}

func runScore(cmd *cobra.Command, args []string) error {
	jobDescription := ""
	if scoreJobFile != "" {
		data, err := os.ReadFile(scoreJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobDescription = string(data)
	}

	var (
		mu      sync.Mutex
		results []scoredFile
	)

	g := new(errgroup.Group)
	g.SetLimit(scoreWorkers)
	for _, path := range args {
		g.Go(func() error {
			entry := scoredFile{Path: path}
			if result, err := scoreFile(path, jobDescription); err != nil {
				entry.Err = err.Error()
			} else {
				entry.Result = result
			}
			mu.Lock()
			results = append(results, entry)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	if scoreJSONOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		printScoreSummaries(cmd, results)
	}

	for _, r := range results {
		if r.Err != "" {
			return fmt.Errorf("%d of %d resumes failed to score", countFailed(results), len(results))
		}
	}
	return nil
}

func scoreFile(path, jobDescription string) (*ats.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text, err := ingestion.ExtractResumeText(data, path, "")
	if err != nil {
		return nil, err
	}

	return ats.Score(text, jobDescription), nil
}

func printScoreSummaries(cmd *cobra.Command, results []scoredFile) {
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err != "" {
			fmt.Fprintf(out, "%s: error: %s\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s: %d/100 (%s)\n", r.Path, r.Result.Score, r.Result.Level)
		fmt.Fprintf(out, "  keywords %d/35, sections %d/35, format %d/30\n",
			r.Result.Breakdown.Keywords, r.Result.Breakdown.Sections, r.Result.Breakdown.Format)
		if r.Result.KeywordMatchPercent != nil {
			fmt.Fprintf(out, "  keyword match: %d%%\n", *r.Result.KeywordMatchPercent)
		}
		if r.Result.Insights.TopFix != "" {
			fmt.Fprintf(out, "  top fix: %s\n", r.Result.Insights.TopFix)
		}
	}
}

func countFailed(results []scoredFile) int {
	n := 0
	for _, r := range results {
		if r.Err != "" {
			n++
		}
	}
	return n
}
