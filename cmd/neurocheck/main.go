// Command neurocheck runs the smoke-check invariants over one or more
// recording projects: schema and pairing validation, cursor-bounds
// DPI tolerance, segment bounds, and (with --check-export) the
// decoded-video duration drift check. It prints every failure and
// warning found and exits 1 if any project fails.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neurochelplus/NeuroScreenCaster/internal/config"
	"github.com/neurochelplus/NeuroScreenCaster/internal/qacheck"
	"github.com/neurochelplus/NeuroScreenCaster/internal/schema"
	"github.com/neurochelplus/NeuroScreenCaster/internal/videoio"
)

var (
	projectDir  string
	projectRoot string
	checkExport bool
)

var rootCmd = &cobra.Command{
	Use:   "neurocheck",
	Short: "Run smoke-check invariants over recording projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectDir == "" && projectRoot == "" {
			return fmt.Errorf("one of --project or --root is required")
		}

		dirs := []string{projectDir}
		if projectRoot != "" {
			var err error
			dirs, err = subdirectories(projectRoot)
			if err != nil {
				return err
			}
		}

		cfg := config.NewConfig()
		anyFailed := false
		for _, dir := range dirs {
			r, err := checkProject(dir, cfg)
			if err != nil {
				fmt.Printf("%s: %v\n", dir, err)
				anyFailed = true
				continue
			}
			printResult(dir, r)
			if !r.Pass() {
				anyFailed = true
			}
		}

		if anyFailed {
			os.Exit(1)
		}
		return nil
	},
}

func subdirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading --root %s: %w", root, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	return dirs, nil
}

func checkProject(dir string, cfg *config.Config) (qacheck.Result, error) {
	p, err := schema.LoadProject(filepath.Join(dir, "project.json"))
	if err != nil {
		return qacheck.Result{}, fmt.Errorf("project.json: %w", err)
	}
	ef, err := schema.LoadEventsFile(filepath.Join(dir, "events.json"))
	if err != nil {
		return qacheck.Result{}, fmt.Errorf("events.json: %w", err)
	}

	r := qacheck.Check(p, ef, cfg)

	if checkExport {
		dec, err := videoio.OpenDecoder(p.VideoPath)
		if err != nil {
			return r, fmt.Errorf("opening video %s: %w", p.VideoPath, err)
		}
		defer dec.Close()
		qacheck.CheckDurationDrift(&r, p.DurationMs, dec.DurationMs(), cfg)
	}

	return r, nil
}

func printResult(dir string, r qacheck.Result) {
	if r.Pass() && len(r.Warnings) == 0 {
		fmt.Printf("%s: OK\n", dir)
		return
	}
	for _, f := range r.Failures {
		fmt.Printf("%s: FAIL: %s\n", dir, f)
	}
	for _, w := range r.Warnings {
		fmt.Printf("%s: WARN: %s\n", dir, w)
	}
}

func main() {
	rootCmd.Flags().StringVar(&projectDir, "project", "", "directory holding a single project.json + events.json")
	rootCmd.Flags().StringVar(&projectRoot, "root", "", "directory containing multiple project subdirectories")
	rootCmd.Flags().BoolVar(&checkExport, "check-export", false, "also decode the source video and check duration drift")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
