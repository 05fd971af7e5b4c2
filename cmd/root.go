// cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/arun477/dirtree/internal/classify"
	"github.com/arun477/dirtree/internal/config"
	"github.com/arun477/dirtree/internal/digest"
	"github.com/arun477/dirtree/internal/ignore"
	"github.com/arun477/dirtree/internal/summarize"
	"github.com/arun477/dirtree/internal/tokenizer"
	"github.com/arun477/dirtree/internal/tree"
	"github.com/arun477/dirtree/internal/walker"
)

const (
	treeFile    = "directory_tree.txt"
	contextFile = "llmcontext.txt"
)

var (
	cfgFile string
	cfg     *config.Config

	flagRoot            string
	flagLLMContext      bool
	flagMaxFiles        int
	flagIgnoreGitignore bool
	flagBatchDelay      float64
	flagTokens          bool
	flagClipboard       bool
)

var rootCmd = &cobra.Command{
	Use:   "dirtree",
	Short: "Generate a directory tree and per-file LLM context",
	Long: `dirtree renders a directory hierarchy to a text artifact and can
generate a short natural-language summary of each text file, grouped by
directory, as context for a downstream language model.

Exclusion rules come from git itself; files that look binary are skipped.`,
	RunE: runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/dirtree/config.yaml)")

	rootCmd.Flags().StringVar(&flagRoot, "root", ".", "root directory to start from")
	rootCmd.Flags().BoolVar(&flagLLMContext, "llm-context", false, "create a short summary of each file suitable for LLM context")
	rootCmd.Flags().IntVar(&flagMaxFiles, "max-files", 100, "maximum number of files allowed to generate summaries for")
	rootCmd.Flags().BoolVar(&flagIgnoreGitignore, "ignore-gitignore", false, "ignore .gitignore patterns")
	rootCmd.Flags().Float64Var(&flagBatchDelay, "batch-delay", 5.0, "delay in seconds between summarization API calls")
	rootCmd.Flags().BoolVar(&flagTokens, "tokens", false, "report the token footprint of generated artifacts")
	rootCmd.Flags().BoolVarP(&flagClipboard, "clipboard", "c", false, "copy generated artifacts to the clipboard")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	absRoot, err := filepath.Abs(flagRoot)
	if err != nil {
		return err
	}
	project := projectName(absRoot)

	// Config supplies defaults for flags the user didn't set explicitly.
	if !cmd.Flags().Changed("max-files") && cfg.MaxFiles > 0 {
		flagMaxFiles = cfg.MaxFiles
	}
	if !cmd.Flags().Changed("batch-delay") && cfg.BatchDelay > 0 {
		flagBatchDelay = cfg.BatchDelay
	}

	var oracle ignore.Oracle
	if !flagIgnoreGitignore {
		oracle = ignore.NewGitOracle()
	}

	rendered, err := tree.NewRenderer(oracle).Render(ctx, absRoot, project)
	if err != nil {
		return describeOracleErr(err)
	}
	if err := os.WriteFile(treeFile, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("write tree artifact: %w", err)
	}
	fmt.Printf("Directory tree saved to: %s\n", treeFile)
	reportTokens(treeFile, rendered)
	copyToClipboard(rendered)

	if !flagLLMContext {
		return nil
	}
	return runLLMContext(ctx, absRoot, project, oracle)
}

func runLLMContext(ctx context.Context, absRoot, project string, oracle ignore.Oracle) error {
	entries, err := walker.New(oracle).Walk(ctx, absRoot)
	if err != nil {
		return describeOracleErr(err)
	}

	classifier := classify.New(cfg.TextExtensions)
	var candidates []walker.Entry
	for _, e := range entries {
		if classifier.IsText(e.Path) {
			candidates = append(candidates, e)
		}
	}

	apiKey, model, err := resolveCredentials(cfg.Model)
	if err != nil {
		return err
	}

	orchestrator := &summarize.Orchestrator{
		Summarizer: summarize.NewOpenAIClient(cfg.Endpoint, apiKey),
		Project:    project,
		Model:      model,
		Delay:      time.Duration(flagBatchDelay * float64(time.Second)),
		MaxFiles:   flagMaxFiles,
	}
	summaries := orchestrator.Run(ctx, candidates)

	content := digest.Render(project, digest.Group(summaries))
	if err := os.WriteFile(contextFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("write context artifact: %w", err)
	}
	fmt.Printf("LLM context has been saved to: %s\n", contextFile)
	reportTokens(contextFile, content)
	copyToClipboard(content)

	return nil
}

// projectName derives the display name for the scan root, falling back to
// the full path when the base component is empty or unhelpful.
func projectName(root string) string {
	name := filepath.Base(root)
	if name == "." || name == string(filepath.Separator) {
		return root
	}
	return name
}

func describeOracleErr(err error) error {
	if errors.Is(err, ignore.ErrGitMissing) {
		return fmt.Errorf("%w (pass --ignore-gitignore to scan without exclusion rules)", err)
	}
	return err
}

func reportTokens(label, content string) {
	if !flagTokens {
		return
	}
	counter, err := tokenizer.NewTiktoken(cfg.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: token counting unavailable: %v\n", err)
		return
	}
	fmt.Printf("%s: %d tokens\n", label, counter.Count(content))
}

func copyToClipboard(content string) {
	if !flagClipboard {
		return
	}
	if err := clipboard.WriteAll(content); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not copy to clipboard: %v\n", err)
		return
	}
	fmt.Println("Copied to clipboard.")
}
