// Command sgrep is the CLI surface for the structural search-and-rewrite
// engine: find/rewrite against a single file for quick iteration, and
// apply/rollback for committing rule-driven rewrites across a walked
// tree with an auditable run history. Grounded in the teacher's
// demo/cmd/main.go cobra tree; every subcommand below is a thin
// wrapper over provider.Provider / store.Store / internal/walk /
// internal/apply — no matching logic lives in this package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/sgrep/internal/config"
	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/lang/dockerfile"
	"github.com/oxhq/sgrep/lang/golang"
	"github.com/oxhq/sgrep/lang/hcl"
	"github.com/oxhq/sgrep/matcher"
	"github.com/oxhq/sgrep/provider"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sgrep",
		Short: "Structural search and rewrite over code syntax trees",
		Long:  "sgrep finds and rewrites code by matching against its parsed syntax tree rather than its text, using metavariable patterns and YAML rule files.",
	}

	root.AddCommand(newFindCmd())
	root.AddCommand(newRewriteCmd())
	root.AddCommand(newApplyCmd())
	root.AddCommand(newRollbackCmd())
	return root
}

// langRegistry builds the registry of every shipped dialect.
func langRegistry() *lang.Registry {
	reg := lang.NewRegistry()
	_ = reg.Register(golang.Adapter)
	_ = reg.Register(hcl.Adapter)
	_ = reg.Register(dockerfile.Adapter)
	return reg
}

// providerRegistry builds one provider.Provider per shipped dialect,
// sharing cfg's soft bounds.
func providerRegistry(cfg *config.Config) (*provider.Registry, error) {
	limits := matcher.Limits{
		MaxWorklistSize: cfg.MaxWorklistSize,
		MaxCandidates:   cfg.MaxCandidates,
	}
	return provider.NewRegistry(langRegistry(), limits)
}

// resolveLanguage picks an adapter by explicit tag, falling back to the
// file's extension via the language registry.
func resolveLanguage(tag, path string) (string, error) {
	reg := langRegistry()
	if tag != "" {
		if _, err := reg.Get(tag); err != nil {
			return "", err
		}
		return tag, nil
	}
	a, err := reg.ForExtension(path)
	if err != nil {
		return "", fmt.Errorf("sgrep: cannot infer language for %s, pass --lang: %w", path, err)
	}
	return a.Name(), nil
}
