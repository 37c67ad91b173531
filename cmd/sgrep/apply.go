package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/datatypes"

	"github.com/oxhq/sgrep/internal/apply"
	"github.com/oxhq/sgrep/internal/config"
	"github.com/oxhq/sgrep/internal/walk"
	"github.com/oxhq/sgrep/rule"
	"github.com/oxhq/sgrep/store"
)

func newApplyCmd() *cobra.Command {
	var rulesPath, root string
	var include, exclude []string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Walk a tree and commit every rule's rewrite to disk, recording a run in the history store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			registry := langRegistry()

			ruleSet, err := rule.LoadFile(rulesPath, registry)
			if err != nil {
				return err
			}
			rewriteRules := make([]*rule.Rule, 0, len(ruleSet.Rules))
			for _, r := range ruleSet.Rules {
				if r.Rewrite != nil {
					rewriteRules = append(rewriteRules, r)
				}
			}
			if len(rewriteRules) == 0 {
				return fmt.Errorf("sgrep: %s has no rules with a rewrite pattern", rulesPath)
			}

			providers, err := providerRegistry(cfg)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg, false)
			if err != nil {
				return fmt.Errorf("sgrep: %w", err)
			}
			defer st.Close()

			options, err := json.Marshal(map[string]any{
				"rules":   rulesPath,
				"root":    root,
				"include": include,
				"exclude": exclude,
			})
			if err != nil {
				return fmt.Errorf("sgrep: %w", err)
			}
			run, err := st.StartRun(datatypes.JSON(options))
			if err != nil {
				return fmt.Errorf("sgrep: %w", err)
			}

			w := walk.New()
			results, err := w.Walk(context.Background(), walk.Scope{Root: root, Include: include, Exclude: exclude})
			if err != nil {
				return fmt.Errorf("sgrep: %w", err)
			}

			writer := apply.NewWriter(apply.DefaultWriteConfig())
			var journal apply.Journal
			filesWalked := 0

			for res := range results {
				if res.Err != nil {
					fmt.Printf("skip %s: %v\n", res.Path, res.Err)
					continue
				}
				filesWalked++

				language, err := resolveLanguage("", res.Path)
				if err != nil {
					continue // no dialect claims this file; not an error
				}
				p, err := providers.Get(language)
				if err != nil {
					continue
				}

				src, err := readFileString(res.Path)
				if err != nil {
					fmt.Printf("skip %s: %v\n", res.Path, err)
					continue
				}

				for _, r := range rewriteRules {
					if r.Language != language {
						continue
					}
					modified, diff, err := p.Rewrite(src, r)
					if err != nil {
						fmt.Printf("%s: rule %s: %v\n", res.Path, r.ID, err)
						continue
					}
					if diff == "" {
						continue
					}

					matches, _ := p.Find(src, r)
					stage, err := st.StageRewrite(run.ID, res.Path, language, r.ID, src, modified, diff, len(matches), len(matches))
					if err != nil {
						return fmt.Errorf("sgrep: %w", err)
					}

					fmt.Print(diff)
					if dryRun {
						continue
					}

					backupPath, err := writer.WriteFile(res.Path, modified)
					if err != nil {
						journal.Rollback(writer)
						return fmt.Errorf("sgrep: %w", err)
					}
					journal.Record(res.Path, backupPath)
					if _, err := st.ApplyStage(stage.ID, backupPath); err != nil {
						journal.Rollback(writer)
						return fmt.Errorf("sgrep: %w", err)
					}
					src = modified
				}
			}

			if err := st.EndRun(run.ID, filesWalked); err != nil {
				return fmt.Errorf("sgrep: %w", err)
			}
			if err := st.Prune(); err != nil {
				return fmt.Errorf("sgrep: %w", err)
			}

			fmt.Printf("run %s: %d files walked\n", run.ID, filesWalked)
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "rule file to apply (required)")
	cmd.Flags().StringVar(&root, "root", ".", "root directory to walk")
	cmd.Flags().StringSliceVar(&include, "include", nil, "doublestar include globs (default: every file)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "doublestar exclude globs")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "stage and print diffs without writing files")
	_ = cmd.MarkFlagRequired("rules")
	return cmd
}
