package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/sgrep/internal/apply"
	"github.com/oxhq/sgrep/internal/config"
)

func newRewriteCmd() *cobra.Command {
	var langFlag string
	var write bool

	cmd := &cobra.Command{
		Use:   "rewrite <pattern> <rewrite> <file>",
		Short: "Rewrite every match of a pattern in a file and print a diff",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			patternText, rewriteText, path := args[0], args[1], args[2]

			cfg := config.LoadConfig()
			registry := langRegistry()
			language, err := resolveLanguage(langFlag, path)
			if err != nil {
				return err
			}

			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("sgrep: %w", err)
			}

			r, err := adHocRule(language, patternText, rewriteText, registry)
			if err != nil {
				return err
			}

			providers, err := providerRegistry(cfg)
			if err != nil {
				return err
			}
			p, err := providers.Get(language)
			if err != nil {
				return err
			}

			modified, diff, err := p.Rewrite(string(src), r)
			if err != nil {
				return fmt.Errorf("sgrep: rewrite: %w", err)
			}

			if diff == "" {
				fmt.Printf("%s: no matches\n", path)
				return nil
			}
			fmt.Print(diff)

			if write {
				w := apply.NewWriter(apply.DefaultWriteConfig())
				if _, err := w.WriteFile(path, modified); err != nil {
					return fmt.Errorf("sgrep: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "target language (inferred from the file extension if omitted)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the rewritten content back to the file (default: print diff only)")
	return cmd
}
