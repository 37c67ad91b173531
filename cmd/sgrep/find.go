package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/sgrep/internal/config"
	"github.com/oxhq/sgrep/internal/util"
)

func newFindCmd() *cobra.Command {
	var langFlag string

	cmd := &cobra.Command{
		Use:   "find <pattern> <file>",
		Short: "Find every match of a metavariable pattern in a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patternText, path := args[0], args[1]

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

			r, err := adHocRule(language, patternText, "", registry)
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

			matches, err := p.Find(string(src), r)
			if err != nil {
				return fmt.Errorf("sgrep: find: %w", err)
			}

			if len(matches) == 0 {
				fmt.Printf("%s: no matches\n", path)
				return nil
			}
			for i, m := range matches {
				text := m.Area.Text()
				norm := *m.Area.Nodes()[0].Source()
				startLine, startCol := util.Position(norm, m.Area.StartByte())
				endLine, endCol := util.Position(norm, m.Area.EndByte())
				fmt.Printf("%s:%d:%d-%d:%d: match %d\n", path, startLine, startCol, endLine, endCol, i+1)
				fmt.Println(text)
				fmt.Println("---")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "target language (inferred from the file extension if omitted)")
	return cmd
}
