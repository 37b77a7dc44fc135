package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/brogergvhs/dubfilter/internal/config"
	"github.com/brogergvhs/dubfilter/internal/filter"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool

	// rules, shared by filter, watch and check
	flagLangs             []string
	flagNoLegacy          bool
	flagTitleSelector     string
	flagContainerSelector string
)

var rootCmd = &cobra.Command{
	Use:   "dubfilter",
	Short: "Hide dubbed releases on simulcast calendar pages",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addRuleFlags(c *cobra.Command) {
	c.Flags().StringSliceVar(&flagLangs, "lang", nil, "dub languages to hide, repeatable or comma separated (e.g. \"English,Deutsch\")")
	c.Flags().BoolVar(&flagNoLegacy, "no-legacy", false, "do not treat titles containing \" Dub)\" as dubbed")
	c.Flags().StringVar(&flagTitleSelector, "title-selector", "", "CSS selector of entry titles (default \"cite\")")
	c.Flags().StringVar(&flagContainerSelector, "container-selector", "", "CSS selector of the entry container to hide (default \"li\")")
}

func ruleOptions() config.Options {
	return config.Options{
		IgnoreConfig:      flagIgnoreConfig,
		Debug:             flagDebug,
		Languages:         splitLangs(flagLangs),
		NoLegacy:          flagNoLegacy,
		TitleSelector:     flagTitleSelector,
		ContainerSelector: flagContainerSelector,
	}
}

func newClassifier(cfg *config.Config) (*filter.Classifier, error) {
	c, err := filter.NewClassifier(cfg.Languages, filter.WithLegacyMarker(cfg.Legacy()))
	if err != nil {
		return nil, fmt.Errorf("invalid language list: %w", err)
	}

	return c, nil
}

func splitLangs(in []string) []string {
	out := []string{}
	for _, l := range in {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}

	return out
}
