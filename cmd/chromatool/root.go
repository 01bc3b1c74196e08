package main

import (
	"fmt"
	"os"

	"github.com/gogpu/chroma"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	spaceName string
)

var rootCmd = &cobra.Command{
	Use:   "chromatool",
	Short: "Palette tooling for packed-float colors",
	Long: `chromatool works with the packed-float color format used by the
chroma library: parse free-form color descriptions, find the best
description for a target color, render palette swatches and extract
palette descriptions from images.

Everything runs offline; the match and extract commands brute-force the
palette and are not meant to be fast.`,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.chromatool.yaml)")
	rootCmd.PersistentFlags().StringVarP(&spaceName, "space", "s", "", "color space: rgb, hsluv, cielab, ipt, ipt_hq or oklab")
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".chromatool")
	}

	viper.SetDefault("space", "hsluv")
	viper.SetDefault("mix", 2)
	viper.SetDefault("swatch.cell", 32)

	viper.SetEnvPrefix("chromatool")
	viper.AutomaticEnv()

	// A missing config file just means defaults.
	_ = viper.ReadInConfig()
}

// pickSpace resolves the --space flag, falling back to the configured
// default.
func pickSpace() (chroma.Space, error) {
	name := spaceName
	if name == "" {
		name = viper.GetString("space")
	}
	for _, s := range []chroma.Space{
		chroma.RGB, chroma.HSLuv, chroma.CIELab, chroma.IPT, chroma.IPTHQ, chroma.Oklab,
	} {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown color space %q", name)
}
