package main

import (
	"fmt"

	"github.com/gogpu/chroma"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var matchMix int

// matchCmd searches the palette for the description closest to a target
// color given in hex.
var matchCmd = &cobra.Command{
	Use:   "match <hex>",
	Short: "Find the description that best matches a hex color",
	Long: `match brute-forces every palette name combination and adjective
tier to find the description whose color lands closest to the target.
Cost grows steeply with --mix; 1 or 2 is usual.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		space, err := pickSpace()
		if err != nil {
			return err
		}
		mix := matchMix
		if mix == 0 {
			mix = viper.GetInt("mix")
		}

		palette := chroma.DefaultPalette(space)
		target := chroma.Hex(space, args[0])
		desc := palette.BestMatch(target, mix)
		got := palette.ParseDescription(desc)

		fmt.Printf("description: %s\n", desc)
		fmt.Printf("color:       %s (target %s)\n",
			chroma.HexString(space, got), chroma.HexString(space, target))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().IntVarP(&matchMix, "mix", "m", 0, "max palette colors to mix (default from config)")
}
