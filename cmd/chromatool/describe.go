package main

import (
	"fmt"
	"strings"

	"github.com/gogpu/chroma"
	"github.com/spf13/cobra"
)

// describeCmd parses a free-form description into a color.
var describeCmd = &cobra.Command{
	Use:   "describe <words...>",
	Short: "Parse a color description like \"darker rich red\"",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		space, err := pickSpace()
		if err != nil {
			return err
		}
		palette := chroma.DefaultPalette(space)
		c := palette.ParseDescription(strings.Join(args, " "))

		r, g, b, a := space.ToRGBA(c)
		fmt.Printf("space:  %s\n", space.Name())
		fmt.Printf("packed: %v\n", c)
		fmt.Printf("hex:    %s\n", chroma.HexString(space, c))
		fmt.Printf("rgba:   %.4f %.4f %.4f %.4f\n", r, g, b, a)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
