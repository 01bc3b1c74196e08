package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/chroma"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/image/draw"
)

var (
	swatchOut  string
	swatchCell int
)

// swatchCmd renders the palette as a PNG sheet: one row per lightness
// tier, one column per canonical name in hue order.
var swatchCmd = &cobra.Command{
	Use:   "swatch",
	Short: "Render the palette to a PNG swatch sheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		space, err := pickSpace()
		if err != nil {
			return err
		}
		cell := swatchCell
		if cell == 0 {
			cell = viper.GetInt("swatch.cell")
		}

		palette := chroma.DefaultPalette(space)
		names := palette.NamesByHue()

		// Rows run darkmost..lightmost around the base color.
		tiers := []string{"darkmost", "darkest", "darker", "dark", "", "light", "lighter", "lightest", "lightmost"}

		small := image.NewRGBA(image.Rect(0, 0, len(names), len(tiers)))
		for x, name := range names {
			for y, tier := range tiers {
				desc := name
				if tier != "" {
					desc = tier + " " + name
				}
				c := palette.ParseDescription(desc)
				r, g, b, a := space.ToRGBA(c)
				small.Set(x, y, color.RGBA{
					R: uint8(r*255 + 0.5),
					G: uint8(g*255 + 0.5),
					B: uint8(b*255 + 0.5),
					A: uint8(a*255 + 0.5),
				})
			}
		}

		big := image.NewRGBA(image.Rect(0, 0, len(names)*cell, len(tiers)*cell))
		draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)

		f, err := os.Create(swatchOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := png.Encode(f, big); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%dx%d, %d colors, space %s)\n",
			swatchOut, big.Bounds().Dx(), big.Bounds().Dy(), len(names), space.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(swatchCmd)
	swatchCmd.Flags().StringVarP(&swatchOut, "out", "o", "swatch.png", "output PNG path")
	swatchCmd.Flags().IntVar(&swatchCell, "cell", 0, "swatch cell size in pixels (default from config)")
}
