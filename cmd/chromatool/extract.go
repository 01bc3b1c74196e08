package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sort"

	"github.com/esimov/colorquant"
	"github.com/gogpu/chroma"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	extractColors int
	extractMix    int
)

// extractCmd quantizes an image down to a few colors and describes each
// of them in palette terms.
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Describe the dominant colors of an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		space, err := pickSpace()
		if err != nil {
			return err
		}
		mix := extractMix
		if mix == 0 {
			mix = viper.GetInt("mix")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return err
		}

		b := img.Bounds()
		quantized := image.NewNRGBA(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y))
		colorquant.NoDither.Quantize(img, quantized, extractColors, false, true)

		// Count pixels per quantized color, sampling a grid.
		counts := make(map[[4]uint8]int)
		for y := b.Min.Y; y < b.Max.Y; y += 4 {
			for x := b.Min.X; x < b.Max.X; x += 4 {
				r, g, bl, a := quantized.At(x, y).RGBA()
				counts[[4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)}]++
			}
		}
		type dominant struct {
			rgba  [4]uint8
			count int
		}
		ranked := make([]dominant, 0, len(counts))
		for rgba, n := range counts {
			ranked = append(ranked, dominant{rgba, n})
		}
		sort.Slice(ranked, func(i, j int) bool { return ranked[i].count > ranked[j].count })

		palette := chroma.DefaultPalette(space)
		for _, d := range ranked {
			c := space.FromRGBA(
				float64(d.rgba[0])/255, float64(d.rgba[1])/255,
				float64(d.rgba[2])/255, float64(d.rgba[3])/255)
			desc := palette.BestMatch(c, mix)
			fmt.Printf("%s  %6d px  %s\n", chroma.HexString(space, c), d.count, desc)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().IntVarP(&extractColors, "colors", "n", 6, "number of dominant colors to extract")
	extractCmd.Flags().IntVarP(&extractMix, "mix", "m", 0, "max palette colors to mix per description (default from config)")
}
