package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"maskeraser"
	"maskeraser/internal/gemini"
)

var (
	eraseIn      string
	eraseOut     string
	eraseRect    string
	eraseSuggest bool
	erasePrompt  string
	eraseMaskOut string
)

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "One-shot erase: image + rectangle + instruction, no browser",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		data, err := os.ReadFile(eraseIn)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		img, format, err := maskeraser.DecodeImageBytes(data)
		if err != nil {
			return fmt.Errorf("decode input: %w", err)
		}
		width, height := img.Bounds().Dx(), img.Bounds().Dy()

		rect, err := resolveRect(width, height)
		if err != nil {
			return err
		}

		var maskPNG []byte
		if rect != nil {
			mask, err := maskeraser.RasterizeMask(*rect, width, height)
			if err != nil {
				return fmt.Errorf("rasterize mask: %w", err)
			}
			if mask == nil {
				return errors.New("rectangle has zero width or height")
			}
			var buf bytes.Buffer
			if err := maskeraser.EncodePNG(&buf, mask); err != nil {
				return fmt.Errorf("encode mask: %w", err)
			}
			maskPNG = buf.Bytes()

			if eraseMaskOut != "" {
				if err := os.WriteFile(eraseMaskOut, maskPNG, 0o644); err != nil {
					return fmt.Errorf("write mask: %w", err)
				}
				log.WithField("path", eraseMaskOut).Info("mask written")
			}
		} else {
			log.Info("no rectangle given; sending the image without a mask")
		}

		client, err := newEditor(cfg)
		if err != nil {
			return err
		}

		instruction := erasePrompt
		if instruction == "" {
			instruction = "Remove the watermark inside the white area of the mask and reconstruct the background seamlessly."
		}

		result, err := client.EditImage(cmd.Context(), gemini.EditRequest{
			Image:       data,
			MIME:        "image/" + format,
			Mask:        maskPNG,
			Instruction: instruction,
			AspectRatio: maskeraser.AspectRatioHint(width, height),
		})
		if err != nil {
			var refusal *gemini.RefusalError
			if errors.As(err, &refusal) {
				return fmt.Errorf("the model declined this edit: %s", refusal.Detail)
			}
			return err
		}

		outPath := eraseOut
		if outPath == "" {
			base := strings.TrimSuffix(filepath.Base(eraseIn), filepath.Ext(eraseIn))
			outPath = filepath.Join(filepath.Dir(eraseIn), base+"_erased.png")
		}
		if err := os.WriteFile(outPath, result.Image, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		fmt.Printf("Processed %s (%s) -> %s\n", eraseIn, format, outPath)
		if result.Text != "" {
			fmt.Println(result.Text)
		}
		return nil
	},
}

// resolveRect picks the selection rectangle: an explicit --rect wins, then
// --suggest falls back to the standard placement; neither means no mask.
func resolveRect(width, height int) (*maskeraser.Rectangle, error) {
	if eraseRect != "" {
		rect, err := parseRect(eraseRect)
		if err != nil {
			return nil, err
		}
		return &rect, nil
	}
	if eraseSuggest {
		rect, ok := maskeraser.SuggestSelection(width, height)
		if !ok {
			return nil, fmt.Errorf("image %dx%d too small for a suggested rectangle", width, height)
		}
		return &rect, nil
	}
	return nil, nil
}

func parseRect(s string) (maskeraser.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return maskeraser.Rectangle{}, fmt.Errorf("rect %q: want x,y,w,h", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return maskeraser.Rectangle{}, fmt.Errorf("rect %q: %w", s, err)
		}
		vals[i] = v
	}
	return maskeraser.Rectangle{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

func init() {
	eraseCmd.Flags().StringVar(&eraseIn, "in", "", "path to the watermarked image (png/jpg/webp)")
	eraseCmd.Flags().StringVar(&eraseOut, "out", "", "output path (defaults to <name>_erased.png)")
	eraseCmd.Flags().StringVar(&eraseRect, "rect", "", "selection rectangle x,y,w,h in image-native pixels")
	eraseCmd.Flags().BoolVar(&eraseSuggest, "suggest", false, "use the standard watermark placement as the rectangle")
	eraseCmd.Flags().StringVar(&erasePrompt, "prompt", "", "instruction for the model")
	eraseCmd.Flags().StringVar(&eraseMaskOut, "mask-out", "", "also write the rasterized mask PNG here")
	_ = eraseCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(eraseCmd)
}
