package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/image-lab/internal/api"
	"github.com/JaimeStill/image-lab/internal/images"
)

type seedOptions struct {
	Count       int
	Width       int
	Height      int
	Concurrency int
	Prefix      string
}

func seedCmd() *cobra.Command {
	opts := seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Ingest synthetic gradient images",
		Long: `Generate gradient PNGs and ingest them through the same path as uploads,
so every seeded record has a resized artifact in the configured store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, infra, err := bootstrap()
			if err != nil {
				return err
			}
			defer infra.Database.Connection().Close()

			if err := infra.Migrate(); err != nil {
				return err
			}

			runtime := api.NewRuntime(cfg, infra)
			domain := api.NewDomain(cfg, runtime)

			n, err := seedImages(cmd.Context(), domain.Images, opts, infra.Logger)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d images\n", n)
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 20, "number of images to ingest")
	cmd.Flags().IntVar(&opts.Width, "width", 640, "target width")
	cmd.Flags().IntVar(&opts.Height, "height", 480, "target height")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 4, "parallel ingests")
	cmd.Flags().StringVar(&opts.Prefix, "title-prefix", "Seed", "title prefix")

	return cmd
}

// seedImages ingests opts.Count generated images and returns how many
// succeeded. The first failure cancels the remaining work.
func seedImages(ctx context.Context, sys images.System, opts seedOptions, logger *slog.Logger) (int, error) {
	if opts.Count < 1 {
		return 0, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))

	ids := make([]string, opts.Count)
	for i := range opts.Count {
		g.Go(func() error {
			data, err := gradient(256, 192, rand.IntN(360))
			if err != nil {
				return err
			}

			img, err := sys.Ingest(ctx, images.UploadCommand{
				Title:    fmt.Sprintf("%s %03d", opts.Prefix, i+1),
				Width:    opts.Width,
				Height:   opts.Height,
				Filename: fmt.Sprintf("seed-%03d.png", i+1),
				Data:     data,
			})
			if err != nil {
				return fmt.Errorf("seed %d: %w", i+1, err)
			}

			ids[i] = img.ID.String()
			logger.Debug("seeded image", "id", img.ID, "filename", img.Filename)
			return nil
		})
	}

	err := g.Wait()

	n := 0
	for _, id := range ids {
		if id != "" {
			n++
		}
	}
	return n, err
}

// gradient renders a diagonal two-colour gradient rotated around the hue wheel.
func gradient(w, h, hue int) ([]byte, error) {
	from := hueColor(hue)
	to := hueColor(hue + 150)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			t := float64(x+y) / float64(w+h-2)
			img.Set(x, y, color.RGBA{
				R: lerp(from.R, to.R, t),
				G: lerp(from.G, to.G, t),
				B: lerp(from.B, to.B, t),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hueColor(hue int) color.RGBA {
	h := float64(((hue % 360) + 360) % 360) / 60
	x := uint8(255 * (1 - abs(mod2(h)-1)))

	switch int(h) {
	case 0:
		return rgb(255, x, 0)
	case 1:
		return rgb(x, 255, 0)
	case 2:
		return rgb(0, 255, x)
	case 3:
		return rgb(0, x, 255)
	case 4:
		return rgb(x, 0, 255)
	default:
		return rgb(255, 0, x)
	}
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func mod2(f float64) float64 {
	return f - 2*float64(int(f/2))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
