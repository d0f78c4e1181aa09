package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/willbeason/escapetime/pkg/imageio"
	"github.com/willbeason/escapetime/pkg/prompt"
	"github.com/willbeason/escapetime/pkg/render"
)

const defaultOutput = "fractal.ppm"

type options struct {
	cfg     render.Config
	flags   *render.Flags
	output  string
	verbose bool
}

func mainCmd() *cobra.Command {
	opts := &options{cfg: render.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "escapetime",
		Short: "Render the Julia or Mandelbrot set of z^n + c",
		Long: `Render the Julia or Mandelbrot set of z^n + c to an image file.

Without --mode the fractal mode, n and (for julia) c are asked for on stdin.
The output format follows the file extension: .ppm, .png, .bmp, .tif or .tiff.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, opts)
		},
	}

	opts.flags = opts.cfg.AddFlags(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "image file to write")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log per-row progress")

	return cmd
}

func runCmd(cmd *cobra.Command, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	render.SetLogger(newLogger(cmd.ErrOrStderr(), opts.verbose))

	opts.flags.Apply()
	cfg := opts.cfg

	// Fail before rendering if the image could not be saved anyway.
	if _, err := imageio.FormatFromPath(opts.output); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if !cmd.Flags().Changed("mode") {
		answers, err := prompt.Ask(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		answers.Apply(&cfg.Params)
	}

	r, err := render.New(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Generating the fractal...")

	img, err := r.Render(cmd.Context())
	if err != nil {
		return err
	}

	err = imageio.Save(opts.output, img)
	if err != nil {
		return err
	}

	cfg = r.Config()
	p := message.NewPrinter(language.English)
	p.Fprintf(out, "Done! Wrote %d x %d %s fractal (%d pixels) to %s\n",
		cfg.Width, cfg.Height, cfg.Mode, cfg.Width*cfg.Height, opts.output)

	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
