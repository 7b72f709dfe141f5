// bmpview inspects, previews and queries BMP files in the terminal.
//
//	bmpview [flags] info FILE
//	bmpview [flags] view FILE
//	bmpview [flags] query FILE EXPR
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"gopkg.in/yaml.v2"

	"github.com/anas-shakeel/go-bmpdecode/bmp"
	"github.com/anas-shakeel/go-bmpdecode/internal/adjustments"
	"github.com/anas-shakeel/go-bmpdecode/internal/config"
	"github.com/anas-shakeel/go-bmpdecode/internal/filters"
	"github.com/anas-shakeel/go-bmpdecode/internal/query"
	"github.com/anas-shakeel/go-bmpdecode/internal/source"
	"github.com/anas-shakeel/go-bmpdecode/internal/utils"
)

var errUsage = errors.New("usage: bmpview [flags] info|view|query FILE [EXPR]")

func main() {
	log.SetHandler(cli.New(os.Stderr))

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, errUsage)
			os.Exit(2)
		}
		log.WithError(err).Fatal("bmpview")
	}
}

// run parses args, merges flags onto the config file and runs one command.
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("bmpview", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "YAML configuration file")
	verbose := fs.Bool("v", false, "log decoding stages")
	lenient := fs.Bool("lenient", false, "keep what can be decoded from damaged files")
	format := fs.String("format", "", "info output: text or yaml")
	width := fs.Int("width", -1, "fit view output to this many columns (0 = as is)")
	crop := fs.String("crop", "", "crop view output to x,y,w,h")
	filterList := fs.String("filter", "", "comma separated filters: grayscale, luma, invert, red, green, blue")
	brightness := fs.Float64("brightness", 0, "brightness adjustment in percent")
	contrast := fs.Float64("contrast", 0, "contrast adjustment in percent")
	limit := fs.Int("limit", -1, "matches printed by query (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Flags given on the command line win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lenient":
			cfg.Lenient = *lenient
		case "format":
			cfg.Format = *format
		case "width":
			cfg.Width = *width
		case "filter":
			cfg.Filters = splitList(*filterList)
		case "brightness":
			cfg.Brightness = float32(*brightness)
		case "contrast":
			cfg.Contrast = float32(*contrast)
		case "limit":
			cfg.QueryLimit = *limit
		}
	})
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.SetLevel(cfg.Level())

	rest := fs.Args()
	if len(rest) < 2 {
		return errUsage
	}
	cmd, name := rest[0], rest[1]

	b, err := decode(name, &cfg)
	if err != nil {
		return err
	}

	switch cmd {
	case "info":
		return info(out, b, cfg.Format)
	case "view":
		return view(out, b, &cfg, *crop)
	case "query":
		if len(rest) != 3 {
			return errUsage
		}
		return runQuery(out, b, rest[2], cfg.QueryLimit)
	}
	return errUsage
}

// decode opens name (or stdin for "-") and decodes it with the configured policy.
func decode(name string, cfg *config.Config) (*bmp.Bitmap, error) {
	src, err := source.Open(name)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ctx := log.WithFields(log.Fields{"file": src.Name, "compressed": src.Compressed})
	opts := cfg.Options(ctx)

	if !cfg.Lenient {
		return bmp.Decode(src, opts)
	}

	p := bmp.DecodePartial(src, opts)
	if !p.Valid() {
		ctx.WithError(p.Err()).Warn("valid: false, showing what could be decoded")
	}
	return &p.Bitmap, nil
}

// Print the headers and classification of the bitmap
func info(w io.Writer, b *bmp.Bitmap, format string) error {
	if format == "yaml" {
		data, err := yaml.Marshal(b.Metadata())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}

// Print the bitmap in terminal. Use for small images only
func view(w io.Writer, b *bmp.Bitmap, cfg *config.Config, crop string) error {
	var img image.Image = b.NRGBA()

	if crop != "" {
		rect, err := parseCrop(crop)
		if err != nil {
			return err
		}
		img, err = adjustments.Crop(img, rect[0], rect[1], rect[2], rect[3])
		if err != nil {
			return err
		}
	}

	img, err := filters.Pipeline(img, cfg.Filters, cfg.Brightness, cfg.Contrast)
	if err != nil {
		return err
	}

	// Each pixel takes two columns
	if cfg.Width > 0 {
		img = adjustments.FitWidth(img, cfg.Width/2)
	}
	return utils.PrintImage(w, img)
}

// Print the pixels matching expr and how many there were
func runQuery(w io.Writer, b *bmp.Bitmap, expr string, limit int) error {
	q, err := query.Compile(expr)
	if err != nil {
		return err
	}

	matches, total, err := query.Run(b, q, limit)
	if err != nil {
		return err
	}

	for _, m := range matches {
		if m.Index >= 0 {
			fmt.Fprintf(w, "%d,%d\t%s\tindex %d\n", m.X, m.Y, utils.Hex(m.Color), m.Index)
		} else {
			fmt.Fprintf(w, "%d,%d\t%s\n", m.X, m.Y, utils.Hex(m.Color))
		}
	}
	_, err = fmt.Fprintf(w, "%d of %d pixels match %s\n", total, b.Width()*b.Height(), q)
	return err
}

// parseCrop reads "x,y,w,h".
func parseCrop(s string) ([4]int, error) {
	var rect [4]int
	parts := splitList(s)
	if len(parts) != 4 {
		return rect, fmt.Errorf("invalid crop %q: want x,y,w,h", s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return rect, fmt.Errorf("invalid crop %q: %w", s, err)
		}
		rect[i] = n
	}
	return rect, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
