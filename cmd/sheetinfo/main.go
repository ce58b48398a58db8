// Command sheetinfo loads sprite sheets and text the way a layer2d program
// would and reports how they land in the texture buckets.
//
//	sheetinfo [-config layer2d.toml] [-v] [-text "Hello"] [-glyphs atlas.png] sheet_32x32x4.png...
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/layer2d"
	"github.com/gogpu/layer2d/bucket"
	"github.com/gogpu/layer2d/render"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		verbose    = flag.Bool("v", false, "log debug output to stderr")
		sample     = flag.String("text", "", "text to lay out with the font")
		fontPath   = flag.String("font", "", "TrueType/OpenType font file (default Go Regular)")
		glyphsOut  = flag.String("glyphs", "", "write the glyph texture to this PNG")
	)
	flag.Parse()

	if *verbose {
		layer2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := layer2d.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = layer2d.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	opts := options{
		sample:   *sample,
		fontPath: *fontPath,
		glyphs:   *glyphsOut,
	}
	if err := run(os.Stdout, cfg, opts, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	sample   string
	fontPath string
	glyphs   string
}

func run(w io.Writer, cfg layer2d.Config, opts options, paths []string) error {
	ctx, err := layer2d.NewContext(cfg, layer2d.WithSystemFonts(nil))
	if err != nil {
		return err
	}
	rec := render.NewRecorder()
	pass := render.New(ctx, rec)
	ctx.SetRenderer(pass)

	sprites, err := ctx.LoadSprites(context.Background(), paths...)
	if err != nil {
		return err
	}
	l := ctx.NewLayer(1024, 768)
	for i, s := range sprites {
		fmt.Fprintf(w, "%s: %dx%d, %d frames, bucket %d (%dpx)\n",
			paths[i], s.Width(), s.Height(), s.Frames(), s.BucketID(), bucket.SizeOf(int(s.BucketID())))
		s.Draw(l, 0, 0, 0, layer2d.White)
	}

	if opts.sample != "" {
		f, err := loadFont(ctx, opts.fontPath)
		if err != nil {
			return err
		}
		width, height := f.Measure(opts.sample, 0)
		fmt.Fprintf(w, "text %q: %.1fx%.1f at %gpx\n", opts.sample, width, height, f.Size())
		if err := f.Write(l, opts.sample, 0, 0); err != nil {
			return err
		}
	}

	if err := l.Draw(); err != nil {
		return err
	}
	for id := bucket.FirstSprite; id < bucket.Count; id++ {
		if b, ok := rec.Bucket(id); ok {
			fmt.Fprintf(w, "bucket %d: %dx%d, %d layers\n", id, b.Desc.Width, b.Desc.Height, b.Desc.Depth)
		}
	}
	st := pass.Stats()
	gs := ctx.Glyphs().Stats()
	fmt.Fprintf(w, "glyphs: %d cached, %d uploaded\n", gs.Entries, gs.Uploads)
	fmt.Fprintf(w, "draw calls: %d\n", st.DrawCalls)

	if opts.glyphs != "" && rec.Glyphs() != nil {
		if err := writePNG(opts.glyphs, rec); err != nil {
			return err
		}
	}
	return nil
}

func loadFont(ctx *layer2d.Context, path string) (*layer2d.Font, error) {
	if path != "" {
		return ctx.FontFromFile(path)
	}
	return ctx.FontFromBytes(goregular.TTF)
}

func writePNG(path string, rec *render.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, rec.Glyphs()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
