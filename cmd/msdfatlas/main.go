// Command msdfatlas builds an MSDF font atlas and writes it as a PNG image
// plus a JSON layout file.
//
// Usage:
//
//	msdfatlas -font font.ttf -chars "abc" -out atlas [-size 32] [-range 4] [-dump]
//	msdfatlas -manifest atlas.yaml [-out atlas]
//
// Without -font the Go Regular font is used.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/fontatlas"
	"golang.org/x/image/font/gofont/goregular"
)

// job is one atlas build, assembled from flags or a manifest.
type job struct {
	font    string
	letters string
	out     string
	opts    []fontatlas.Option
	dump    bool
}

func main() {
	var (
		fontPath     = flag.String("font", "", "TrueType/OpenType font file (default: Go Regular)")
		chars        = flag.String("chars", fontatlas.ASCII, "characters to include")
		out          = flag.String("out", "", "output prefix for .png and .json (default: manifest name or \"atlas\")")
		size         = flag.Int("size", 32, "em size in pixels")
		pxRange      = flag.Float64("range", 4, "distance range in pixels")
		padding      = flag.Int("padding", 2, "pixels between glyphs")
		kerning      = flag.Bool("kerning", true, "include the kerning table")
		correction   = flag.Float64("correct", 0, "clash correction threshold in pixels (0 disables)")
		manifestPath = flag.String("manifest", "", "YAML atlas manifest")
		dump         = flag.Bool("dump", false, "print the glyph table to stdout")
		verbose      = flag.Bool("v", false, "log progress to stderr")
	)
	flag.Parse()

	if *verbose {
		fontatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	j := job{
		font:    *fontPath,
		letters: *chars,
		out:     *out,
		dump:    *dump,
		opts: []fontatlas.Option{
			fontatlas.WithEmSize(*size),
			fontatlas.WithPixelRange(*pxRange),
			fontatlas.WithPadding(*padding),
			fontatlas.WithKerning(*kerning),
			fontatlas.WithErrorCorrection(*correction),
		},
	}
	if *manifestPath != "" {
		m, err := readManifest(*manifestPath)
		if err != nil {
			log.Fatalf("Failed to read manifest: %v", err)
		}
		j = j.withManifest(m)
	}
	if j.out == "" {
		j.out = "atlas"
	}

	if err := run(j, os.Stdout); err != nil {
		log.Fatal(err)
	}
	log.Printf("Atlas saved to %s.png and %s.json\n", j.out, j.out)
}

// withManifest overrides the flag settings with the manifest's.
func (j job) withManifest(m *manifest) job {
	if m.Font != "" {
		j.font = m.Font
	}
	if letters, _ := m.letters(); letters != "" {
		j.letters = letters
	}
	if j.out == "" {
		j.out = m.Name
	}
	j.opts = append(j.opts, m.options()...)
	return j
}

func run(j job, stdout io.Writer) error {
	var (
		f   *fontatlas.Font
		err error
	)
	if j.font == "" {
		f, err = fontatlas.LoadBytes(goregular.TTF, j.letters, j.opts...)
	} else {
		f, err = fontatlas.Load(j.font, j.letters, j.opts...)
	}
	if err != nil {
		return fmt.Errorf("build atlas: %w", err)
	}
	defer f.Close()

	if err := writeFile(j.out+".png", f.WritePNG); err != nil {
		return err
	}
	if err := writeFile(j.out+".json", f.WriteJSON); err != nil {
		return err
	}
	if j.dump {
		return f.Debug(stdout)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
