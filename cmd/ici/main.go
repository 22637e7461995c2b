package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pixelglade/ici"
	"github.com/pixelglade/ici/jasc"
	"github.com/urfave/cli/v2"
)

const defaultDB = "ici.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

// Animated files conventionally use the .ica extension, static ones .ici.
func isAnimated(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".ica")
}

func readWrapper(file string) (ici.Wrapper, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return ici.Wrapper{}, err
	}
	if isAnimated(file) {
		a, err := ici.DecodeAnimated(bytes.NewReader(b))
		if err != nil {
			return ici.Wrapper{}, err
		}
		return ici.WrapAnimated(a), nil
	}
	m, err := ici.Decode(bytes.NewReader(b))
	if err != nil {
		return ici.Wrapper{}, err
	}
	return ici.Wrap(m), nil
}

func writeWrapper(file string, w ici.Wrapper) error {
	buf := new(bytes.Buffer)
	if a, ok := w.Animated(); ok {
		if err := ici.EncodeAnimated(buf, a); err != nil {
			return err
		}
	} else if m, ok := w.Static(); ok {
		if err := ici.Encode(buf, m); err != nil {
			return err
		}
	}
	return ioutil.WriteFile(file, buf.Bytes(), 0644)
}

func paletteSummary(p ici.Palette) string {
	switch p.Kind() {
	case ici.PaletteID:
		return fmt.Sprintf("id %d", p.ID())
	case ici.PaletteName:
		return fmt.Sprintf("name %q", p.Name())
	case ici.PaletteColors:
		return fmt.Sprintf("%d colors", len(p.Colors()))
	}
	return "none"
}

func main() {
	app := cli.NewApp()

	app.Name = "ici"
	app.Usage = "ICI indexed-color image utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"ICI_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to palette database",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Show image dimensions, frames and palette",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()
				b, err := ioutil.ReadFile(file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if isAnimated(file) {
					cfg, err := ici.DecodeAnimatedConfig(bytes.NewReader(b))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					fmt.Printf("%s: animated %dx%d, %s frames @ %gs, palette %s, %s\n",
						file, cfg.Width, cfg.Height,
						humanize.Comma(int64(cfg.FrameCount)), cfg.FrameDuration,
						paletteSummary(cfg.Palette), humanize.Bytes(uint64(len(b))))
					return nil
				}

				cfg, err := ici.DecodeConfig(bytes.NewReader(b))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Printf("%s: static %dx%d, palette %s, %s\n",
					file, cfg.Width, cfg.Height,
					paletteSummary(cfg.Palette), humanize.Bytes(uint64(len(b))))
				return nil
			},
		},
		{
			Name:      "flip",
			Usage:     "Mirror an image",
			ArgsUsage: "IN OUT",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "vertical, y",
					Usage: "mirror top to bottom instead of left to right",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				w, err := readWrapper(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if c.Bool("vertical") {
					w = w.FlipVertical()
				} else {
					w = w.FlipHorizontal()
				}
				if err := writeWrapper(c.Args().Get(1), w); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "rotate",
			Usage:     "Rotate an image by quarter turns",
			ArgsUsage: "IN OUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "turns, t",
					Value: 1,
					Usage: "number of quarter turns (1-3)",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				w, err := readWrapper(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				switch c.Int("turns") {
				case 1:
					w = w.Rotate90()
				case 2:
					w = w.Rotate180()
				case 3:
					w = w.Rotate270()
				default:
					return cli.NewExitError("turns must be 1-3", 1)
				}
				if err := writeWrapper(c.Args().Get(1), w); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
		{
			Name:  "palette",
			Usage: "Convert palettes to and from JASC text files",
			Subcommands: []*cli.Command{
				{
					Name:      "export",
					Usage:     "Write an image's palette as a JASC file",
					ArgsUsage: "IMAGE OUT",
					Action: func(c *cli.Context) error {
						if c.NArg() < 2 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						w, err := readWrapper(c.Args().Get(0))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						buf := new(bytes.Buffer)
						if err := jasc.Encode(buf, w.Colors()); err != nil {
							return cli.NewExitError(err, 1)
						}
						if err := ioutil.WriteFile(c.Args().Get(1), buf.Bytes(), 0644); err != nil {
							return cli.NewExitError(err, 1)
						}
						return nil
					},
				},
				{
					Name:      "import",
					Usage:     "Store a JASC palette file in the database",
					ArgsUsage: "NAME FILE",
					Action: func(c *cli.Context) error {
						if c.NArg() < 2 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						b, err := ioutil.ReadFile(c.Args().Get(1))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						colors, err := jasc.Decode(bytes.NewReader(b))
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						db, err := ici.NewPaletteDB(c.String("db"))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						id, err := db.Put(c.Args().Get(0), colors)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						fmt.Printf("stored %q as id %d\n", c.Args().Get(0), id)
						return nil
					},
				},
			},
		},
		{
			Name:      "resolve",
			Usage:     "Apply a stored palette to an image that references one",
			ArgsUsage: "IN OUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := log.New(ioutil.Discard, "", 0)
				if c.Bool("verbose") {
					logger.SetOutput(os.Stderr)
				}

				w, err := readWrapper(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				db, err := ici.NewPaletteDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				colors, err := db.Resolve(w.Palette())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if colors == nil {
					return cli.NewExitError("image carries no palette reference", 1)
				}
				logger.Printf("resolved %s to %d colors", paletteSummary(w.Palette()), len(colors))

				if err := w.SetColors(colors); err != nil {
					return cli.NewExitError(err, 1)
				}
				if err := writeWrapper(c.Args().Get(1), w); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
