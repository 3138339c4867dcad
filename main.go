package main

import (
	"cmp"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strconv"
	"time"

	"maxrects2d/rectpack"
)

const (
	VERSION = "0.2.0"
)

const (
	exitOK       = 0
	exitUnplaced = 1
	exitError    = 2
)

var errUsage = errors.New("usage")

type options struct {
	ConfigPath   string
	ManifestPath string
	InputDir     string
	OutputDir    string
	UnpackPath   string
	Verbose      bool
	Config       Config
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: maxrects2d [flags] binWidth binHeight w_0 h_0 w_1 h_1 ... w_n h_n\n")
	fmt.Fprintf(w, "       where binWidth and binHeight define the size of the bin.\n")
	fmt.Fprintf(w, "       w_i is the width of the i'th rectangle to pack, and h_i the height.\n")
	fmt.Fprintf(w, "Example: maxrects2d 256 256 30 20 50 20 10 80 90 20\n\n")
	fmt.Fprintf(w, "On error 1 will be returned. On success the return value is 0 and the x/y coordinates\n")
	fmt.Fprintf(w, "of each input rect will be printed to screen. The order of the output is the same as in the input.\n\n")
	fmt.Fprintf(w, "       maxrects2d [flags] -manifest items.yaml\n")
	fmt.Fprintf(w, "       maxrects2d [flags] -input sprites/ -output out/\n")
	fmt.Fprintf(w, "       maxrects2d -unpack out/atlas.json -output sprites/\n\n")
}

// parseFlags parses the command line. Values from -config are applied over the
// defaults, then every flag given explicitly is applied over those.
func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	def := defaultConfig()
	fs := flag.NewFlagSet("maxrects2d", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		usage(fs.Output())
		fs.PrintDefaults()
	}

	var opts options
	fs.StringVar(&opts.ConfigPath, "config", "", "TOML file with default options")
	fs.StringVar(&opts.ManifestPath, "manifest", "", "YAML file describing the bin and the items to pack")
	fs.StringVar(&opts.InputDir, "input", "", "directory of PNG sprites to pack into an atlas")
	fs.StringVar(&opts.OutputDir, "output", "output", "output directory for atlas and unpack modes")
	fs.StringVar(&opts.UnpackPath, "unpack", "", "atlas JSON to unpack into sprites")
	fs.BoolVar(&opts.Verbose, "v", false, "log progress and timings")

	width := fs.Int("width", def.Width, "bin width")
	height := fs.Int("height", def.Height, "bin height")
	heuristic := fs.String("heuristic", def.Heuristic.String(), "placement rule (BestShortSideFit, BestLongSideFit, BestAreaFit, BottomLeftRule, ContactPointRule)")
	rotate := fs.Bool("rotate", def.Rotate, "allow 90 degree rotation")
	padding := fs.Int("padding", def.Padding, "space kept to the right of and below every rectangle")
	online := fs.Bool("online", def.Online, "place rectangles one by one in input order instead of best-first")
	sortName := fs.String("sort", def.Sort, "pre-sort order (none, area, perimeter, diff, minside, maxside, id)")
	trim := fs.Bool("trim", def.Trim, "trim transparent borders of sprites")
	threshold := fs.Int("threshold", def.Threshold, "alpha at or below which a pixel counts as transparent")
	pot := fs.Bool("pot", def.PowerOfTwo, "round the atlas size up to powers of two")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}

	cfg := def
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = loadConfig(opts.ConfigPath, def); err != nil {
			return options{}, nil, err
		}
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "heuristic":
			h, err := rectpack.ParseHeuristic(*heuristic)
			if err != nil {
				flagErr = err
				return
			}
			cfg.Heuristic = h
		case "rotate":
			cfg.Rotate = *rotate
		case "padding":
			cfg.Padding = *padding
		case "online":
			cfg.Online = *online
		case "sort":
			cfg.Sort = *sortName
		case "trim":
			cfg.Trim = *trim
		case "threshold":
			cfg.Threshold = *threshold
		case "pot":
			cfg.PowerOfTwo = *pot
		}
	})
	if flagErr != nil {
		return options{}, nil, flagErr
	}
	opts.Config = cfg
	return opts, fs.Args(), nil
}

// parsePositional reads "binWidth binHeight w0 h0 w1 h1 ...". Item ids are the
// zero based input positions.
func parsePositional(args []string) (rectpack.Size, []rectpack.Item, error) {
	if len(args) < 4 || len(args)%2 != 0 {
		return rectpack.Size{}, nil, errUsage
	}
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return rectpack.Size{}, nil, fmt.Errorf("argument %d: %q is not an integer", i+1, arg)
		}
		values[i] = v
	}
	bin := rectpack.NewSize(values[0], values[1])
	items := make([]rectpack.Item, 0, (len(values)-2)/2)
	for i := 2; i < len(values); i += 2 {
		items = append(items, rectpack.NewItem((i-2)/2, values[i], values[i+1]))
	}
	return bin, items, nil
}

// packItems places items with packer, online or best-first depending on its
// configuration.
func packItems(packer *rectpack.Packer, items []rectpack.Item) error {
	if _, err := packer.Insert(items...); err != nil {
		return err
	}
	if packer.Online {
		return nil
	}
	_, err := packer.Pack()
	return err
}

func sortedByID(rects []rectpack.Rect) []rectpack.Rect {
	sorted := slices.Clone(rects)
	slices.SortFunc(sorted, func(a, b rectpack.Rect) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

func runItems(cfg Config, items []rectpack.Item, withIDs bool, stdout io.Writer, debug *log.Logger) (int, error) {
	if err := cfg.validate(); err != nil {
		return exitError, err
	}
	packer, err := cfg.newPacker()
	if err != nil {
		return exitError, err
	}
	start := time.Now()
	if err := packItems(packer, items); err != nil {
		return exitError, err
	}
	debug.Printf("packed %d of %d rects into %dx%d with %s in %v", len(packer.Rects()), len(items), cfg.Width, cfg.Height, cfg.Heuristic, time.Since(start))
	debug.Printf("occupancy: %.2f%%", packer.Used(false)*100)

	if unplaced := packer.Unpacked(); len(unplaced) > 0 {
		fmt.Fprintf(stdout, "failed to place %d rects.\n", len(unplaced))
		for _, item := range unplaced {
			debug.Printf("unplaced: id %d (%dx%d)", item.ID, item.Width, item.Height)
		}
		return exitUnplaced, nil
	}
	for _, rect := range sortedByID(packer.Rects()) {
		if withIDs {
			fmt.Fprintf(stdout, "%d %d %d\n", rect.ID, rect.X, rect.Y)
		} else {
			fmt.Fprintf(stdout, "%d %d\n", rect.X, rect.Y)
		}
	}
	return exitOK, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "maxrects2d: ", 0)
	opts, rest, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		logger.Println(err)
		return exitError
	}
	debug := log.New(io.Discard, "maxrects2d: ", log.Lmicroseconds)
	if opts.Verbose {
		debug.SetOutput(stderr)
	}

	code := exitOK
	switch {
	case opts.UnpackPath != "":
		err = unpackAtlas(opts.UnpackPath, opts.OutputDir, debug)
	case opts.InputDir != "":
		code, err = runAtlas(opts.Config, opts.InputDir, opts.OutputDir, debug)
	case opts.ManifestPath != "":
		var m *Manifest
		if m, err = loadManifest(opts.ManifestPath); err == nil {
			cfg := opts.Config
			m.apply(&cfg)
			code, err = runItems(cfg, m.Items, true, stdout, debug)
		}
	default:
		var bin rectpack.Size
		var items []rectpack.Item
		bin, items, err = parsePositional(rest)
		if errors.Is(err, errUsage) {
			usage(stdout)
			return exitOK
		}
		if err == nil {
			cfg := opts.Config
			cfg.Width, cfg.Height = bin.Width, bin.Height
			code, err = runItems(cfg, items, false, stdout, debug)
		}
	}
	if err != nil {
		logger.Println(err)
		if code != exitUnplaced {
			code = exitError
		}
	}
	return code
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
