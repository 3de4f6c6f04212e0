package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/esimov/iconbadge"
	"github.com/esimov/iconbadge/utils"
	"golang.org/x/term"
)

const helpBanner = `
╻┏━╸┏━┓┏┓╻┏┓ ┏━┓╺┳┓┏━╸┏━╸
┃┃  ┃ ┃┃┗┫┣┻┓┣━┫ ┃┃┃╺┓┣╸
╹┗━╸┗━┛╹ ╹┗━┛╹ ╹╺┻┛┗━┛┗━╸

Vector icon badge renderer.
    Version: %s

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var defaults = iconbadge.DefaultConfig()

var (
	// Flags
	configPath  = flag.String("config", "", "TOML config file")
	manifest    = flag.String("manifest", defaults.Manifest, "Manifest enumerating the icons to render")
	destination = flag.String("out", "", "Destination directory (batch) or file (single icon, - for stdout)")
	source      = flag.String("source", defaults.Source, "Outline source: url template with {name} or directory")
	iconName    = flag.String("icon", "", "Render a single icon by name")
	fillColor   = flag.String("color", iconbadge.DefaultFillColor, "Badge color of the single icon")
	size        = flag.Int("size", defaults.Size, "Output image size in pixels")
	scale       = flag.Float64("scale", defaults.Scale, "Icon scale relative to the image size")
	border      = flag.Float64("border", defaults.Border, "Border width in pixels (0 derives it from the size)")
	supersample = flag.Int("ss", defaults.Supersample, "Supersampling factor")
	density     = flag.Float64("density", defaults.Density, "Points sampled per outline unit")
	filter      = flag.String("filter", defaults.Filter, "Resample filter: lanczos, catmullrom, mitchell, linear, box, gaussian")
	subpaths    = flag.String("subpaths", defaults.Subpaths, "Sub-path detection: explicit or heuristic")
	workers     = flag.Int("conc", defaults.Workers, "Number of icons to render concurrently")
	debug       = flag.Bool("debug", false, "Log render diagnostics")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	isTerm := term.IsTerminal(int(os.Stderr.Fd()))
	utils.NoColor = !isTerm

	if *debug {
		iconbadge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}

	src, err := iconbadge.NewSource(cfg.Source)
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	// The cache lives as long as the run: each outline is fetched at most once.
	cache := iconbadge.NewOutlineCache(src)

	proc, err := cfg.Processor(cache)
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := time.Now()
	if *iconName != "" {
		err = renderSingle(ctx, proc, cfg)
	} else {
		err = renderBatch(ctx, proc, cfg, isTerm)
	}
	if err != nil {
		stop()
		log.Fatal(utils.DecorateText(fmt.Sprintf("\n%v", err), utils.ErrorMessage))
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// loadConfig merges the built-in defaults, the config file and the explicitly set flags, in this order.
func loadConfig() (iconbadge.Config, error) {
	cfg := defaults
	if *configPath != "" {
		if err := iconbadge.LoadConfig(*configPath, &cfg); err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "manifest":
			cfg.Manifest = *manifest
		case "out":
			cfg.Output = *destination
		case "source":
			cfg.Source = *source
		case "size":
			cfg.Size = *size
		case "scale":
			cfg.Scale = *scale
		case "border":
			cfg.Border = *border
		case "ss":
			cfg.Supersample = *supersample
		case "density":
			cfg.Density = *density
		case "filter":
			cfg.Filter = *filter
		case "subpaths":
			cfg.Subpaths = *subpaths
		case "conc":
			cfg.Workers = *workers
		}
	})
	return cfg, nil
}

// renderSingle renders the icon given by the -icon flag into a file or to stdout.
func renderSingle(ctx context.Context, proc *iconbadge.Processor, cfg iconbadge.Config) error {
	fill, err := utils.ParseColor(*fillColor)
	if err != nil {
		return err
	}

	out := *destination
	if out == "" {
		out = *iconName + ".png"
	}

	req := iconbadge.RenderRequest{
		Name:   *iconName,
		Fill:   fill,
		Size:   cfg.Size,
		Scale:  cfg.Scale,
		Border: cfg.Border,
	}

	// Render first, so that nothing is written when the icon cannot be rendered.
	img, err := proc.Render(ctx, req)
	if err != nil {
		return fmt.Errorf("error rendering the icon: %w", err)
	}

	var dst io.Writer
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("unable to create the destination file: %v", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}()
		dst = f
	}

	if err := iconbadge.Encode(dst, img); err != nil {
		if out != pipeName {
			os.Remove(out)
		}
		return err
	}
	if out != pipeName {
		fmt.Fprintf(os.Stderr, "The icon has been saved as: %s\n", utils.DecorateText(filepath.Base(out), utils.SuccessMessage))
	}
	return nil
}

// renderBatch renders every icon of the manifest.
func renderBatch(ctx context.Context, proc *iconbadge.Processor, cfg iconbadge.Config, isTerm bool) error {
	m, err := iconbadge.LoadManifest(cfg.Manifest)
	if err != nil {
		return err
	}
	jobs, err := m.Jobs()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s rendering %d node icons (%dx%dpx)\n",
		utils.DecorateText("[*]", utils.StatusMessage), len(jobs), cfg.Size, cfg.Size)

	var spinner *utils.Spinner
	if isTerm {
		spinner = utils.NewSpinner(os.Stderr, utils.DecorateText("rendering icons...", utils.DefaultMessage), 80*time.Millisecond)
		spinner.Start()
		defer spinner.Stop()
	}

	var done int
	op := cfg.Ops()
	op.OnResult = func(r iconbadge.Result) {
		done++
		if spinner != nil {
			spinner.Stop()
			spinner.SetMessage(utils.DecorateText(
				fmt.Sprintf("rendering icons... %d/%d", done, len(jobs)), utils.DefaultMessage),
			)
			defer spinner.Start()
		}
		printStatus(r)
	}

	sum, err := proc.Execute(ctx, jobs, op)
	if spinner != nil {
		spinner.Stop()
	}
	fmt.Fprintf(os.Stderr, "%s %d rendered, %d skipped, %d failed\n",
		utils.DecorateText("[+] Done.", utils.SuccessMessage), sum.Rendered, sum.Skipped, sum.Failed)

	if errors.Is(err, context.Canceled) {
		return errors.New("rendering interrupted")
	}
	return err
}

// printStatus displays the outcome of a single icon.
func printStatus(r iconbadge.Result) {
	switch {
	case r.Skipped():
		fmt.Fprintf(os.Stderr, "  %s Skipping %s: %s\n",
			utils.DecorateText("[!]", utils.WarningMessage), r.Job.Node, r.Job.Skip)
	case r.Err != nil:
		fmt.Fprintf(os.Stderr, "  %s Skipping %s: %v\n",
			utils.DecorateText("[!]", utils.ErrorMessage), r.Job.Node, r.Err)
	default:
		fmt.Fprintf(os.Stderr, "  %s %s\n",
			utils.DecorateText("[+]", utils.SuccessMessage), filepath.Base(r.Path))
	}
}
