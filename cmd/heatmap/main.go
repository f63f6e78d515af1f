// Command heatmap converts location-history exports into heatmap images,
// animated GIFs/videos and GeoJSON density grids.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/fbolton/location-heatmap-go/internal/config"
	"github.com/fbolton/location-heatmap-go/internal/database"
	"github.com/fbolton/location-heatmap-go/internal/geojson"
	"github.com/fbolton/location-heatmap-go/internal/heatmap"
	"github.com/fbolton/location-heatmap-go/internal/models"
	"github.com/fbolton/location-heatmap-go/internal/parser"
	"github.com/fbolton/location-heatmap-go/internal/repository"
	"github.com/fbolton/location-heatmap-go/internal/service"
)

const usage = `Usage: heatmap <command> [flags]

Commands:
  render    render the all-day heatmap PNG for a region
  animate   render per-time-of-day frames and assemble a GIF (and video)
  import    parse an export into the local SQLite cache
  geojson   export semantic location history as GeoJSON density grids

Run 'heatmap <command> -h' for command flags.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(os.Args[2:])
	case "animate":
		err = runAnimate(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "geojson":
		err = runGeoJSON(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

// renderFlags is the flag surface shared by render and animate.
type renderFlags struct {
	fs *flag.FlagSet

	region     string
	x0, x1     int64 // longitude min/max, E7
	y0, y1     int64 // latitude min/max, E7
	scale      int64
	input      string
	db         string
	background string
	settings   string
	out        string
	metric     string
}

func newRenderFlags(name string) *renderFlags {
	f := &renderFlags{fs: flag.NewFlagSet(name, flag.ExitOnError)}
	f.fs.StringVar(&f.region, "region", "", "Region name, used in titles and file names")
	f.fs.Int64Var(&f.x0, "x0", 0, "Min longitude, in E7 format")
	f.fs.Int64Var(&f.x1, "x1", 0, "Max longitude, in E7 format")
	f.fs.Int64Var(&f.y0, "y0", 0, "Min latitude, in E7 format")
	f.fs.Int64Var(&f.y1, "y1", 0, "Max latitude, in E7 format")
	f.fs.Int64Var(&f.scale, "scale", 1000, "Scale factor in E7 units per pixel; 1000 is roughly 10 m per pixel")
	f.fs.StringVar(&f.input, "input", "", "Location export to read (.json Takeout or .gpx track)")
	f.fs.StringVar(&f.db, "db", "", "Read records from this SQLite cache instead of an export file")
	f.fs.StringVar(&f.background, "background", "", "Background map image for the given bounds (PNG or JPEG)")
	f.fs.StringVar(&f.settings, "settings", "", "Optional YAML settings file")
	f.fs.StringVar(&f.out, "out", ".", "Output directory")
	f.fs.StringVar(&f.metric, "metric", string(heatmap.MetricDuration), "Density metric: point_count or duration")
	return f
}

func (f *renderFlags) parse(args []string) (*service.RenderService, []models.LocationRecord, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, nil, err
	}

	region := models.BoundingRegion{
		Name:     f.region,
		MinLatE7: f.y0,
		MaxLatE7: f.y1,
		MinLonE7: f.x0,
		MaxLonE7: f.x1,
	}

	metric := heatmap.Metric(f.metric)
	if metric != heatmap.MetricPointCount && metric != heatmap.MetricDuration {
		return nil, nil, fmt.Errorf("unknown metric %q", f.metric)
	}

	settings, err := config.Load(f.settings)
	if err != nil {
		return nil, nil, err
	}

	if f.background == "" {
		return nil, nil, fmt.Errorf("a background image is required (-background)")
	}

	svc, err := service.NewRenderService(region, f.scale, metric, settings, f.background, f.out)
	if err != nil {
		return nil, nil, err
	}

	records, err := loadRecords(f.input, f.db, region)
	if err != nil {
		return nil, nil, err
	}

	return svc, records, nil
}

// loadRecords reads records from an export file or the SQLite cache.
// Cache reads are pre-filtered to the region; file reads are filtered
// during accumulation.
func loadRecords(input, dbPath string, region models.BoundingRegion) ([]models.LocationRecord, error) {
	switch {
	case input != "":
		log.Printf("[Main] Reading location data from %s...", input)
		if strings.EqualFold(filepath.Ext(input), ".gpx") {
			return parser.ParseGPXFile(input)
		}
		return parser.ParseTakeoutFile(input)
	case dbPath != "":
		db, err := database.Open(dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return repository.NewLocationRepository(db).GetLocations(models.LocationFilter{
			MinLatE7: region.MinLatE7,
			MaxLatE7: region.MaxLatE7,
			MinLonE7: region.MinLonE7,
			MaxLonE7: region.MaxLonE7,
		})
	default:
		return nil, fmt.Errorf("either -input or -db is required")
	}
}

func runRender(args []string) error {
	flags := newRenderFlags("render")
	svc, records, err := flags.parse(args)
	if err != nil {
		return err
	}

	path, _, err := svc.RenderAllDay(records)
	if err != nil {
		return err
	}
	log.Printf("[Main] Heatmap written: %s", path)
	return nil
}

func runAnimate(args []string) error {
	flags := newRenderFlags("animate")
	var video string
	flags.fs.StringVar(&video, "video", "", "Also encode a video to this path (requires ffmpeg)")

	svc, records, err := flags.parse(args)
	if err != nil {
		return err
	}

	gifPath, err := service.NewAnimationService(svc).Run(records, video)
	if err != nil {
		return err
	}
	log.Printf("[Main] Animation written: %s", gifPath)
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	input := fs.String("input", "", "Location export to import (.json Takeout or .gpx track)")
	dbPath := fs.String("db", "locations.db", "SQLite cache path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("-input is required")
	}

	var records []models.LocationRecord
	var err error
	log.Printf("[Main] Reading location data from %s...", *input)
	if strings.EqualFold(filepath.Ext(*input), ".gpx") {
		records, err = parser.ParseGPXFile(*input)
	} else {
		records, err = parser.ParseTakeoutFile(*input)
	}
	if err != nil {
		return err
	}

	db, err := database.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewLocationRepository(db)
	bar := progressbar.Default(int64(len(records)), "Importing")

	const batchSize = 10000
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := repo.InsertBatch(records[start:end]); err != nil {
			return err
		}
		bar.Add(end - start)
	}

	total, err := repo.Count()
	if err != nil {
		return err
	}
	log.Printf("[Main] Imported %d records, cache now holds %d", len(records), total)
	return nil
}

func runGeoJSON(args []string) error {
	fs := flag.NewFlagSet("geojson", flag.ExitOnError)
	input := fs.String("input", "", "Semantic Location History file or directory")
	precision := fs.Int("precision", 3, "Grid precision in decimal degrees (3 is roughly 100 m cells)")
	out := fs.String("out", ".", "Output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("-input is required")
	}
	if *precision < 0 || *precision > 7 {
		return fmt.Errorf("precision must be between 0 and 7, got %d", *precision)
	}

	paths, err := semanticFiles(*input)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no JSON files found under %s", *input)
	}

	var segments []parser.ActivitySegment
	for _, path := range paths {
		log.Printf("[Main] Processing %s", path)
		segs, err := parser.ParseSemanticFile(path)
		if err != nil {
			return err
		}
		segments = append(segments, segs...)
	}

	grids := geojson.BuildGrid(segments, *precision)
	return geojson.Export(grids, *precision, *out)
}

// semanticFiles expands a file or directory argument into the JSON files
// to process.
func semanticFiles(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	var paths []string
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk input directory: %w", err)
	}
	return paths, nil
}
