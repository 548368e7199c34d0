package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/undertone/internal/image"
	"github.com/jmylchreest/undertone/internal/parallel"
	"github.com/jmylchreest/undertone/pkg/classify"
	"github.com/jmylchreest/undertone/pkg/season"
	"github.com/jmylchreest/undertone/pkg/tone"
)

// classifyOptions holds the flags of the classify command.
type classifyOptions struct {
	k              int
	iterations     int
	workers        int
	calibration    string
	region         string
	maxDimension   int
	maxSamples     int
	keepBackground bool
	format         *enumValue
	preview        *enumValue
}

// Report is the classification of one image.
type Report struct {
	ID     string          `json:"id"`
	Path   string          `json:"path"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Region image.Region    `json:"region"`
	Result classify.Result `json:"result"`
}

func newClassifyCmd(a *app) *cobra.Command {
	opts := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify <image|directory>...",
		Short: "Classify the undertone and season of images",
		Long: `Classify samples each image, removes plain backdrop pixels, clusters the rest
and reports the undertone, the best matching season and twelve-tone, and an
overall confidence for the dominant colour.

Directories are scanned (non-recursively) for supported images. Images are
classified concurrently; reports are printed in argument order.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # Classify a portrait crop
  undertone classify face.jpg

  # Sample only the centre of the image with the medium skin calibration
  undertone classify --region center --calibration skin-medium face.jpg

  # Classify every image in a directory as JSON
  undertone classify --format json ./swatches`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClassify(cmd, args, opts)
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&opts.k, "clusters", "k", a.cfg.K, "number of k-means clusters")
	fs.IntVar(&opts.iterations, "iterations", a.cfg.Iterations, "maximum k-means iterations")
	fs.IntVar(&opts.workers, "workers", a.cfg.Workers, "worker goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&opts.calibration, "calibration", a.cfg.Calibration, "population calibration profile (see 'undertone tones --calibrations')")
	fs.StringVarP(&opts.region, "region", "r", string(image.RegionFull), "image region to sample ("+joinRegions()+")")
	fs.IntVar(&opts.maxDimension, "max-dimension", a.cfg.MaxDimension, "downscale images so neither side exceeds this (0 = off)")
	fs.IntVar(&opts.maxSamples, "max-samples", a.cfg.MaxSamples, "maximum pixels sampled per image (0 = all)")
	fs.BoolVar(&opts.keepBackground, "keep-background", false, "do not filter white, black and grey backdrop pixels")
	opts.format = addFormatFlag(fs)
	opts.preview = addPreviewFlag(fs)

	return cmd
}

func (a *app) runClassify(cmd *cobra.Command, args []string, opts *classifyOptions) error {
	if opts.k < 1 {
		return fmt.Errorf("clusters must be > 0, got %d", opts.k)
	}
	if opts.iterations < 1 {
		return fmt.Errorf("iterations must be > 0, got %d", opts.iterations)
	}
	if opts.workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", opts.workers)
	}

	cal, err := tone.ParseCalibration(opts.calibration)
	if err != nil {
		return err
	}
	region, err := image.ParseRegion(opts.region)
	if err != nil {
		return err
	}

	paths, err := image.ResolveImagePaths(args)
	if err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	a.logger.Debug("resolved images", "count", len(paths), "calibration", cal.Name, "region", region)

	classifier := classify.New(classify.Options{
		K:              opts.k,
		Iterations:     opts.iterations,
		Workers:        opts.workers,
		Calibration:    &cal,
		KeepBackground: opts.keepBackground,
		Logger:         a.logger,
	})

	sampler := image.NewSampler(opts.maxDimension, opts.maxSamples)
	sampler.Region = region

	reports := make([]Report, len(paths))
	errs := make([]error, len(paths))
	loader := image.NewFileLoader()

	pool := parallel.Start(min(opts.workers, len(paths)))
	for i, path := range paths {
		pool.Do(func() {
			reports[i], errs[i] = a.classifyImage(loader, sampler, classifier, path)
		})
	}
	pool.Wait(true)

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.format.String() == formatJSON {
		return writeJSON(out, reports)
	}

	showPreview := previewMode(opts.preview.String()).enabled(out)
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(out)
		}
		writeReport(out, r, showPreview)
	}
	return nil
}

func (a *app) classifyImage(loader image.Loader, sampler *image.Sampler, c *classify.Classifier, path string) (Report, error) {
	logger := a.logger.With("path", path)

	img, err := loader.Load(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	pixels, err := sampler.Sample(img)
	if err != nil {
		return Report{}, fmt.Errorf("failed to sample %s: %w", path, err)
	}
	logger.Debug("image sampled", "pixels", len(pixels))

	result := c.Classify(pixels)
	if result.Degraded {
		logger.Warn("every sampled pixel looked like background; classified the unfiltered sample")
	}

	return Report{
		ID:     uuid.NewString(),
		Path:   path,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Region: sampler.Region,
		Result: result,
	}, nil
}

// writeJSON writes a single report as an object and several as an array.
func writeJSON(w io.Writer, reports []Report) error {
	var v any = reports
	if len(reports) == 1 {
		v = reports[0]
	}
	return writeIndentedJSON(w, v)
}

func writeReport(w io.Writer, r Report, preview bool) {
	res := r.Result
	fmt.Fprintf(w, "%s  %dx%d  region %s  id %s\n", r.Path, r.Width, r.Height, r.Region, r.ID)
	fmt.Fprintf(w, "  samples      %d (%.1f%% background, %d analysed)\n", res.SampleCount, res.BackgroundRatio, res.AnalysedCount)

	if res.TwelveTone == nil {
		fmt.Fprintf(w, "  tone         %s (no usable pixels)\n", res.Tone)
		fmt.Fprintf(w, "  confidence   %.1f\n", res.Confidence)
		return
	}

	dominant := fmt.Sprintf("%s  %s  %s", res.Hex, res.DominantColor, res.DominantLab)
	if preview {
		dominant = swatch(res.DominantColor, swatchWidth) + "  " + dominant
	}
	fmt.Fprintf(w, "  dominant     %s\n", dominant)
	fmt.Fprintf(w, "  tone         %s (%.1f%%, warm ratio %.1f, calibration %s)\n",
		res.Tone, res.ToneConfidence, res.WarmRatio, res.Calibration)
	fmt.Fprintf(w, "  season       %s (%.1f, %s)\n", res.BestSeason, res.SeasonMatch.Get(res.BestSeason), res.Grade)
	fmt.Fprintf(w, "  scores       %s\n", formatScores(res.SeasonMatch))
	fmt.Fprintf(w, "  twelve-tone  %s (distance %.2f, confidence %.1f)\n",
		res.TwelveTone.Label, res.TwelveTone.Distance, res.TwelveTone.Confidence)
	fmt.Fprintf(w, "  confidence   %.1f (homogeneity %.2f, spread %.2f)\n", res.Confidence, res.Homogeneity, res.Spread)

	clusters := make([]string, len(res.Clusters))
	for i, c := range res.Clusters {
		label := fmt.Sprintf("%s %.0f%% %s", c.Hex, c.Share*100, c.Tone)
		if preview {
			label = swatch(c.Color, 2) + " " + label
		}
		clusters[i] = label
	}
	fmt.Fprintf(w, "  clusters     %s\n", strings.Join(clusters, "  "))

	if res.Degraded {
		fmt.Fprintln(w, "  note         every pixel looked like background; confidence halved")
	}
}

func formatScores(s season.Scores) string {
	parts := make([]string, 0, 4)
	for _, name := range season.AllSeasons() {
		parts = append(parts, fmt.Sprintf("%s %.1f", name, s.Get(name)))
	}
	return strings.Join(parts, "  ")
}

func joinRegions() string {
	names := make([]string, 0, len(image.Regions()))
	for _, r := range image.Regions() {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}
