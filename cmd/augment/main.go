// augment generates augmented variants of images by applying AutoAugment
// policies.
//
//  1. `augment -input photos/ -output out/ -n 4`: writes 4 augmented
//     variants of every image under photos/ into out/.
//  2. `augment -describe`: prints the resolved policy table and exits.
//
// The policy defaults to the canonical CIFAR-10 table; pass -policy to load
// a custom TOML policy file instead. With -seed the whole run is
// reproducible.
package main

import (
	"flag"
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/augment/pkg/autoaugment"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

var (
	flagInput  = flag.String("input", "", "Image file or directory of images to augment.")
	flagOutput = flag.String("output", "", "Directory to write augmented images to. "+
		"Defaults to the directory of the input images.")
	flagN      = flag.Int("n", 4, "Number of augmented variants to generate per input image.")
	flagPolicy = flag.String("policy", "", fmt.Sprintf(
		"TOML policy file. Empty uses the built-in CIFAR-10 policy. Known operations: %s.",
		strings.Join(autoaugment.KnownOps(), ", ")))
	flagSeed = flag.Int64("seed", 0,
		"Random seed, making the whole run reproducible. 0 picks a fresh seed.")
	flagDescribe = flag.Bool("describe", false, "Print the resolved policy table and exit.")
	flagTrace    = flag.Bool("trace", false,
		"Log the trace of every augmentation: which sub-policy was drawn, which steps fired and what they did.")
	flagQuality     = flag.Int("quality", 95, "Quality of saved JPEG images.")
	flagParallelism = flag.Int("parallelism", 0,
		"Number of images augmented in parallel. 0 uses the number of CPUs plus one.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	err := exceptions.TryCatch[error](func() {
		policy := loadPolicy(*flagPolicy)
		if *flagDescribe {
			describePolicy(policy)
			return
		}
		if *flagInput == "" {
			klog.Errorf("Missing -input image file or directory. See 'augment -help'.")
			os.Exit(1)
		}
		if *flagN < 1 {
			klog.Errorf("-n must be at least 1, got %d.", *flagN)
			os.Exit(1)
		}
		run(policy)
	})
	if err != nil {
		klog.Errorf("Error:\n%+v", err)
		os.Exit(1)
	}
}

func loadPolicy(path string) autoaugment.Policy {
	if path == "" {
		return autoaugment.CIFAR10()
	}
	return must.M1(autoaugment.LoadPolicyFile(path))
}

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
	headerRowStyle    = lipgloss.NewStyle().Reverse(true).Padding(0, 2, 0, 2).Align(lipgloss.Center)
	rightAlignedStyle = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
	normalStyle       = lipgloss.NewStyle().Padding(0, 1)
	tableBorderColor  = "#705090"
)

func describePolicy(policy autoaugment.Policy) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Policy (%d sub-policies)", len(policy))))
	table := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tableBorderColor))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 {
				return headerRowStyle
			}
			if col == 0 {
				return rightAlignedStyle
			}
			return normalStyle
		})
	table.Headers("Sub-policy", "Step", "Transform")
	for i, sub := range policy {
		for j, tr := range sub {
			table.Row(fmt.Sprintf("#%d", i), fmt.Sprintf("%d", j+1), tr.String())
		}
	}
	fmt.Println(table.Render())
}

// imageExts are the file extensions imaging can decode and encode.
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".tif": true, ".tiff": true, ".bmp": true,
}

func collectInputs(input string) []string {
	info := must.M1(os.Stat(input))
	if !info.IsDir() {
		return []string{input}
	}
	entries := must.M1(os.ReadDir(input))
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(input, entry.Name()))
	}
	return paths
}

func run(policy autoaugment.Policy) {
	inputs := collectInputs(*flagInput)
	if len(inputs) == 0 {
		klog.Errorf("No images found in %s.", *flagInput)
		os.Exit(1)
	}
	outputDir := *flagOutput
	if outputDir == "" {
		outputDir = filepath.Dir(inputs[0])
	}
	must.M(os.MkdirAll(outputDir, 0755))

	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	parallelism := *flagParallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU() + 1
	}

	total := len(inputs) * *flagN
	pBar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Augmenting"),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionSetTheme(progressbar.ThemeUnicode),
	)
	termOut := termenv.NewOutput(os.Stdout)
	termOut.HideCursor()
	defer termOut.ShowCursor()

	start := time.Now()
	jobs := make(chan int, len(inputs))
	for idx := range inputs {
		jobs <- idx
	}
	close(jobs)

	var wg sync.WaitGroup
	var muBar sync.Mutex
	errChan := make(chan error, parallelism)
	for w := 0; w < parallelism; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := augmentFile(policy, inputs[idx], outputDir, seed, idx); err != nil {
					errChan <- err
					return
				}
				muBar.Lock()
				_ = pBar.Add(*flagN)
				muBar.Unlock()
			}
		}()
	}
	wg.Wait()
	close(errChan)
	for err := range errChan {
		must.M(err)
	}
	_ = pBar.Finish()

	fmt.Printf("\nWrote %s augmented images to %s in %s.\n",
		humanize.Comma(int64(total)), outputDir, time.Since(start).Round(time.Millisecond))
}

// augmentFile writes *flagN augmented variants of the image at path. Each
// variant gets its own random stream derived from the run seed, so results
// do not depend on worker scheduling.
func augmentFile(policy autoaugment.Policy, path, outputDir string, seed int64, fileIdx int) error {
	img, err := imaging.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	n := *flagN
	for variant := 0; variant < n; variant++ {
		rng := rand.New(rand.NewSource(seed + int64(fileIdx)*int64(n) + int64(variant)))
		aug := autoaugment.New(policy).WithRand(rng)

		var out image.Image
		if *flagTrace {
			var trace autoaugment.Trace
			out, trace, err = aug.AugmentWithTrace(img)
			if err == nil {
				klog.Infof("%s variant %d: %s", filepath.Base(path), variant, trace)
			}
		} else {
			out, err = aug.Augment(img)
		}
		if err != nil {
			return errors.WithMessagef(err, "augmenting %s (variant %d)", path, variant)
		}

		target := filepath.Join(outputDir, fmt.Sprintf("%s_aug%02d%s", stem, variant, filepath.Ext(path)))
		if err := imaging.Save(out, target, imaging.JPEGQuality(*flagQuality)); err != nil {
			return errors.Wrapf(err, "saving %s", target)
		}
	}
	return nil
}
