// Command scroll-sweep drives the page headless: for every window height
// and scroll step it scrolls from top to bottom and checks that each section
// is revealed once and becomes the active theme in document order.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"scroll-scene/internal/app"
	"scroll-scene/internal/content"
)

type scenario struct {
	height int
	step   float64
}

func (s scenario) String() string {
	return fmt.Sprintf("height=%d step=%.0f", s.height, s.step)
}

type result struct {
	scenario
	themes  []string
	reveals []string
	frames  int
	err     error
}

func (r result) ok(want []string) bool {
	return r.err == nil && slices.Equal(r.themes, want) && slices.Equal(r.reveals, want)
}

type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(value string) error {
	for _, f := range strings.Split(value, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return err
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("width", 1280, "window width")
	contentPath := flag.String("content", "", "optional YAML file layered over the built-in content")
	verbose := flag.Bool("v", false, "log component events")
	var heights, steps intList
	flag.Var(&heights, "heights", "window heights to sweep (comma separated, repeatable)")
	flag.Var(&steps, "steps", "wheel steps in pixels (comma separated, repeatable)")
	flag.Parse()

	if len(heights) == 0 {
		heights = intList{480, 600, 800, 1080}
	}
	if len(steps) == 0 {
		steps = intList{40, 120, 400, 100000}
	}

	bundle, err := content.Load(*contentPath)
	if err != nil {
		log.Fatal(err)
	}
	want := bundle.Document().SectionIDs()
	if missing := bundle.MissingThemes(); len(missing) > 0 {
		fmt.Printf("warning: sections without a theme: %s\n", strings.Join(missing, ", "))
	}

	var out io.Writer = io.Discard
	if *verbose {
		out = os.Stderr
	}
	logger := log.New(out, "sweep: ", log.Lmsgprefix)

	var scenarios []scenario
	for _, h := range heights {
		for _, s := range steps {
			scenarios = append(scenarios, scenario{height: h, step: float64(s)})
		}
	}
	fmt.Printf("Sweeping %d scenarios (%d workers), expecting %s\n", len(scenarios), *workers, strings.Join(want, " > "))

	jobs := make(chan scenario)
	results := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < max(1, *workers); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- sweep(bundle, *width, sc, logger)
			}
		}()
	}
	go func() {
		for _, sc := range scenarios {
			jobs <- sc
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []result
	for r := range results {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].height != all[j].height {
			return all[i].height < all[j].height
		}
		return all[i].step < all[j].step
	})

	failed := 0
	for _, r := range all {
		status := "ok"
		if !r.ok(want) {
			status = "FAIL"
			failed++
		}
		fmt.Printf("%-4s %-28s frames=%-4d themes=%s reveals=%s", status, r.scenario, r.frames, strings.Join(r.themes, ">"), strings.Join(r.reveals, ">"))
		if r.err != nil {
			fmt.Printf(" err=%v", r.err)
		}
		fmt.Println()
	}
	if failed > 0 {
		fmt.Printf("%d of %d scenarios failed\n", failed, len(all))
		os.Exit(1)
	}
}

// sweep wheels one controller from the top of the page to the bottom.
func sweep(bundle *content.Bundle, width int, sc scenario, logger *log.Logger) result {
	res := result{scenario: sc}
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = width, sc.height
	ctrl, err := app.NewController(cfg, app.Options{
		Bundle:   bundle,
		Log:      logger,
		OnReveal: func(id string) { res.reveals = append(res.reveals, id) },
		OnTheme:  func(id string) { res.themes = append(res.themes, id) },
	})
	if err != nil {
		res.err = err
		return res
	}
	frame := time.Second / time.Duration(cfg.TPS)
	end := ctrl.Layout().MaxScroll()
	for ctrl.ScrollY() < end {
		ctrl.Wheel(sc.step)
		ctrl.Frame(frame, float64(res.frames)*frame.Seconds())
		res.frames++
	}
	if failures := ctrl.Failures(); len(failures) > 0 {
		res.err = fmt.Errorf("frame failures: %v", failures)
	}
	return res
}
