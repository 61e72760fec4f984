// Command dsview is an interactive terminal viewer for delimiter-
// separated-value files. Usage:
//
//	dsview <filename> [--config <path>] [-d <delim>] [--headerless] [--benchmark]
//
// Exit 0 on success, 1 on any init failure.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"

	"github.com/grailbio/dsview/internal/bench"
	"github.com/grailbio/dsview/internal/columnwidth"
	"github.com/grailbio/dsview/internal/config"
	"github.com/grailbio/dsview/internal/datasource"
	"github.com/grailbio/dsview/internal/dsvlog"
	"github.com/grailbio/dsview/internal/ingest"
	"github.com/grailbio/dsview/internal/router"
	"github.com/grailbio/dsview/internal/term"
	"github.com/grailbio/dsview/internal/view"
	"github.com/grailbio/dsview/internal/viewmanager"
)

var (
	configFlag     = flag.String("config", "", "path to a dsview config file")
	delimFlag      = flag.String("d", "", "override delimiter detection with a literal one-char delimiter")
	headerlessFlag = flag.Bool("headerless", false, "treat the first line as data, not a header")
	benchmarkFlag  = flag.Bool("benchmark", false, "open and parse the file, print stage timings, and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <filename> [--config <path>] [-d <delim>] [--headerless] [--benchmark]\n", os.Args[0])
		flag.PrintDefaults()
	}
	shutdown := grail.Init()
	defer shutdown()

	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := args[0]

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			log.Printf("dsview: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	var overrideDelim byte
	if *delimFlag != "" {
		overrideDelim = (*delimFlag)[0]
	}

	if *benchmarkFlag {
		res, err := bench.Run(path, overrideDelim, *headerlessFlag, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dsview: %v\n", err)
			os.Exit(1)
		}
		bench.Print(os.Stdout, res)
		return
	}

	closeLog, err := dsvlog.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dsview: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	data, err := ingest.Open(path, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dsview: %v\n", err)
		os.Exit(1)
	}
	defer data.Close()

	parsed := ingest.Scan(data, overrideDelim, *headerlessFlag, cfg)

	wcfg := columnwidth.Config{
		SampleSize:     cfg.ColumnAnalysisSampleLines,
		MinColumnWidth: cfg.MinColumnWidth,
		MaxColumnWidth: cfg.MaxColumnWidth,
		MaxCols:        cfg.MaxCols,
		Encoding:       data.Encoding,
	}
	src := datasource.NewFileSource(data, parsed, wcfg)

	mainView := view.NewMain("View 1 (Main)", src)
	mgr := viewmanager.New(mainView)
	state := router.NewState(mgr)

	run(state, cfg)
}

// run is the single-threaded, event-driven cooperative loop: block on
// the next key event, dispatch, mutate the current view, re-render only
// when NeedsRedraw is set. No real Screen backend is wired here; a real
// build would pass a term.Screen implementation in place of nil.
func run(state *router.State, cfg config.Config) {
	var scr term.Screen
	if scr == nil {
		dsvlog.Infof("dsview: no terminal backend configured; exiting after init")
		return
	}
	for {
		ev, err := scr.PollKey()
		if err != nil {
			dsvlog.Warnf("dsview: PollKey: %v", err)
			return
		}
		cols := currentColumnWidths(state)
		_, action := router.Dispatch(state, ev, cols, scr.Width(), 1)
		if action == router.Quit {
			return
		}
		if state.NeedsRedraw {
			// Rendering itself is delegated to the out-of-scope term
			// backend; dsview only needs to clear the flag here.
			state.NeedsRedraw = false
		}
	}
}

func currentColumnWidths(state *router.State) []int {
	v := state.Views.Current()
	if v == nil || v.Source == nil {
		return nil
	}
	n := v.Source.ColCount()
	cols := make([]int, n)
	for c := 0; c < n; c++ {
		cols[c] = v.Source.GetColumnWidth(c)
	}
	return cols
}
