package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/emantzoo/TSA-GR/internal/api"
	"github.com/emantzoo/TSA-GR/internal/engine"
	"github.com/emantzoo/TSA-GR/internal/models"
)

func main() {
	dataDir := flag.String("data", "./data", "directory of TSA table CSV files")
	paramsFile := flag.String("params", "", "country parameters JSON file")
	scenarioFile := flag.String("scenarios", "", "scenario config JSON file (defaults compiled in)")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	params, err := loadParams(*paramsFile)
	if err != nil {
		log.Fatal(err)
	}

	scenarioCfg := engine.DefaultScenarioConfig()
	if *scenarioFile != "" {
		scenarioCfg, err = engine.LoadScenarioConfig(*scenarioFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	// 1. Initialize Echo (starts instantly)
	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// 2. Initialize handler with no report yet.
	// The API is live but returns 503 until the first run completes.
	h := api.NewHandler(nil, engine.NewScenarioEngine(scenarioCfg))
	h.RegisterRoutes(e)

	// 3. Run the first analysis in the background.
	go func() {
		t0 := time.Now()
		if err := runAnalysis(*dataDir, params, h); err != nil {
			log.Printf("BACKGROUND: initial analysis failed: %v", err)
			return
		}
		log.Printf("BACKGROUND: analysis complete in %v. API is fully ready.", time.Since(t0))
	}()

	// 4. Re-run whenever a table file changes.
	go watchWorkbook(*dataDir, params, h)

	// 5. Start server.
	log.Printf("Server ready on %s (analysis running in background...)", *addr)
	e.Logger.Fatal(e.Start(*addr))
}

// runAnalysis loads the workbook, builds the table set and swaps a fresh
// report into the handler.
func runAnalysis(dataDir string, params models.CountryParams, h *api.Handler) error {
	raw, err := engine.LoadWorkbook(dataDir)
	if err != nil {
		return err
	}
	ts, err := engine.BuildTableSet(raw)
	if err != nil {
		return err
	}
	report, err := engine.Run(ts, params)
	if err != nil {
		return err
	}
	h.SetReport(report)
	log.Printf("Analysis run %s ready (%s)", report.RunID, params.CountryName)
	return nil
}

// watchWorkbook re-runs the analysis when the workbook directory
// changes. Events are coalesced over a short window so a multi-file
// save triggers one run.
func watchWorkbook(dataDir string, params models.CountryParams, h *api.Handler) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("workbook watcher: %v", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(dataDir); err != nil {
		log.Printf("workbook watcher: %v", err)
		return
	}

	var pending <-chan time.Time
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				pending = time.After(500 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("workbook watcher: %v", err)
		case <-pending:
			pending = nil
			log.Printf("Workbook changed, re-running analysis...")
			if err := runAnalysis(dataDir, params, h); err != nil {
				log.Printf("reload failed, keeping previous run: %v", err)
			}
		}
	}
}

// loadParams reads country parameters from a JSON file, or returns the
// reference defaults when no file is given.
func loadParams(path string) (models.CountryParams, error) {
	params := models.CountryParams{
		CountryName:     "Country",
		TotalGDP:        200000,
		TotalEmployment: 4000000,
		Population:      10000000,
	}
	if path == "" {
		return params, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return params, err
	}
	if err := json.Unmarshal(data, &params); err != nil {
		return params, err
	}
	if err := engine.ValidateParams(params); err != nil {
		return params, err
	}
	return params, nil
}
