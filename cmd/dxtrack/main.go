package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"log/slog"

	"github.com/dxtrack/dxtrack/internal/awards"
	"github.com/dxtrack/dxtrack/internal/config"
	"github.com/dxtrack/dxtrack/internal/database"
	"github.com/dxtrack/dxtrack/internal/dxcc"
	"github.com/dxtrack/dxtrack/internal/locator"
	"github.com/dxtrack/dxtrack/internal/logging"
	"github.com/dxtrack/dxtrack/internal/metrics"
	"github.com/dxtrack/dxtrack/internal/models"
)

func main() {
	band := flag.String("band", "20m", "band of the prospective contact")
	mode := flag.String("mode", "CW", "mode of the prospective contact")
	freq := flag.Float64("freq", 0, "frequency in MHz, overrides -band via the band plan")
	asOf := flag.String("asof", "", "resolve against the historical dataset at this date (YYYY-MM-DD)")
	profile := flag.String("profile", "", "station profile to scope award status to")
	metricsAddr := flag.String("metrics-listen", "", "serve Prometheus metrics on this address")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: dxtrack [flags] CALLSIGN [CALLSIGN...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.Database.URL
	db, err := database.Connect(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.Database.MigrationsDir, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	refRepo := database.NewReferenceRepository(db)
	contactRepo := database.NewContactRepository(db)
	profileRepo := database.NewStationProfileRepository(db)

	resolver, err := dxcc.NewResolver(refRepo, logger, cfg.Resolver.CacheSize, collector)
	if err != nil {
		logger.Error("failed to init resolver", "error", err)
		os.Exit(1)
	}
	engine := awards.NewEngine(contactRepo, cfg.Awards.Confirmations, logger, collector)

	var asOfTime time.Time
	if *asOf != "" {
		asOfTime, err = time.Parse("2006-01-02", *asOf)
		if err != nil {
			logger.Error("invalid -asof date", "value", *asOf, "error", err)
			os.Exit(1)
		}
	}

	if *freq != 0 {
		name, err := refRepo.BandForFrequency(ctx, *freq)
		if err != nil {
			logger.Error("band plan lookup failed", "freq", *freq, "error", err)
			os.Exit(1)
		}
		if name == "" {
			logger.Error("frequency outside every amateur band", "freq", *freq)
			os.Exit(1)
		}
		*band = name
	}

	// The home entity and locator come from the station profile; without
	// one, status spans all profiles and no distance is shown.
	myEntityID := 0
	var myPoint *locator.Point
	if *profile != "" {
		p, err := profileRepo.Get(ctx, *profile)
		if err != nil {
			logger.Error("failed to load station profile", "profile", *profile, "error", err)
			os.Exit(1)
		}
		if p == nil {
			logger.Error("station profile not found", "profile", *profile)
			os.Exit(1)
		}
		myEntityID = p.EntityID
		if pt, err := locator.ToPoint(p.Locator); err == nil {
			myPoint = &pt
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Callsign", "Entity", "Cont", "CQ", "ITU", "Status", "Distance", "Bearing"})

	for _, callsign := range flag.Args() {
		var entity models.Entity
		if asOfTime.IsZero() {
			entity = resolver.Resolve(ctx, callsign)
		} else {
			entity = resolver.ResolveHistorical(ctx, callsign, asOfTime)
		}

		status := models.StatusUnknown
		if entity.IsKnown() {
			status = engine.StatusFor(ctx, entity.ID, myEntityID, *band, *mode)
		}

		distance, bearing := "", ""
		if myPoint != nil && entity.IsKnown() {
			target := locator.Point{Latitude: entity.Latitude, Longitude: entity.Longitude}
			distance = fmt.Sprintf("%.0f km", locator.Distance(*myPoint, target))
			bearing = fmt.Sprintf("%.0f°", locator.Bearing(*myPoint, target))
		}

		name := entity.Name
		if !entity.IsKnown() {
			name = "unknown"
		} else if glyph := entity.Flag(); glyph != "" {
			name = glyph + " " + name
		}

		t.AppendRow(table.Row{
			callsign,
			name,
			entity.Continent,
			entity.CQZone,
			entity.ITUZone,
			status.String(),
			distance,
			bearing,
		})
	}

	t.Render()
}
