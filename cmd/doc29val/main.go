// cmd/doc29val/main.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// doc29val compares the results of a GRAPE study that was run on the
// generated inputs with the reference results of the Doc 29 validation
// workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/grape-tools/doc29/config"
	"github.com/grape-tools/doc29/log"
	"github.com/grape-tools/doc29/reconcile"
	"github.com/grape-tools/doc29/report"
	"github.com/grape-tools/doc29/util"
	"github.com/grape-tools/doc29/workbook"
)

var (
	dryRun     = flag.Bool("dryrun", false, "compute the report but don't write it")
	cpuprofile = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: doc29val [flags] <workbook-dir> <study.grp> <report-path>\n")
		fmt.Fprintf(os.Stderr, "The report format follows the extension of <report-path>: .txt, .json, or\n"+
			".msgpack, optionally followed by .zst.\nflags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}

	lg := log.New(os.Getenv(config.EnvLogLevel), os.Getenv(config.EnvLogDir))
	defer lg.CatchAndReportCrash()

	if err := run(context.Background(), lg, flag.Arg(0), flag.Arg(1), flag.Arg(2)); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "doc29val: %v\n", err)
		os.Exit(1)
	}
}

// splitDest splits a report path into the destination the storage
// backend is created for and the name of the report within it.
func splitDest(p string) (string, string) {
	if strings.HasPrefix(p, "gs://") || strings.HasPrefix(p, "s3://") {
		dir, name := path.Split(p)
		return strings.TrimSuffix(dir, "/"), name
	}
	dir, name := filepath.Split(p)
	if dir == "" {
		dir = "."
	}
	return dir, name
}

func run(ctx context.Context, lg *log.Logger, wbDir, study, reportPath string) error {
	prof, err := util.StartProfiler(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer prof.Stop()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	lg.Debugf("configuration: %s", cfg.Dump())

	wb, err := workbook.OpenDir(wbDir)
	if err != nil {
		return err
	}
	ref, err := reconcile.ReadReference(wb)
	wb.Close()
	if err != nil {
		return err
	}

	lg.Info("loading study", "path", study)
	res, err := reconcile.LoadStudy(ctx, cfg, study)
	if err != nil {
		return err
	}

	r, err := reconcile.New(cfg, lg)
	if err != nil {
		return err
	}
	rep := r.Reconcile(ref, res)

	dest, name := splitDest(reportPath)
	var sb util.StorageBackend = util.DryRunBackend{}
	if !*dryRun {
		if sb, err = util.MakeStorageBackend(ctx, dest); err != nil {
			return err
		}
	}
	tb := util.NewTrackingBackend(sb)
	defer tb.Close()

	if err := report.Write(tb, name, rep.Tables()); err != nil {
		return err
	}
	tb.ReportStats(lg)

	for _, c := range rep.Cases {
		fmt.Printf("%-8s points RMSE %7.3f dB  grid RMSE %7.3f dB  %d warnings\n", c.ID, c.PointsRMSE, c.GridRMSE,
			len(c.Warnings))
	}
	return nil
}
