// cmd/doc29gen/main.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// doc29gen converts the Doc 29 validation workbook, exported as one CSV
// file per sheet, to the input tables and ANP files of a GRAPE study.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grape-tools/doc29/config"
	"github.com/grape-tools/doc29/generate"
	"github.com/grape-tools/doc29/log"
	"github.com/grape-tools/doc29/util"
	"github.com/grape-tools/doc29/workbook"
)

var (
	dryRun     = flag.Bool("dryrun", false, "generate everything but don't write any files")
	cpuprofile = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: doc29gen [flags] <workbook-dir> <output-folder>\n")
		fmt.Fprintf(os.Stderr, "<output-folder> may also be gs://bucket/prefix or s3://bucket/prefix.\nflags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	lg := log.New(os.Getenv(config.EnvLogLevel), os.Getenv(config.EnvLogDir))
	defer lg.CatchAndReportCrash()

	if err := run(context.Background(), lg, flag.Arg(0), flag.Arg(1)); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "doc29gen: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, lg *log.Logger, wbDir, dest string) error {
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
	out, err := generate.New(cfg, lg).Generate(wb)
	wb.Close()
	if err != nil {
		return err
	}

	var sb util.StorageBackend = util.DryRunBackend{}
	if !*dryRun {
		if sb, err = util.MakeStorageBackend(ctx, dest); err != nil {
			return err
		}
	}
	tb := util.NewTrackingBackend(sb)
	defer tb.Close()

	if err := out.Write(ctx, tb); err != nil {
		return err
	}
	tb.ReportStats(lg)

	n, b := tb.Stats()
	fmt.Printf("%s: wrote %d tables (%d bytes)\n", dest, n, b)
	return nil
}
