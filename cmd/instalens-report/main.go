package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"instalens/internal/adapters/ingest/instaexport"
	"instalens/internal/platform/logger"
	"instalens/internal/services/analyze"
)

func main() {
	_ = godotenv.Load()
	logger.Init(logger.FromEnv())
	l := logger.Get()

	var (
		dir    = flag.String("dir", "", "path to an unpacked export directory")
		zip    = flag.String("zip", "", "path to an export zip archive")
		pretty = flag.Bool("pretty", false, "indent the JSON output")
	)
	flag.Parse()

	if (*dir == "") == (*zip == "") {
		fmt.Fprintln(os.Stderr, "usage: instalens-report -dir <export-dir> | -zip <export.zip> [-pretty]")
		os.Exit(2)
	}

	ctx := context.Background()

	var (
		docs []instaexport.Document
		err  error
	)
	if *dir != "" {
		docs, err = instaexport.ReadDir(ctx, *dir)
	} else {
		docs, err = instaexport.ReadZip(ctx, *zip)
	}
	if err != nil {
		l.Fatal().Err(err).Msg("reading export failed")
	}

	snap, err := analyze.New(analyze.Config{}).Run(ctx, docs)
	if err != nil {
		l.Fatal().Err(err).Msg("analysis failed")
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(snap); err != nil {
		l.Fatal().Err(err).Msg("encoding report failed")
	}
}
