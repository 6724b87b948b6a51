package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/simonhull/id3meta"
	"github.com/simonhull/id3meta/internal/config"
	"github.com/simonhull/id3meta/internal/display"
)

func main() {
	var (
		configPath   string
		charset      string
		workers      int
		logLevel     string
		showMetadata bool
		underscores  bool
		translit     bool
		sources      bool
		warnings     bool
		helpEnv      bool
		version      bool
	)
	pflag.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	pflag.StringVar(&charset, "charset", "", "legacy charset for ID3 text (overrides config)")
	pflag.IntVarP(&workers, "workers", "j", 0, "files processed at once (overrides config)")
	pflag.StringVar(&logLevel, "log-level", "", "trace, debug, info, warn or error (overrides config)")
	pflag.BoolVar(&showMetadata, "show-metadata", true, "show tag values instead of names derived from the path")
	pflag.BoolVar(&underscores, "underscores", true, "replace underscores with spaces")
	pflag.BoolVarP(&translit, "transliterate", "t", false, "transliterate Cyrillic to Latin")
	pflag.BoolVar(&sources, "sources", false, "add a column showing where each field came from")
	pflag.BoolVarP(&warnings, "warnings", "w", false, "print warnings after the table")
	pflag.BoolVar(&helpEnv, "help-env", false, "list environment variables and exit")
	pflag.BoolVar(&version, "version", false, "print version and exit")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file|dir>...\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(os.Stderr, "\nOptions:")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if version {
		v := id3meta.GetVersionInfo()
		fmt.Printf("id3meta %s (commit %s, built %s, %s)\n", v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
		return
	}
	if helpEnv {
		usage, err := config.Usage()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(usage)
		return
	}
	if pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flags := pflag.CommandLine
	if flags.Changed("charset") {
		cfg.LegacyCharset = charset
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("show-metadata") {
		cfg.Display.ShowMetadata = showMetadata
	}
	if flags.Changed("underscores") {
		cfg.Display.Underscores = underscores
	}
	if flags.Changed("transliterate") {
		cfg.Display.Transliterate = translit
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	opts, err := cfg.Options()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	opts = append(opts, id3meta.WithLogger(logger))

	paths, err := collect(pflag.Args())
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot list files")
	}
	logger.Debug().Int("files", len(paths)).Int("workers", cfg.WorkerCount()).Msg("reading tracks")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tracks, err := id3meta.ReadTracks(ctx, paths, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("interrupted")
	}

	render(tracks, cfg.DisplayOptions(), sources)

	if warnings {
		for _, t := range tracks {
			for _, w := range t.Warnings {
				fmt.Fprintf(os.Stderr, "%s: %s\n", t.Path, w)
			}
		}
	}
}

// collect expands directories into the audio files below them.
func collect(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// Missing files still get a row; ReadTrack reports the error.
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isAudio(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func isAudio(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".mp2", ".mpga", ".flac", ".m4a", ".m4b", ".ogg", ".opus":
		return true
	}
	return false
}

func render(tracks []id3meta.Track, o display.Options, sources bool) {
	table := tablewriter.NewWriter(os.Stdout)
	header := []string{"#", "Artist", "Album", "Title", "Time"}
	if sources {
		header = append(header, "Source")
	}
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for i, t := range tracks {
		f := display.Fields(t.Path, t.Fields, o)
		row := []string{
			fmt.Sprint(i + 1),
			f.Artist,
			f.Album,
			f.Title,
			display.FormatDuration(t.Duration),
		}
		if sources {
			row = append(row, sourceList(t.Result))
		}
		table.Append(row)
	}
	table.Render()
}

func sourceList(r id3meta.Result) string {
	parts := make([]string, 0, 3)
	for _, f := range []id3meta.Field{id3meta.FieldArtist, id3meta.FieldAlbum, id3meta.FieldTitle} {
		parts = append(parts, fmt.Sprintf("%s=%s", f, r.Source(f)))
	}
	return strings.Join(parts, " ")
}
