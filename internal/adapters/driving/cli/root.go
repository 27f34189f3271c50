// Package cli implements the readerelf command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/readerelf/readerelf/internal/adapters/driven/config/file"
	"github.com/readerelf/readerelf/internal/adapters/driven/storage/memory"
	"github.com/readerelf/readerelf/internal/adapters/driven/storage/sqlite"
	"github.com/readerelf/readerelf/internal/core/ports/driving"
	"github.com/readerelf/readerelf/internal/core/services"
	"github.com/readerelf/readerelf/internal/decoders"
	"github.com/readerelf/readerelf/internal/logger"
	"github.com/readerelf/readerelf/internal/normalizer"
	"github.com/readerelf/readerelf/internal/segmenter"
)

// version is set by Execute from the build.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	dataDir   string
	configDir string
)

// Services wired by initServices before any command runs.
var (
	ingestService   driving.Ingestor
	libraryService  driving.LibraryService
	readingService  driving.ReadingService
	decoderRegistry *decoders.Registry
	configStore     *file.ConfigStore
	store           *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "readerelf",
	Short: "Turn books into clean, speakable text",
	Long: `readerelf ingests plain text, HTML and EPUB files, normalizes them
into clean paragraphs, and tracks your reading position so a reading
session can resume where it left off.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRunE: func(*cobra.Command, []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.readerelf/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default ~/.readerelf)")
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// initServices builds the full service graph: config, storage, decoders,
// normalization and segmentation.
func initServices(*cobra.Command, []string) error {
	logger.SetVerbose(verbose)

	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return err
	}
	configStore = cfg

	dir := dataDir
	if dir == "" {
		dir = cfg.GetString("library.data_dir")
	}
	store, err = sqlite.NewStore(dir)
	if err != nil {
		return err
	}
	logger.Debug("using library at %s", store.Path())

	decoderRegistry = decoders.NewRegistry()
	decoders.RegisterDefaults(decoderRegistry)

	segRegistry := segmenter.NewRegistry()
	segmenter.RegisterDefaults(segRegistry)

	segCfg := map[string]any{}
	if max := cfg.GetInt("segmenter.max_segment_length"); max > 0 {
		segCfg["max_segment_length"] = max
	}
	processor, err := segRegistry.Build("paragraph", segCfg)
	if err != nil {
		return err
	}

	library := store.LibraryStore()
	positions := store.PositionStore()

	ingestService = services.NewIngestService(
		decoderRegistry,
		normalizer.New(),
		segmenter.NewPipeline(processor),
		library,
	)
	libraryService = services.NewLibraryService(library, positions)
	readingService = services.NewReadingService(library, positions, memory.NewPositionStore())

	return nil
}
