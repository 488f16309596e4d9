package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"observation-quiz/internal/config"
	"observation-quiz/internal/logger"
	"observation-quiz/internal/monitoring"
	"observation-quiz/internal/repository"
	"observation-quiz/internal/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "observation_gen",
		Short: "Generate the observation-power counting quiz dataset",
		Long: `Generates 200 counting questions, one SVG scene per question, and the
dataset file that references them. Output is fully determined by the seed:
rerunning replaces the previous images and dataset byte for byte.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}
	root.AddCommand(newVerifyCmd())
	return root
}

// setup loads configuration and initializes the global logger.
func setup() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

func outputs(cfg *config.Config) (*repository.ImageFileAdapter, *repository.DatasetFileAdapter) {
	images := repository.NewImageFileAdapter(cfg.Output.ImageDir)
	dataset := repository.NewDatasetFileAdapter(cfg.Output.DatasetFile, images, cfg.Output.ImageURLPrefix)
	return images, dataset
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Get()

	images, dataset := outputs(cfg)
	var metrics *monitoring.Metrics
	if cfg.Metrics.Textfile != "" {
		metrics = monitoring.NewMetrics()
	}

	batchSvc := service.NewBatchService(images, dataset, metrics, cfg, log)
	summary, err := batchSvc.Generate(cmd.Context())
	if err != nil {
		log.Error("Batch process failed", zap.Error(err))
		return err
	}

	log.Info("Dataset written",
		zap.String("run_id", summary.RunID),
		zap.String("images", images.Dir()),
		zap.String("dataset", dataset.Path()),
	)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
