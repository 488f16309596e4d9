package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"observation-quiz/internal/logger"
	"observation-quiz/internal/service"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the written dataset against its images",
		Long: `Reads the dataset file and every image it references, and fails if an
image does not contain exactly the answered number of target shapes, has too
few distractors, or rotates a shape beyond its allowed bound.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			log := logger.Get()

			_, dataset := outputs(cfg)
			report, err := service.NewVerifyService(dataset, log).Verify(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range report.Violations {
				log.Error("Verification failed", zap.String("violation", v.String()))
			}
			if !report.OK() {
				return fmt.Errorf("%d of %d items failed verification", len(report.Violations), report.Items)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "verified %d items\n", report.Items)
			return nil
		},
	}
}
