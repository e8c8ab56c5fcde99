package cmd

import (
	"context"
	"fmt"
	"fraudGuard/business/graph"
	"fraudGuard/business/rgcn"
	psqlRepo "fraudGuard/internal/repository/postgres"
	"fraudGuard/pkg/config"
	"fraudGuard/pkg/database"
	"fraudGuard/pkg/logger"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	trainConfigPath string
	trainOutput     string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the model on the current database snapshot",
	Long: `Loads users, products, sellers, reviews and orders from postgres, trains on
every seller with a fraud_label (fraud sellers plus an equal sample of normal
ones) and writes the weight file.

Examples:
  trainer train
  trainer train --config hyperparams.yaml --out rgcn_seller_fraud.json`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&trainConfigPath, "config", "", "YAML file with dims and train sections")
	trainCmd.Flags().StringVarP(&trainOutput, "out", "o", "", "weight file to write (defaults to MODEL_WEIGHTS_PATH)")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadTrainer()
	if err != nil {
		return err
	}
	hp, err := LoadHyperparams(trainConfigPath)
	if err != nil {
		return err
	}

	out := trainOutput
	if out == "" {
		out = cfg.Model.WeightsPath
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return err
	}
	snapshot, err := psqlRepo.NewGraphRepository(db).LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	report, err := Train(ctx, snapshot, hp, out)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "trained %d epochs on %d sellers: loss %.4f, accuracy %.4f\nwrote %s\n",
		report.Epochs, report.MaskSize, report.FinalLoss, report.FinalAccuracy, out)
	return nil
}

// Train assembles the snapshot, fits a fresh model and saves it to out.
func Train(ctx context.Context, snapshot *graph.Snapshot, hp Hyperparams, out string) (rgcn.TrainReport, error) {
	g, err := graph.Assemble(snapshot.Input)
	if err != nil {
		return rgcn.TrainReport{}, err
	}
	labels, err := snapshot.NodeLabels(g)
	if err != nil {
		return rgcn.TrainReport{}, err
	}

	rng := rand.New(rand.NewSource(hp.Train.Seed))
	start, end := g.SellerRange()
	mask, err := rgcn.BalancedMask(labels, start, end, rng)
	if err != nil {
		return rgcn.TrainReport{}, err
	}

	model, err := rgcn.NewModel(hp.Dims, rng)
	if err != nil {
		return rgcn.TrainReport{}, err
	}

	logger.Info("training started",
		"nodes", g.NumNodes(),
		"edges", len(g.Edges),
		"epochs", hp.Train.Epochs,
	)
	report, err := model.Train(ctx, g, labels, mask, hp.Train)
	if err != nil {
		return report, err
	}

	if err := model.SaveFile(out); err != nil {
		return report, err
	}
	logger.Info("weights saved", "path", out, "final_loss", report.FinalLoss)
	return report, nil
}
