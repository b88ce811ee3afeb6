// Command candytool is the entry point for the candy dataset toolkit:
// HEIC batch normalization, live classifier preview, dataset sample viewing
// and label auditing.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Wh0FF24/Conveyor-belt/internal/config"
	"github.com/Wh0FF24/Conveyor-belt/internal/display"
	"github.com/Wh0FF24/Conveyor-belt/pkg/audit"
	"github.com/Wh0FF24/Conveyor-belt/pkg/classify"
	"github.com/Wh0FF24/Conveyor-belt/pkg/dataset"
	"github.com/Wh0FF24/Conveyor-belt/pkg/live"
	"github.com/Wh0FF24/Conveyor-belt/pkg/normalizer"
	"github.com/Wh0FF24/Conveyor-belt/pkg/viewer"
)

var (
	flagData    string
	flagConfig  string
	flagVerbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "candytool",
		Short: "Candy image dataset toolkit",
		Long: `Toolkit for the candy classification dataset: converts phone HEIC
photos to sequentially named JPEGs, previews classifier output on a live
camera feed, views dataset samples and audits labels.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if flagVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "dataset root directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newRenameCmd())
	rootCmd.AddCommand(newLiveCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newAuditCmd())

	return rootCmd
}

// loadConfig resolves the effective configuration from the config file and
// the --data override.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.LoadFromFile(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flagData != "" {
		cfg.Dataset.Root = flagData
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newNormalizer(cfg *config.Config, keepOriginals bool, quality int) *normalizer.Normalizer {
	if quality == 0 {
		quality = cfg.Normalizer.JPEGQuality
	}
	return normalizer.NewWithConfig(normalizer.Config{
		Labels:        cfg.Dataset.Labels,
		JPEGQuality:   quality,
		KeepOriginals: keepOriginals || cfg.Normalizer.KeepOriginals,
	})
}

func newNormalizeCmd() *cobra.Command {
	var keepOriginals bool
	var quality int

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Convert HEIC files and rename legacy JPEGs in one run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logrus.Infof("processing files in: %s", cfg.Dataset.Root)

			summary, err := newNormalizer(cfg, keepOriginals, quality).Run(cfg.Dataset.Root)
			if err != nil {
				return err
			}
			display.PrintConvertSummary(summary.Convert, cmd.OutOrStdout())
			display.PrintRenameSummary(summary.Rename, cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepOriginals, "keep-originals", false, "keep HEIC files after conversion")
	cmd.Flags().IntVar(&quality, "quality", 0, "JPEG quality (default from config)")

	return cmd
}

func newConvertCmd() *cobra.Command {
	var keepOriginals bool
	var quality int

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert HEIC files to sequentially named JPEGs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			summary, err := newNormalizer(cfg, keepOriginals, quality).Convert(cfg.Dataset.Root)
			if err != nil {
				return err
			}
			display.PrintConvertSummary(summary, cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepOriginals, "keep-originals", false, "keep HEIC files after conversion")
	cmd.Flags().IntVar(&quality, "quality", 0, "JPEG quality (default from config)")

	return cmd
}

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Fold legacy camera-named JPEGs into the canonical sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			summary, err := newNormalizer(cfg, false, 0).RenameLegacy(cfg.Dataset.Root)
			if err != nil {
				return err
			}
			display.PrintRenameSummary(summary, cmd.OutOrStdout())
			return nil
		},
	}
	return cmd
}

func newLiveCmd() *cobra.Command {
	var modelPath string
	var camera int

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Classify a live camera feed and overlay predictions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if modelPath == "" {
				modelPath = cfg.Live.ModelPath
			}
			cameras := cfg.Live.CameraIndexes
			if camera >= 0 {
				cameras = []int{camera}
			}

			// Model check happens before the camera is touched
			classifier, err := classify.NewDNN(classify.Config{
				ModelPath: modelPath,
				InputSize: cfg.Live.InputSize,
			})
			if err != nil {
				return err
			}
			defer classifier.Close()

			preview := live.NewWithConfig(classifier, live.Config{
				CameraIndexes: cameras,
				SaveDir:       cfg.Live.SaveDir,
			})
			return preview.Run()
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "path to ONNX model (default from config)")
	cmd.Flags().IntVar(&camera, "camera", -1, "camera index (default: try config list)")

	return cmd
}

func newViewCmd() *cobra.Command {
	var maxImages, maxHeight int

	cmd := &cobra.Command{
		Use:   "view",
		Short: "View sample images from each class folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if maxImages == 0 {
				maxImages = cfg.Viewer.MaxImages
			}
			if maxHeight == 0 {
				maxHeight = cfg.Viewer.MaxHeight
			}

			v := viewer.NewWithConfig(viewer.Config{
				MaxImages: maxImages,
				MaxHeight: maxHeight,
			})
			return v.ViewAll(cfg.Dataset.Root, cfg.Dataset.Labels)
		},
	}

	cmd.Flags().IntVar(&maxImages, "max-images", 0, "images shown per class (default from config)")
	cmd.Flags().IntVar(&maxHeight, "max-height", 0, "display height cap in pixels (default from config)")

	return cmd
}

func newAuditCmd() *cobra.Command {
	var url, model string
	var sample int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Spot-check dataset labels with an Ollama vision model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if url == "" {
				url = cfg.Audit.URL
			}
			if model == "" {
				model = cfg.Audit.Model
			}
			if sample == 0 {
				sample = cfg.Audit.SampleSize
			}

			auditor, err := audit.New(audit.Config{
				URL:        url,
				Model:      model,
				Labels:     cfg.Dataset.Labels,
				SampleSize: sample,
			})
			if err != nil {
				return err
			}

			var reports []audit.Report
			for _, class := range dataset.Classes(cfg.Dataset.Root, cfg.Dataset.Labels) {
				report, err := auditor.AuditClass(context.Background(), class)
				if err != nil {
					return err
				}
				reports = append(reports, report)
			}
			display.PrintAuditReports(reports, cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Ollama server URL (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "vision model name (default from config)")
	cmd.Flags().IntVar(&sample, "sample", 0, "files checked per class (default from config)")

	return cmd
}
