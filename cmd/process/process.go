// Package process implements the article extraction batch command.
package process

import (
	"errors"
	"fmt"

	"github.com/mhalden/closet/internal/config"
	"github.com/mhalden/closet/internal/genimage"
	"github.com/mhalden/closet/internal/service"
	"github.com/mhalden/closet/internal/storage"
	"github.com/spf13/cobra"
)

// Command creates the process command.
func Command() *cobra.Command {
	var (
		article    string
		inputDir   string
		inputFile  string
		outputDir  string
		archiveDir string
		archive    bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Extract a clothing article from source photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.GeminiAPIKey == "" {
				return errors.New("GEMINI_API_KEY is not set")
			}
			if inputDir == "" {
				inputDir = cfg.InputDir
			}
			if outputDir == "" {
				outputDir = cfg.ImagesDir
			}
			if archiveDir == "" {
				archiveDir = cfg.ArchiveDir
			}

			output, err := storage.NewDiskStore(outputDir)
			if err != nil {
				return fmt.Errorf("open output store: %w", err)
			}

			client := genimage.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
			proc := service.NewProcessService(client, output)

			res, err := proc.Run(cmd.Context(), service.ProcessOptions{
				Article:    article,
				InputDir:   inputDir,
				InputFile:  inputFile,
				ArchiveDir: archiveDir,
				Archive:    archive,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "processed %d, saved %d, skipped %d, archived %d\n",
				res.Processed, res.Saved, res.Skipped, res.Archived)
			return nil
		},
	}

	cmd.Flags().StringVarP(&article, "article", "a", "", "clothing article to extract (required)")
	cmd.Flags().StringVar(&inputDir, "input-dir", "", "directory of source photos")
	cmd.Flags().StringVar(&inputFile, "input-file", "", "process a single photo instead of a directory")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for extracted articles")
	cmd.Flags().StringVar(&archiveDir, "archive-dir", "", "directory for processed source photos")
	cmd.Flags().BoolVar(&archive, "archive", false, "move source photos to the archive directory after processing")
	_ = cmd.MarkFlagRequired("article")

	return cmd
}
