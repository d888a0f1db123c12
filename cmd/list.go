package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [remote]",
	Aliases: []string{"ls"},
	Short:   "List objects in a bucket",
	Long: `Lists the objects in a bucket, optionally restricted to names
starting with the object prefix of the remote reference.`,
	Example: `  # List a whole bucket
  ugcs --service-account-file sa.json list gs://my-bucket

  # List objects under a prefix
  ugcs --service-account-file sa.json list gs://my-bucket/releases/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucketName, prefix, err := parseRemote(args[0])
		if err != nil {
			return err
		}

		b, err := f.Bucket(bucketName)
		if err != nil {
			return err
		}

		log.Debug().Msgf("listing objects in bucket '%s' with prefix '%s'", bucketName, prefix)
		result, err := b.List(cmd.Context(), prefix)
		if err != nil {
			return fmt.Errorf("listing objects: %w", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Size", "Content-Type", "Updated"})

		for _, object := range result.Items {
			updated := "n/a"
			if !object.Updated.IsZero() {
				updated = object.Updated.Format(time.RFC3339)
			}

			t.AppendRow(table.Row{
				color.New(color.Bold).Sprint(object.Name),
				object.Size,
				object.ContentType,
				updated,
			})
		}

		applyTableFormat(t)
		t.Render()

		if result.NextPageToken != "" {
			log.Warn().Msg("more objects available, listing is truncated to the first page")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
