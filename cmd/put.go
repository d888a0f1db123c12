package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var putContentType string

var putCmd = &cobra.Command{
	Use:   "put [local] [remote]",
	Short: "Upload an object",
	Long: `Uploads a local file as an object. The Content-Type is taken from
--content-type, guessed from the file extension otherwise, and falls
back to application/octet-stream.`,
	Example: `  ugcs --service-account-file sa.json put image.png gs://my-bucket/images/image.png
  ugcs --service-account-file sa.json put --content-type text/plain notes gs://my-bucket/notes`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		local, remote := args[0], args[1]

		bucketName, object, err := parseRemote(remote)
		if err != nil {
			return err
		}
		if object == "" {
			return fmt.Errorf("remote '%s' is missing an object path", remote)
		}

		data, err := os.ReadFile(local)
		if err != nil {
			return fmt.Errorf("reading local file '%s': %w", local, err)
		}

		contentType := putContentType
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(local))
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		b, err := f.Bucket(bucketName)
		if err != nil {
			return err
		}

		log.Debug().Msgf("uploading '%s' (%d bytes, %s)", local, len(data), contentType)
		uploaded, err := b.Put(cmd.Context(), object, data, contentType)
		if err != nil {
			return err
		}

		log.Info().Msgf("%s uploaded gs://%s/%s (%s bytes)", greenCheck, bucketName, uploaded.Name, uploaded.Size)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)

	putCmd.Flags().StringVar(&putContentType, "content-type", "",
		"The Content-Type of the uploaded file")
}
