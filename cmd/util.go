package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	greenCheck = color.GreenString("✓")
	redCross   = color.RedString("✗")
)

// parseRemote splits a gs://bucket/object reference. The object part
// may be empty (e.g. when listing a whole bucket).
func parseRemote(remote string) (bucketName, object string, err error) {
	u, err := url.Parse(remote)
	if err != nil {
		return "", "", fmt.Errorf("parsing remote '%s': %w", remote, err)
	}
	if u.Scheme != "gs" {
		return "", "", fmt.Errorf("remote '%s' must use the gs:// scheme", remote)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("remote '%s' is missing a bucket name", remote)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

func applyTableFormat(t table.Writer) {
	t.SetStyle(table.StyleLight)
}
