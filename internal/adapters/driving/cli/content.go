package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

var contentQuery []string

var contentCmd = &cobra.Command{
	Use:   "content [resource]",
	Short: "Fetch a document from the content API",
	Long: `Content requests a resource from the content endpoint configured with
sources.content_endpoint_base (or COVIDSTATS_CONTENT_ENDPOINT_BASE) and
prints the JSON body. A trailing slash is added to the resource path.`,
	Args: cobra.ExactArgs(1),
	RunE: runContent,
}

func init() {
	contentCmd.Flags().StringArrayVarP(&contentQuery, "query", "q", nil, "query parameter as name=value (repeatable)")
	rootCmd.AddCommand(contentCmd)
}

func runContent(cmd *cobra.Command, args []string) error {
	if err := requireServices(); err != nil {
		return err
	}
	if svc.Content == nil || !svc.Content.Configured() {
		return fmt.Errorf("content endpoint: %w (set sources.content_endpoint_base)", domain.ErrNotConfigured)
	}

	query := url.Values{}
	for _, kv := range contentQuery {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return fmt.Errorf("%w: query %q must be name=value", domain.ErrInvalidInput, kv)
		}
		query.Add(name, value)
	}

	body, err := svc.Content.Get(cmd.Context(), args[0], query)
	if err != nil {
		return err
	}
	return writeJSON(cmd, body)
}
