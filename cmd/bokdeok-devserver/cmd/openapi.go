package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/bokdeok/internal/devserver"
	"github.com/donaldgifford/bokdeok/pkg/logger"
)

func openapiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			state, err := devserver.NewState()
			if err != nil {
				return err
			}

			srv := devserver.New(cfg.DevServer, state, logger.Discard())
			// Round-trip through JSON so yaml.v3 sees huma's field names.
			doc, err := srv.OpenAPI().MarshalJSON()
			if err != nil {
				return err
			}
			var tree any
			if err := yaml.Unmarshal(doc, &tree); err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(tree); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
