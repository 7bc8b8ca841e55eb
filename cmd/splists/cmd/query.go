package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"splists/api"
)

func queryCmd() *cobra.Command {
	var (
		camlFile string
		expands  []string
	)

	cmd := &cobra.Command{
		Use:   "query <title-or-guid>",
		Short: "Run a CAML query against a list's items",
		Example: `  # Query with a CAML view from a file
  splists query Docs --caml view.xml

  # Expand lookup fields on the result rows
  splists query Docs --caml view.xml --expand FieldValuesAsText`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			viewXML, err := os.ReadFile(camlFile)
			if err != nil {
				return fmt.Errorf("read caml file: %w", err)
			}

			sp, err := newSP()
			if err != nil {
				return err
			}

			resp, err := listByRef(c.Context(), sp, args[0]).
				GetItemsByCAMLQuery(&api.CamlQuery{ViewXML: string(viewXML)}, expands...)
			if err != nil {
				return err
			}
			return printJSON(resp.Normalized())
		},
	}

	cmd.Flags().StringVar(&camlFile, "caml", "", "file containing the CAML view XML")
	cmd.Flags().StringSliceVar(&expands, "expand", nil, "fields to $expand on the result")
	_ = cmd.MarkFlagRequired("caml")
	return cmd
}

func renderCmd() *cobra.Command {
	var viewFile string

	cmd := &cobra.Command{
		Use:   "render <title-or-guid>",
		Short: "Render list rows for a CAML view",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			viewXML, err := os.ReadFile(viewFile)
			if err != nil {
				return fmt.Errorf("read view file: %w", err)
			}

			sp, err := newSP()
			if err != nil {
				return err
			}

			resp, err := listByRef(c.Context(), sp, args[0]).RenderListData(string(viewXML))
			if err != nil {
				return err
			}
			data, err := resp.Data()
			if err != nil {
				return err
			}
			return printJSON(data)
		},
	}

	cmd.Flags().StringVar(&viewFile, "view", "", "file containing the CAML view XML")
	_ = cmd.MarkFlagRequired("view")
	return cmd
}
