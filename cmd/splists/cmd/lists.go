package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"splists/api"
)

const listFields = `
	Id,Title,Description,Hidden,ItemCount,BaseTemplate,
	Created,LastItemModifiedDate
`

func listsCmd() *cobra.Command {
	var hidden bool

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List all lists on the site",
		RunE: func(c *cobra.Command, _ []string) error {
			sp, err := newSP()
			if err != nil {
				return err
			}

			lists := sp.Web().Lists().
				Conf(&api.RequestConfig{Context: c.Context()}).
				Select(listFields).
				OrderBy("Title", true)
			if !hidden {
				lists = lists.Filter("Hidden eq false")
			}

			resp, err := lists.Get()
			if err != nil {
				return err
			}
			infos, err := resp.Data()
			if err != nil {
				return err
			}

			for _, info := range infos {
				fmt.Printf("%-38s  %-30s  template=%d  items=%d\n",
					info.ID, info.Title, info.BaseTemplate, info.ItemCount)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden lists")
	return cmd
}

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <title>",
		Short: "Show one list's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			sp, err := newSP()
			if err != nil {
				return err
			}

			resp, err := listByRef(c.Context(), sp, args[0]).Get()
			if err != nil {
				return err
			}
			return printJSON(resp.Normalized())
		},
	}
	return cmd
}

func addCmd() *cobra.Command {
	var (
		description  string
		template     int
		contentTypes bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			sp, err := newSP()
			if err != nil {
				return err
			}

			result, err := sp.Web().Lists().
				Conf(&api.RequestConfig{Context: c.Context()}).
				Add(args[0], &api.ListAddOptions{
					Description:        description,
					Template:           template,
					EnableContentTypes: contentTypes,
				})
			if err != nil {
				return err
			}
			return printJSON(result.Data.Normalized())
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "list description")
	cmd.Flags().IntVar(&template, "template", 100, "base template id (100 generic, 101 document library)")
	cmd.Flags().BoolVar(&contentTypes, "content-types", false, "enable content types")
	return cmd
}

func ensureCmd() *cobra.Command {
	var (
		description string
		template    int
	)

	cmd := &cobra.Command{
		Use:   "ensure <title>",
		Short: "Get a list, creating it when missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			sp, err := newSP()
			if err != nil {
				return err
			}

			result, err := sp.Web().Lists().
				Conf(&api.RequestConfig{Context: c.Context()}).
				Ensure(args[0], &api.ListAddOptions{
					Description: description,
					Template:    template,
				})
			if err != nil {
				return err
			}

			if result.Created {
				fmt.Printf("created %q\n", args[0])
			} else {
				fmt.Printf("%q already exists\n", args[0])
			}
			return printJSON(result.Data.Normalized())
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "list description")
	cmd.Flags().IntVar(&template, "template", 100, "base template id")
	return cmd
}

// listByRef resolves a list binding from a title or GUID argument.
func listByRef(ctx context.Context, sp *api.SP, ref string) *api.List {
	lists := sp.Web().Lists().Conf(&api.RequestConfig{Context: ctx})
	if isListGUID(ref) {
		return lists.GetByID(ref)
	}
	return lists.GetByTitle(ref)
}
