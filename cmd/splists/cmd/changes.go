package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"splists/api"
	"splists/database"
	"splists/logging"
)

func changesCmd() *cobra.Command {
	var sinceToken string

	cmd := &cobra.Command{
		Use:   "changes <title-or-guid>",
		Short: "Report list changes since the last run",
		Long: "Queries the list change log and prints the new entries. The last\n" +
			"seen change token is stored per list in a local database, so each\n" +
			"run reports only the delta since the previous one.",
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			sp, err := newSP()
			if err != nil {
				return err
			}
			return runChanges(c.Context(), sp, args[0], sinceToken)
		},
	}

	cmd.Flags().StringVar(&sinceToken, "since", "", "explicit change token to start from (overrides the stored one)")
	return cmd
}

// changeEntry is the slice of a change-log entry needed for reporting
// and token tracking.
type changeEntry struct {
	ChangeType  int              `json:"ChangeType"`
	ItemID      int              `json:"ItemId"`
	Time        string           `json:"Time"`
	ChangeToken *api.ChangeToken `json:"ChangeToken"`
}

func runChanges(ctx context.Context, sp *api.SP, ref, sinceToken string) error {
	list := listByRef(ctx, sp, ref)

	// Change tokens are keyed by list GUID, so resolve it first.
	info, err := fetchListInfo(list)
	if err != nil {
		return err
	}

	store, err := database.Open(database.FromEnv(), logging.Default())
	if err != nil {
		return err
	}
	defer store.Close()

	if sinceToken == "" {
		sinceToken, err = store.Get(ctx, info.ID)
		if err != nil {
			return err
		}
	}

	query := &api.ChangeQuery{
		Add:          true,
		Update:       true,
		DeleteObject: true,
		Restore:      true,
		Rename:       true,
		Item:         true,
		List:         true,
	}
	if sinceToken != "" {
		query.ChangeTokenStart = &api.ChangeToken{StringValue: sinceToken}
	}

	resp, err := list.GetChanges(query)
	if err != nil {
		return err
	}

	var entries []changeEntry
	if err := json.Unmarshal(resp.Normalized(), &entries); err != nil {
		return fmt.Errorf("decode changes: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("no changes")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%-24s  type=%-2d  item=%d\n", entry.Time, entry.ChangeType, entry.ItemID)
	}

	// Persist the newest token for the next run
	last := entries[len(entries)-1]
	if last.ChangeToken != nil && last.ChangeToken.StringValue != "" {
		if err := store.Put(ctx, info.ID, last.ChangeToken.StringValue); err != nil {
			return err
		}
	}
	return nil
}

func fetchListInfo(list *api.List) (*api.ListInfo, error) {
	resp, err := list.Select("Id,Title").Get()
	if err != nil {
		return nil, err
	}
	return resp.Data()
}
