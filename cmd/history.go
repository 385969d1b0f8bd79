package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/promptline/internal/ui/styles"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear stored prompt history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored entries, oldest first",
	Example: `  promptline history list
  promptline history list --limit 20
  promptline history list --json | jq -r '.text'`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored entry",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var (
	historyLimit int
	historyJSON  bool
	historyYes   bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyClearCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show only the newest N entries (0 = all)")
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "print one JSON object per line")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "do not ask for confirmation")
}

type historyRecord struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if cfg.History.Path == "" {
		return fmt.Errorf("history.path is not set; nothing is stored")
	}
	hist, err := openHistory(cfg.History, "")
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	entries, err := hist.repo.List(historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		enc := json.NewEncoder(out)
		for _, e := range entries {
			if err := enc.Encode(historyRecord{
				ID:        e.ID,
				SessionID: e.SessionID,
				Text:      e.Text,
				CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}); err != nil {
				return err
			}
		}
		return nil
	}

	for _, e := range entries {
		// Continuation lines of multi-line entries are indented under the text.
		text := strings.ReplaceAll(e.Text, "\n", "\n"+strings.Repeat(" ", 26))
		_, _ = fmt.Fprintf(out, "%5d  %s  %s\n", e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), text)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if cfg.History.Path == "" {
		return fmt.Errorf("history.path is not set; nothing is stored")
	}
	hist, err := openHistory(cfg.History, "")
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	entries, err := hist.repo.List(0)
	if err != nil {
		return err
	}
	if !historyYes {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Delete %s from %s? [y/N] ", styles.FormatEntryCount(len(entries)), cfg.History.Path)
		var answer string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := hist.repo.Clear(); err != nil {
		return err
	}
	// Deleted pages keep their text until the file is rebuilt.
	if _, err := hist.db.Connection().Exec("VACUUM"); err != nil {
		return fmt.Errorf("compacting history: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", styles.FormatEntryCount(len(entries)))
	return nil
}
