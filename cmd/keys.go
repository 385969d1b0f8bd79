package cmd

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/zjrosen/promptline/internal/keys"
	"github.com/zjrosen/promptline/internal/log"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show which prompt action each key press maps to",
	Long: `Opens a bare terminal screen and prints, for every key you press, the
action the prompt would take. Useful when a terminal reports ctrl+arrow or
backspace differently than expected. Press Esc or ctrl+c to leave; the
session is printed when the screen closes.`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

// keyReport is one classified key press.
type keyReport struct {
	Key    string
	Action keys.Action
}

func (r keyReport) String() string {
	if r.Action.Kind == keys.ActionInsert {
		return fmt.Sprintf("%-16s %s %q", r.Key, r.Action.Kind, r.Action.Text)
	}
	return fmt.Sprintf("%-16s %s", r.Key, r.Action.Kind)
}

func runKeys(cmd *cobra.Command, _ []string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	screen.EnablePaste()

	reports := runKeyTester(screen, cfg.Prompt.Multiline)
	screen.Fini()

	out := cmd.OutOrStdout()
	for _, r := range reports {
		_, _ = fmt.Fprintln(out, r)
	}
	return nil
}

// runKeyTester classifies key events from screen until Esc, ctrl+c, or the
// screen is finalized.
func runKeyTester(screen tcell.Screen, multiline bool) []keyReport {
	var (
		reports []keyReport
		pasting bool
	)
	drawKeyReports(screen, reports)

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return reports
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventPaste:
			pasting = ev.Start()
		case *tcell.EventKey:
			input, kev := keys.FromTcell(ev)
			kev.Paste = pasting
			action := keys.Classify(input, kev, keys.Options{Multiline: multiline})
			log.Debug(log.CatInput, "Key tested", "key", ev.Name(), "action", action.Kind)

			reports = append(reports, keyReport{Key: ev.Name(), Action: action})
			if action.Kind == keys.ActionCancel || action.Kind == keys.ActionEscape {
				return reports
			}
		}
		drawKeyReports(screen, reports)
	}
}

// drawKeyReports shows a header and the newest reports that fit.
func drawKeyReports(screen tcell.Screen, reports []keyReport) {
	screen.Clear()
	_, height := screen.Size()

	drawLine(screen, 0, "Press keys to see their prompt action. Esc or ctrl+c quits.", tcell.StyleDefault.Bold(true))
	rows := height - 2
	if rows < 0 {
		rows = 0
	}
	if len(reports) > rows {
		reports = reports[len(reports)-rows:]
	}
	for i, r := range reports {
		drawLine(screen, i+2, r.String(), tcell.StyleDefault)
	}
	screen.Show()
}

func drawLine(screen tcell.Screen, y int, text string, style tcell.Style) {
	width, _ := screen.Size()
	x := 0
	for _, r := range strings.ToValidUTF8(text, "") {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
}
