package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cogniwise/cogniwise/internal/assessment"
	"github.com/cogniwise/cogniwise/internal/store"
	"github.com/cogniwise/cogniwise/internal/ui/theme"
)

var progressCmd = &cobra.Command{
	Use:   "progress <user_id>",
	Short: "Show a subject's tier progression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		history, _ := cmd.Flags().GetBool("history")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := assessment.NewService(st, nil, nil)
		ctx := commandContext(cmd)

		p, err := svc.Progress(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(renderProgress(p))

		if !history {
			return nil
		}
		events, err := svc.ProgressHistory(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println()
		if len(events) == 0 {
			fmt.Println(theme.Hint.Render("No transitions recorded."))
			return nil
		}
		fmt.Printf("%-6s  %-19s  %-8s  %-18s  %s\n", "Seq", "Timestamp", "Trigger", "Flag", "Condition")
		fmt.Println(strings.Repeat("─", 72))
		for _, e := range events {
			fmt.Printf("%-6d  %-19s  %-8s  %-18s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Trigger,
				e.Flag,
				e.Condition,
			)
		}
		return nil
	},
}

func renderProgress(p *store.ProgressRecord) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Progress for "+p.UserID) + "\n\n")
	row := func(label string, set bool) {
		b.WriteString(theme.Label.Render(label) + theme.Flag(set) + "\n")
	}
	row("Level 1 completed", p.Level1Completed)
	row("Level 2 unlocked", p.Level2Unlocked)
	row("Level 2 completed", p.Level2Completed)
	row("Level 3 unlocked", p.Level3Unlocked)
	b.WriteString(theme.Label.Render("Level 2 conditions") + theme.Body.Render(listOrDash(p.Level2Conditions)) + "\n")
	b.WriteString(theme.Label.Render("Level 3 conditions") + theme.Body.Render(listOrDash(p.Level3Conditions)))
	return theme.Card.Render(b.String())
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func init() {
	progressCmd.Flags().Bool("history", false, "Also list the recorded flag transitions")
}
