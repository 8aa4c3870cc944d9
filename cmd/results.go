package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cogniwise/cogniwise/internal/apperr"
	"github.com/cogniwise/cogniwise/internal/assessment"
	"github.com/cogniwise/cogniwise/internal/ui/components"
	"github.com/cogniwise/cogniwise/internal/ui/theme"
)

const barWidth = 60

var resultsCmd = &cobra.Command{
	Use:   "results <user_id>",
	Short: "Show a subject's Level-1, Level-2 and Level-3 results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := assessment.NewService(st, nil, nil)
		ctx := commandContext(cmd)
		userID := args[0]

		l1, err := svc.Level1Results(ctx, userID)
		if err != nil {
			return err
		}
		fmt.Println(theme.Title.Render("Level 1"))
		if len(l1) == 0 {
			fmt.Println(theme.Hint.Render("  No questionnaire results."))
		}
		for i, r := range l1 {
			if i == limit {
				break
			}
			label := fmt.Sprintf("#%d %s", r.ID, r.Condition)
			fmt.Println(components.NewRiskBar(label, r.RiskScore, barWidth).View() + "  " + theme.Hint.Render(r.RiskLabel))
		}

		l2, err := svc.Level2Results(ctx, userID)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(theme.Title.Render("Level 2"))
		if len(l2) == 0 {
			fmt.Println(theme.Hint.Render("  No game results."))
		}
		for i, r := range l2 {
			if i == limit {
				break
			}
			label := fmt.Sprintf("#%d %s", r.ID, r.Source)
			fmt.Println(components.NewRiskBar(label, r.FinalRiskPercent, barWidth).View())
			domains := make([]string, 0, len(r.DomainScores))
			for d := range r.DomainScores {
				domains = append(domains, d)
			}
			sort.Strings(domains)
			for _, d := range domains {
				fmt.Println("  " + components.NewRiskBar(d, r.DomainScores[d]*100, barWidth-2).View())
			}
		}

		sum, err := svc.Level3Summary(ctx, userID)
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(theme.Title.Render("Level 3"))
		body := theme.RiskColor(sum.RiskScore).Render(sum.Advice.ConditionTitle) + "\n" +
			theme.Body.Render(sum.Advice.ConditionMsg) + "\n\n" +
			theme.Label.Render("Action") + theme.Body.Render(sum.Advice.ImmediateAction)
		if sum.Advice.AdminNotes != nil {
			body += "\n" + theme.Label.Render("Reviewer notes") + theme.Body.Render(*sum.Advice.AdminNotes)
		}
		fmt.Println(theme.Card.Render(body))
		return nil
	},
}

func init() {
	resultsCmd.Flags().IntP("limit", "n", 5, "Number of results to show per level")
}
