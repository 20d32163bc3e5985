package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vinothezhumalai/legalmcpserver/internal/models"
	"github.com/vinothezhumalai/legalmcpserver/internal/orchestration"
)

// tierIcon maps tiers onto a compact visual marker for terminal output.
func tierIcon(tier models.Tier) string {
	if tier.AtLeast(models.TierSatisfactory) {
		return "✅"
	}
	if tier == models.TierNeedsImprovement {
		return "⚠️"
	}
	return "❌"
}

// FormatScoreboardReport renders an evaluation report as markdown.
func FormatScoreboardReport(report *orchestration.EvaluationReport) string {
	sb := report.Scoreboard
	var b strings.Builder

	b.WriteString("## Legal Analysis Quality Report\n\n")
	b.WriteString(fmt.Sprintf("**Document:** %s\n\n", sb.DocumentID))
	b.WriteString(fmt.Sprintf("**Overall:** %s %.2f/10 (%s)", tierIcon(sb.OverallTier), sb.OverallScore, sb.OverallTier))
	if report.PercentChangeFromPrevious != 0 {
		b.WriteString(fmt.Sprintf(" | **Change:** %+.1f%%", report.PercentChangeFromPrevious))
	}
	b.WriteString("\n\n")

	if sb.Benchmark != nil {
		b.WriteString(fmt.Sprintf("**Benchmark:** %+.1f%% vs industry average, percentile %d, %s\n\n",
			sb.Benchmark.PercentAboveAverage, sb.Benchmark.Percentile, sb.Benchmark.Standing))
	}

	agg := sb.AggregateMetrics
	b.WriteString(fmt.Sprintf("**Tier counts:** %d excellent, %d good, %d satisfactory, %d needs improvement, %d poor\n\n",
		agg.Excellent, agg.Good, agg.Satisfactory, agg.NeedsImprovement, agg.Poor))

	b.WriteString("### Criterion Scores\n\n")
	b.WriteString("| Criterion | Score | Tier | Weight |\n")
	b.WriteString("|-----------|-------|------|--------|\n")
	writeMetricRows(&b, sb.SummarizationScores)
	writeMetricRows(&b, sb.ClassificationScores)
	b.WriteString("\n")

	writeList(&b, "Strengths", sb.Strengths)
	writeList(&b, "Weaknesses", sb.Weaknesses)
	writeList(&b, "Recommendations", sb.Recommendations)
	writeList(&b, "Confidence Issues", sb.QualityFlags.ConfidenceIssues)

	return b.String()
}

// writeMetricRows emits one table row per metric in stable (sorted) order.
func writeMetricRows(b *strings.Builder, metrics map[models.Criterion]models.MetricScore) {
	criteria := make([]models.Criterion, 0, len(metrics))
	for c := range metrics {
		criteria = append(criteria, c)
	}
	sort.Slice(criteria, func(i, j int) bool { return criteria[i] < criteria[j] })

	for _, c := range criteria {
		m := metrics[c]
		b.WriteString(fmt.Sprintf("| %s | %.1f | %s %s | %.0f%% |\n",
			c, m.Score, tierIcon(m.Tier), m.Tier, m.Weight*100))
	}
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
