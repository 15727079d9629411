package nap

import (
	"math"
	"time"
)

// errorReport builds the report-shaped error variant. The engine never lets a
// validation failure escape as a Go error or panic; HTTP callers turn the
// Error field into a 400 response.
func errorReport(master Record, msg string) ConsistencyReport {
	return ConsistencyReport{
		Error:        msg,
		OverallScore: 0,
		MasterData:   master,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

// GenerateConsistencyReport compares every citation against the master record
// and synthesizes a scored report with per-field verdicts, display diffs and
// prioritized recommendations.
func GenerateConsistencyReport(citations []Citation, master Record) ConsistencyReport {
	if len(citations) == 0 {
		return errorReport(master, "at least one citation is required")
	}
	if master.Name == "" || master.Address == "" || master.Phone == "" {
		return errorReport(master, "master data must include name, address and phone")
	}

	results := make([]CitationReport, 0, len(citations))
	summary := Summary{Total: len(citations)}
	scoreSum := 0

	for i, citation := range citations {
		nameCmp := CompareNames(citation.Name, master.Name, DefaultMatchThreshold)
		addrCmp := CompareAddresses(citation.Address, master.Address, DefaultMatchThreshold)
		phoneCmp := ComparePhones(citation.Phone, master.Phone)

		score := roundMean(nameCmp.Similarity, addrCmp.Similarity, phoneCmp.Similarity)
		status, color := statusFor(score)

		switch status {
		case StatusPerfect:
			summary.Perfect++
		case StatusSimilar:
			summary.Minor++
		default:
			summary.Major++
		}
		scoreSum += score

		results = append(results, CitationReport{
			CitationIndex: i,
			Source:        citation.Source,
			URL:           citation.URL,
			Score:         score,
			Status:        status,
			Color:         color,
			Fields: CitationFields{
				Name: FieldDetail{
					Citation:   citation.Name,
					Master:     master.Name,
					Comparison: nameCmp,
					Diff:       GenerateVisualDiff(citation.Name, master.Name),
				},
				Address: FieldDetail{
					Citation:   citation.Address,
					Master:     master.Address,
					Comparison: addrCmp,
					Diff:       GenerateVisualDiff(citation.Address, master.Address),
				},
				Phone: FieldDetail{
					Citation:   citation.Phone,
					Master:     master.Phone,
					Comparison: phoneCmp,
					Diff:       GenerateVisualDiff(citation.Phone, master.Phone),
				},
			},
		})
	}

	overall := int(math.Round(float64(scoreSum) / float64(len(citations))))

	return ConsistencyReport{
		OverallScore:    overall,
		Summary:         summary,
		Results:         results,
		Recommendations: buildRecommendations(summary),
		MasterData:      master,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

// buildRecommendations picks one recommendation for the worst severity tier
// present, checked in descending priority order.
func buildRecommendations(summary Summary) []Recommendation {
	switch {
	case summary.Major > 0:
		return []Recommendation{{
			Priority: "high",
			Message:  "Major NAP mismatches found across your citations",
			Action:   "Correct the mismatched listings so they match your master business data exactly",
		}}
	case summary.Minor > 0:
		return []Recommendation{{
			Priority: "medium",
			Message:  "Some citations have minor formatting differences",
			Action:   "Standardize name, address and phone formatting across all directories",
		}}
	default:
		return []Recommendation{{
			Priority: "low",
			Message:  "All citations are consistent with your master data",
			Action:   "Keep monitoring your listings for future changes",
		}}
	}
}

func roundMean(values ...int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}
