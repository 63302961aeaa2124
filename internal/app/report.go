package app

import "reliance-drill-service/internal/domain"

// Classify maps a response onto the reliance taxonomy.
func Classify(r domain.ResponseRecord) domain.Category {
	switch {
	case r.Verdict == domain.VerdictNoResponse:
		return domain.CategoryUnanswered
	case r.Verdict == domain.VerdictDoNotTrust && !r.DisplayedAnswerCorrect:
		return domain.CategoryCorrectRejection
	case r.Verdict == domain.VerdictDoNotTrust:
		return domain.CategoryUnderReliance
	case r.Verdict == domain.VerdictTrust && !r.DisplayedAnswerCorrect:
		return domain.CategoryOverReliance
	default:
		return domain.CategoryAppropriateTrust
	}
}

// BuildReport summarizes the responses of a session. It has no side effects.
func BuildReport(responses []domain.ResponseRecord, totalQuestions int) domain.Report {
	report := domain.Report{
		TotalQuestions: totalQuestions,
		Harmful:        []domain.ReportEntry{},
		Helpful:        []domain.ReportEntry{},
	}

	unanswered := 0
	for _, r := range responses {
		if r.Verdict == domain.VerdictNoResponse {
			unanswered++
		}
		switch r.Condition {
		case domain.ConditionHarmful:
			report.Harmful = append(report.Harmful, entryFor(r))
			if r.Verdict == domain.VerdictTrust && !r.DisplayedAnswerCorrect {
				report.OverRelianceCount++
			}
		case domain.ConditionHelpful:
			report.Helpful = append(report.Helpful, entryFor(r))
		}
	}
	report.QuestionsAttempted = totalQuestions - unanswered
	report.TotalDrills = len(report.Harmful)
	return report
}

func entryFor(r domain.ResponseRecord) domain.ReportEntry {
	category := Classify(r)
	return domain.ReportEntry{
		Category:             category,
		Color:                category.Color(),
		QuestionNumber:       r.QuestionNumber,
		Question:             r.Question,
		DisplayedChoice:      r.DisplayedChoice,
		DisplayedExplanation: r.DisplayedExplanation,
		CorrectAnswer:        r.CorrectAnswer,
		CorrectAnswerText:    r.CorrectAnswerText,
		Verdict:              r.Verdict,
		VerdictLabel:         r.Verdict.Label(),
		Condition:            r.Condition,
	}
}
