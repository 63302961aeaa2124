package app_test

import (
	"reflect"
	"testing"

	"reliance-drill-service/internal/app"
	"reliance-drill-service/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		verdict domain.Verdict
		correct bool
		want    domain.Category
	}{
		{domain.VerdictNoResponse, true, domain.CategoryUnanswered},
		{domain.VerdictNoResponse, false, domain.CategoryUnanswered},
		{domain.VerdictDoNotTrust, false, domain.CategoryCorrectRejection},
		{domain.VerdictDoNotTrust, true, domain.CategoryUnderReliance},
		{domain.VerdictTrust, false, domain.CategoryOverReliance},
		{domain.VerdictTrust, true, domain.CategoryAppropriateTrust},
	}
	for _, tc := range cases {
		got := app.Classify(domain.ResponseRecord{Verdict: tc.verdict, DisplayedAnswerCorrect: tc.correct})
		if got != tc.want {
			t.Fatalf("Classify(%s, %v) = %s, want %s", tc.verdict, tc.correct, got, tc.want)
		}
	}
}

func TestBuildReport(t *testing.T) {
	responses := []domain.ResponseRecord{
		{QuestionNumber: 1, Verdict: domain.VerdictNoResponse, Condition: domain.ConditionHelpful, DisplayedAnswerCorrect: true},
		{QuestionNumber: 2, Verdict: domain.VerdictTrust, Condition: domain.ConditionHarmful, DisplayedAnswerCorrect: false,
			Question: "What is 7 x 6?", DisplayedChoice: "C. 48", CorrectAnswer: "A", CorrectAnswerText: "42"},
		{QuestionNumber: 3, Verdict: domain.VerdictDoNotTrust, Condition: domain.ConditionHelpful, DisplayedAnswerCorrect: true},
		{QuestionNumber: 4, Verdict: domain.VerdictDoNotTrust, Condition: domain.ConditionHarmful, DisplayedAnswerCorrect: false},
		{QuestionNumber: 5, Verdict: domain.VerdictTrust, Condition: domain.ConditionHarmful, DisplayedAnswerCorrect: true},
		{QuestionNumber: 6, Verdict: domain.VerdictTrust},
	}

	report := app.BuildReport(responses, 6)
	if report.TotalQuestions != 6 || report.QuestionsAttempted != 5 {
		t.Fatalf("unexpected totals %+v", report)
	}
	if report.TotalDrills != 3 || report.OverRelianceCount != 1 {
		t.Fatalf("expected 3 drills with 1 over-reliance, got %d/%d", report.TotalDrills, report.OverRelianceCount)
	}
	if len(report.Helpful) != 2 {
		t.Fatalf("expected 2 helpful entries, got %d", len(report.Helpful))
	}

	drill := report.Harmful[0]
	if drill.QuestionNumber != 2 || drill.Category != domain.CategoryOverReliance || drill.Color != "#f8d7da" {
		t.Fatalf("unexpected drill entry %+v", drill)
	}
	if drill.VerdictLabel != "Trust AI Answer" || drill.CorrectAnswerLine() != "A. 42" {
		t.Fatalf("unexpected display fields %+v", drill)
	}
	if report.Harmful[1].Category != domain.CategoryCorrectRejection || report.Harmful[2].Category != domain.CategoryAppropriateTrust {
		t.Fatalf("unexpected harmful categories %+v", report.Harmful)
	}
	if report.Helpful[0].Category != domain.CategoryUnanswered || report.Helpful[0].VerdictLabel != "No response" {
		t.Fatalf("unexpected helpful entry %+v", report.Helpful[0])
	}
	if report.Helpful[1].Category != domain.CategoryUnderReliance {
		t.Fatalf("unexpected helpful entry %+v", report.Helpful[1])
	}
}

func TestBuildReportIsDeterministic(t *testing.T) {
	responses := []domain.ResponseRecord{
		{QuestionNumber: 1, Verdict: domain.VerdictTrust, Condition: domain.ConditionHarmful},
		{QuestionNumber: 2, Verdict: domain.VerdictDoNotTrust, Condition: domain.ConditionHelpful, DisplayedAnswerCorrect: true},
	}
	first := app.BuildReport(responses, 2)
	second := app.BuildReport(responses, 2)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical reports, got %+v and %+v", first, second)
	}
	if responses[0].Verdict != domain.VerdictTrust || len(responses) != 2 {
		t.Fatalf("input was modified")
	}
}

func TestOverRelianceNeverExceedsDrills(t *testing.T) {
	verdicts := []domain.Verdict{domain.VerdictTrust, domain.VerdictDoNotTrust, domain.VerdictNoResponse}
	conditions := []domain.Condition{domain.ConditionHarmful, domain.ConditionHelpful, ""}
	var responses []domain.ResponseRecord
	n := 0
	for _, v := range verdicts {
		for _, c := range conditions {
			for _, correct := range []bool{true, false} {
				n++
				responses = append(responses, domain.ResponseRecord{
					QuestionNumber: n, Verdict: v, Condition: c, DisplayedAnswerCorrect: correct,
				})
				report := app.BuildReport(responses, n)
				if report.OverRelianceCount > report.TotalDrills {
					t.Fatalf("over-reliance %d exceeds drills %d", report.OverRelianceCount, report.TotalDrills)
				}
			}
		}
	}

	report := app.BuildReport(responses, n)
	if len(report.Harmful)+len(report.Helpful) != n-6 {
		t.Fatalf("expected condition-less entries excluded, got %d+%d", len(report.Harmful), len(report.Helpful))
	}
}

func TestBuildReportEmpty(t *testing.T) {
	report := app.BuildReport(nil, 0)
	if report.Harmful == nil || report.Helpful == nil {
		t.Fatalf("expected empty, non-nil sections")
	}
	if report.TotalDrills != 0 || report.OverRelianceCount != 0 || report.QuestionsAttempted != 0 {
		t.Fatalf("unexpected totals %+v", report)
	}
}
