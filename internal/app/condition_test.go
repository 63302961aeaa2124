package app_test

import (
	"testing"

	"reliance-drill-service/internal/app"
	"reliance-drill-service/internal/domain"
)

func TestAssignHarmful(t *testing.T) {
	record := sampleBank()[1]
	answer := app.NewConditionAssigner(sequenceCoin(harmful)).Assign(record)

	want := domain.DisplayedAnswer{
		Condition:   domain.ConditionHarmful,
		Choice:      "C. 48",
		Explanation: "multiply and round up",
		IsCorrect:   false,
	}
	if answer != want {
		t.Fatalf("got %+v, want %+v", answer, want)
	}
}

func TestAssignHelpful(t *testing.T) {
	record := sampleBank()[1]
	answer := app.NewConditionAssigner(sequenceCoin(helpful)).Assign(record)
	if answer.Condition != domain.ConditionHelpful || answer.Choice != "A. 42" || !answer.IsCorrect {
		t.Fatalf("unexpected helpful answer %+v", answer)
	}
}

func TestAssignFlipsPerCall(t *testing.T) {
	assigner := app.NewConditionAssigner(nil)
	record := sampleBank()[0]
	seen := map[domain.Condition]int{}
	for i := 0; i < 200; i++ {
		seen[assigner.Assign(record).Condition]++
	}
	if seen[domain.ConditionHelpful] == 0 || seen[domain.ConditionHarmful] == 0 {
		t.Fatalf("expected both conditions over 200 flips, got %v", seen)
	}
	if len(seen) != 2 {
		t.Fatalf("unexpected conditions %v", seen)
	}
}
