package app

import (
	"math/rand"

	"reliance-drill-service/internal/domain"
	"reliance-drill-service/internal/textnorm"
)

// Coin returns true for the helpful condition.
type Coin func() bool

// FairCoin flips an unbiased coin on every call.
func FairCoin() bool {
	return rand.Intn(2) == 0
}

// ConditionAssigner picks which precomputed answer a question is shown with.
type ConditionAssigner struct {
	coin Coin
}

func NewConditionAssigner(coin Coin) *ConditionAssigner {
	if coin == nil {
		coin = FairCoin
	}
	return &ConditionAssigner{coin: coin}
}

// Assign flips the coin once and returns the normalized answer for that condition.
func (a *ConditionAssigner) Assign(record domain.QuestionRecord) domain.DisplayedAnswer {
	condition := domain.ConditionHarmful
	label, explanation, correct := record.HarmfulAnswer, record.HarmfulExplanation, record.HarmfulCorrect
	if a.coin() {
		condition = domain.ConditionHelpful
		label, explanation, correct = record.HelpfulAnswer, record.HelpfulExplanation, record.HelpfulCorrect
	}

	choice, rest := textnorm.BuildChoiceAndExplanation(label, explanation)
	return domain.DisplayedAnswer{
		Condition:   condition,
		Choice:      textnorm.CapitalizeAfterPeriods(choice),
		Explanation: textnorm.CapitalizeAfterPeriods(rest),
		IsCorrect:   correct,
	}
}
