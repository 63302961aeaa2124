package domain

import "fmt"

// Instructions returns the text shown before a session starts.
func Instructions(total, seconds int) string {
	return fmt.Sprintf(`Reliance drills are a safety practice designed to help organisations identify and mitigate human over-reliance on AI assistance. These drills deliberately introduce errors into AI-generated outputs, allowing organisations to evaluate whether human reviewers can detect and address these mistakes.

You will be presented with %d multiple-choice questions. Each question includes an AI-generated response, and your task is to determine whether you trust the AI's answer.

For each question select "Do Not Trust AI Answer" or "Trust AI Answer". If no response is selected within the %d-second timer, the question will be automatically skipped. For a random subset of the questions, the AI answers were generated using an adversarial prompt designed to provoke false or misleading answers.`, total, seconds)
}
