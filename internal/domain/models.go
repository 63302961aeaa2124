package domain

import (
	"bytes"
	"encoding/json"
)

// OptionLabels lists the answer labels in the order they appear in a question.
var OptionLabels = []string{"A", "B", "C", "D"}

// Condition identifies which precomputed AI answer was shown for a question.
type Condition string

const (
	ConditionHelpful Condition = "helpful"
	ConditionHarmful Condition = "harmful"
)

// Verdict is the user's judgement of the displayed AI answer.
type Verdict string

const (
	VerdictTrust      Verdict = "trust"
	VerdictDoNotTrust Verdict = "do_not_trust"
	VerdictNoResponse Verdict = "no_response"
)

// Valid reports whether v can be submitted by a user. NoResponse is reserved for timeouts.
func (v Verdict) Valid() bool {
	return v == VerdictTrust || v == VerdictDoNotTrust
}

// Label is the human-readable form shown in reports.
func (v Verdict) Label() string {
	switch v {
	case VerdictTrust:
		return "Trust AI Answer"
	case VerdictDoNotTrust:
		return "Do Not Trust AI Answer"
	case VerdictNoResponse:
		return "No response"
	}
	return string(v)
}

// Phase is the lifecycle stage of a drill session.
type Phase string

const (
	PhaseNotStarted     Phase = "not_started"
	PhaseAwaitingAnswer Phase = "awaiting_answer"
	PhaseFinished       Phase = "finished"
)

// QuestionRecord is one row of the precomputed question bank.
type QuestionRecord struct {
	FullQuestion       string
	HelpfulAnswer      string
	HelpfulExplanation string
	HelpfulCorrect     bool
	HarmfulAnswer      string
	HarmfulExplanation string
	HarmfulCorrect     bool
	CorrectAnswer      string
}

// questionRecordJSON mirrors the column names of the exported bank spreadsheet.
type questionRecordJSON struct {
	FullQuestion       string  `json:"Full Question"`
	HelpfulAnswer      string  `json:"Helpful Answer"`
	HelpfulExplanation string  `json:"Helpful Explanation"`
	HelpfulCorrect     yesFlag `json:"Helpful Correct?"`
	HarmfulAnswer      string  `json:"Harmful Answer"`
	HarmfulExplanation string  `json:"Harmful Explanation"`
	HarmfulCorrect     yesFlag `json:"Harmful Correct?"`
	CorrectAnswer      string  `json:"Correct Answer"`
}

func (r *QuestionRecord) UnmarshalJSON(data []byte) error {
	var raw questionRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = QuestionRecord{
		FullQuestion:       raw.FullQuestion,
		HelpfulAnswer:      raw.HelpfulAnswer,
		HelpfulExplanation: raw.HelpfulExplanation,
		HelpfulCorrect:     bool(raw.HelpfulCorrect),
		HarmfulAnswer:      raw.HarmfulAnswer,
		HarmfulExplanation: raw.HarmfulExplanation,
		HarmfulCorrect:     bool(raw.HarmfulCorrect),
		CorrectAnswer:      raw.CorrectAnswer,
	}
	return nil
}

func (r QuestionRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(questionRecordJSON{
		FullQuestion:       r.FullQuestion,
		HelpfulAnswer:      r.HelpfulAnswer,
		HelpfulExplanation: r.HelpfulExplanation,
		HelpfulCorrect:     yesFlag(r.HelpfulCorrect),
		HarmfulAnswer:      r.HarmfulAnswer,
		HarmfulExplanation: r.HarmfulExplanation,
		HarmfulCorrect:     yesFlag(r.HarmfulCorrect),
		CorrectAnswer:      r.CorrectAnswer,
	})
}

// yesFlag is true only for the literal string "YES"; any other value, including
// non-string JSON, decodes as false.
type yesFlag bool

func (f *yesFlag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*f = false
		return nil
	}
	*f = yesFlag(s == "YES")
	return nil
}

func (f yesFlag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte(`"YES"`), nil
	}
	return []byte(`"NO"`), nil
}

// DecodeBank parses a JSON array of question records.
func DecodeBank(data []byte) ([]QuestionRecord, error) {
	var records []QuestionRecord
	if err := json.Unmarshal(bytes.TrimSpace(data), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ParsedQuestion is the display form of a question: the stem and exactly four options.
type ParsedQuestion struct {
	Stem    string            `json:"stem"`
	Options map[string]string `json:"options"`
}

// Option returns the text for label, or "" when the label is unknown.
func (q ParsedQuestion) Option(label string) string {
	if q.Options == nil {
		return ""
	}
	return q.Options[label]
}

// OptionLines formats the located options as "<label>. <text>" in label order, skipping
// labels without text.
func (q ParsedQuestion) OptionLines() []string {
	lines := make([]string, 0, len(OptionLabels))
	for _, label := range OptionLabels {
		if text := q.Option(label); text != "" {
			lines = append(lines, label+". "+text)
		}
	}
	return lines
}

// DisplayedAnswer is the AI answer chosen for a question after normalization.
type DisplayedAnswer struct {
	Condition   Condition `json:"condition"`
	Choice      string    `json:"choice"`
	Explanation string    `json:"explanation"`
	IsCorrect   bool      `json:"isCorrect"`
}

// ResponseRecord captures the outcome of one question.
type ResponseRecord struct {
	QuestionNumber         int       `json:"questionNumber"`
	Question               string    `json:"question"`
	DisplayedChoice        string    `json:"displayedChoice"`
	DisplayedExplanation   string    `json:"displayedExplanation"`
	Verdict                Verdict   `json:"verdict"`
	Condition              Condition `json:"condition,omitempty"`
	DisplayedAnswerCorrect bool      `json:"displayedAnswerCorrect"`
	CorrectAnswer          string    `json:"correctAnswer"`
	CorrectAnswerText      string    `json:"correctAnswerText"`
}

// SessionState is a read-only snapshot of a drill session.
type SessionState struct {
	QuestionIndex    int              `json:"questionIndex"`
	TotalQuestions   int              `json:"totalQuestions"`
	RemainingSeconds int              `json:"remainingSeconds"`
	Responses        []ResponseRecord `json:"responses"`
	Phase            Phase            `json:"phase"`
}
