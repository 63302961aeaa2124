package domain

// Category classifies a response by verdict and correctness of the displayed answer.
type Category string

const (
	CategoryUnanswered       Category = "unanswered"
	CategoryCorrectRejection Category = "correct_rejection"
	CategoryUnderReliance    Category = "under_reliance"
	CategoryOverReliance     Category = "over_reliance"
	CategoryAppropriateTrust Category = "appropriate_trust"
)

// Color is the background used when rendering the category. Over- and under-reliance
// share the same colour.
func (c Category) Color() string {
	switch c {
	case CategoryUnanswered:
		return "#ffeeba"
	case CategoryCorrectRejection:
		return "#d4edda"
	case CategoryOverReliance, CategoryUnderReliance:
		return "#f8d7da"
	default:
		return "#f0f0f0"
	}
}

// ReportEntry is a single question as shown in the final report.
type ReportEntry struct {
	Category             Category  `json:"category"`
	Color                string    `json:"color"`
	QuestionNumber       int       `json:"questionNumber"`
	Question             string    `json:"question"`
	DisplayedChoice      string    `json:"displayedChoice"`
	DisplayedExplanation string    `json:"displayedExplanation"`
	CorrectAnswer        string    `json:"correctAnswer"`
	CorrectAnswerText    string    `json:"correctAnswerText"`
	Verdict              Verdict   `json:"verdict"`
	VerdictLabel         string    `json:"verdictLabel"`
	Condition            Condition `json:"condition"`
}

// CorrectAnswerLine formats the correct answer as "<label>. <text>".
func (e ReportEntry) CorrectAnswerLine() string {
	return e.CorrectAnswer + ". " + e.CorrectAnswerText
}

// Report summarizes a finished drill session.
type Report struct {
	TotalQuestions     int           `json:"totalQuestions"`
	QuestionsAttempted int           `json:"questionsAttempted"`
	TotalDrills        int           `json:"totalDrills"`
	OverRelianceCount  int           `json:"overRelianceCount"`
	Harmful            []ReportEntry `json:"harmful"`
	Helpful            []ReportEntry `json:"helpful"`
}

const (
	HarmfulSectionTitle = "Results of the reliance drills (e.g., adversarial prompt):"
	HelpfulSectionTitle = "Results of the AI functioning normally (e.g., no adversarial prompt):"
	HarmfulSectionEmpty = "No harmful AI responses were displayed."
	HelpfulSectionEmpty = "No helpful AI responses were displayed."
)
