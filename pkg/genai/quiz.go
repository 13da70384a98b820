package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Question is one multiple-choice interview question.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// WrongAnswer pairs a missed question with what the user picked, used to
// build an improvement tip after a quiz.
type WrongAnswer struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
}

const quizSystem = "You are a JSON generator. Output only a JSON string, no markdown markers."

const quizPrompt = `Generate %d technical interview questions for a %s professional%s.
Each question must be multiple choice with exactly 4 options.
Return strictly the following JSON shape and nothing else:
{
	"questions": [
		{
			"question": "string",
			"options": ["string", "string", "string", "string"],
			"correct_answer": "string",
			"explanation": "string"
		}
	]
}`

// QuestionCount is how many questions one quiz requests.
const QuestionCount = 10

// InterviewQuiz generates a practice quiz for the given industry and skill
// set. The caller decides what to do on failure; this never fabricates
// questions from an unparsable answer.
func (c *Client) InterviewQuiz(ctx context.Context, industry string, skills []string) ([]Question, error) {
	skillHint := ""
	if len(skills) > 0 {
		skillHint = fmt.Sprintf(" with expertise in %s", strings.Join(skills, ", "))
	}

	raw, err := c.complete(ctx, quizSystem, fmt.Sprintf(quizPrompt, QuestionCount, industry, skillHint))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(StripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("parse quiz for %q: %v: %w", industry, err, ErrGenerationFailed)
	}

	questions := make([]Question, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		if q.Question == "" || len(q.Options) == 0 {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz for %q has no usable questions: %w", industry, ErrGenerationFailed)
	}
	return questions, nil
}

const tipPrompt = `The user got the following %s technical interview questions wrong:

%s

Based on these mistakes, provide a concise, specific improvement tip.
Focus on the knowledge gaps revealed by the wrong answers.
Keep the response under 2 sentences, make it encouraging, and don't explicitly
mention the mistakes. Return plain text only.`

// ImprovementTip summarizes what to study after a quiz with wrong answers.
func (c *Client) ImprovementTip(ctx context.Context, industry string, wrong []WrongAnswer) (string, error) {
	var sb strings.Builder
	for _, w := range wrong {
		fmt.Fprintf(&sb, "Question: %q\nCorrect answer: %q\nUser answer: %q\n\n", w.Question, w.CorrectAnswer, w.UserAnswer)
	}

	raw, err := c.complete(ctx, "You are a supportive interview coach.", fmt.Sprintf(tipPrompt, industry, sb.String()))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}
