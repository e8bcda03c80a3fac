package models

import "encoding/json"

// NoCorrectAnswer marks a question without a highlighted answer
const NoCorrectAnswer = -1

// LessonContent represents the structured body of a lesson.
//
// It is stored as a single JSON document in the lessons.content column.
type LessonContent struct {
	TheoryHTML string     `json:"theory_html"`
	Tests      []Question `json:"tests"`
	Tasks      []Task     `json:"tasks"`
}

// Question represents a multiple-choice test question
type Question struct {
	Question     string   `json:"question"`
	Answers      []string `json:"answers"`
	CorrectIndex int      `json:"correctIndex"`
}

// UnmarshalJSON decodes a question, treating an absent correctIndex as NoCorrectAnswer
func (q *Question) UnmarshalJSON(data []byte) error {
	type rawQuestion Question
	raw := rawQuestion{CorrectIndex: NoCorrectAnswer}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*q = Question(raw)
	if q.Answers == nil {
		q.Answers = []string{}
	}
	return nil
}

// HasValidCorrectIndex reports whether CorrectIndex is unset or points into Answers
func (q Question) HasValidCorrectIndex() bool {
	return q.CorrectIndex < 0 || q.CorrectIndex < len(q.Answers)
}

// Task represents a free-form practice task
type Task struct {
	Title    string `json:"title,omitempty"`
	TextHTML string `json:"text_html"`
}

// Normalize replaces nil collections with empty ones so the stored document always has arrays
func (c *LessonContent) Normalize() {
	if c.Tests == nil {
		c.Tests = []Question{}
	}
	if c.Tasks == nil {
		c.Tasks = []Task{}
	}
	for i := range c.Tests {
		if c.Tests[i].Answers == nil {
			c.Tests[i].Answers = []string{}
		}
		if c.Tests[i].CorrectIndex < 0 {
			c.Tests[i].CorrectIndex = NoCorrectAnswer
		}
	}
}

// ForReader returns a copy safe for public rendering: out-of-range answers are reported as NoCorrectAnswer
func (c LessonContent) ForReader() LessonContent {
	out := LessonContent{
		TheoryHTML: c.TheoryHTML,
		Tests:      make([]Question, len(c.Tests)),
		Tasks:      c.Tasks,
	}
	for i, q := range c.Tests {
		if !q.HasValidCorrectIndex() {
			q.CorrectIndex = NoCorrectAnswer
		}
		out.Tests[i] = q
	}
	out.Normalize()
	return out
}
