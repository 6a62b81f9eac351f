package domain

import (
	"math"
	"time"
)

// CorrectAnswerXP is the fixed reward for a correct quiz answer.
const CorrectAnswerXP = 25

// QuizQuestion is a multiple-choice question with exactly one correct option.
type QuizQuestion struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// ModuleSection is one readable section of a learning module.
type ModuleSection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Interactive bool   `json:"interactive,omitempty"`
}

// LearningModule is a static content unit with sections and a quiz.
// The catalog is read-only input; the core never mutates it.
type LearningModule struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"` // minutes
	XPReward    int             `json:"xpReward"`
	ImageURL    string          `json:"imageUrl"`
	Sections    []ModuleSection `json:"sections"`
	Quiz        []QuizQuestion  `json:"quiz"`
}

// ModuleProgress tracks a user's progress through one learning module.
type ModuleProgress struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	ModuleID    int            `json:"moduleId"`
	Completed   bool           `json:"completed"`
	Score       int            `json:"score"`
	TimeSpent   int            `json:"timeSpent"` // seconds
	QuizAnswers map[string]int `json:"quizAnswers"`
	CompletedAt *time.Time     `json:"completedAt"`
}

// QuizScore converts a correct count into a percentage, rounded half-up.
func QuizScore(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
