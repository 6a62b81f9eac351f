package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"aeroedu-service/internal/domain"
)

// LearningService serves the static module catalog and runs per-user quiz
// sessions plus module-completion bookkeeping.
type LearningService struct {
	content  ContentRepository
	progress ProgressRepository
	ledger   *ProgressService
	clock    func() time.Time
	newID    func() string

	mu      sync.Mutex
	quizzes map[string]*quizSession
}

func NewLearningService(content ContentRepository, progress ProgressRepository, ledger *ProgressService) *LearningService {
	return &LearningService{
		content:  content,
		progress: progress,
		ledger:   ledger,
		clock:    time.Now,
		newID:    uuid.NewString,
		quizzes:  make(map[string]*quizSession),
	}
}

// quizSession accumulates a user's answers for one module quiz. The correct
// count and the answer sequence are the only state.
type quizSession struct {
	answers map[string]int // question id -> chosen option
	correct int
}

// AnswerFeedback reports the outcome of a single quiz submission.
type AnswerFeedback struct {
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correctIndex"`
	Explanation  string `json:"explanation"`
	XPAwarded    int    `json:"xpAwarded"`
}

// Modules lists the full learning catalog.
func (s *LearningService) Modules(ctx context.Context) ([]domain.LearningModule, error) {
	return s.content.ListModules(ctx)
}

// Module fetches one catalog entry.
func (s *LearningService) Module(ctx context.Context, moduleID int) (domain.LearningModule, error) {
	return s.content.GetModule(ctx, moduleID)
}

// StartModule marks a module as the user's current one and ensures an
// in-progress record exists.
func (s *LearningService) StartModule(ctx context.Context, userID string, moduleID int) (domain.ModuleProgress, error) {
	if _, err := s.content.GetModule(ctx, moduleID); err != nil {
		return domain.ModuleProgress{}, err
	}
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return domain.ModuleProgress{}, err
	}

	record, err := s.progress.Get(userID, moduleID)
	if err == domain.ErrProgressNotFound {
		record = domain.ModuleProgress{
			ID:          s.newID(),
			UserID:      userID,
			ModuleID:    moduleID,
			QuizAnswers: map[string]int{},
		}
		if err := s.progress.Put(record); err != nil {
			return domain.ModuleProgress{}, err
		}
	} else if err != nil {
		return domain.ModuleProgress{}, err
	}

	if err := s.ledger.setCurrentModule(userID, moduleID); err != nil {
		return domain.ModuleProgress{}, err
	}
	return record, nil
}

// SubmitAnswer grades one quiz answer against the module's question. A correct
// first answer to a question awards the fixed per-question XP; re-answering a
// question records the new choice without re-awarding.
func (s *LearningService) SubmitAnswer(ctx context.Context, userID string, moduleID, questionIndex, chosenOption int) (AnswerFeedback, error) {
	module, err := s.content.GetModule(ctx, moduleID)
	if err != nil {
		return AnswerFeedback{}, err
	}
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return AnswerFeedback{}, err
	}
	if questionIndex < 0 || questionIndex >= len(module.Quiz) {
		return AnswerFeedback{}, domain.ErrInvalidAnswer
	}
	question := module.Quiz[questionIndex]
	if chosenOption < 0 || chosenOption >= len(question.Options) {
		return AnswerFeedback{}, domain.ErrInvalidAnswer
	}

	correct := chosenOption == question.CorrectIndex

	s.mu.Lock()
	session := s.quizzes[s.quizKey(userID, moduleID)]
	if session == nil {
		session = &quizSession{answers: make(map[string]int)}
		s.quizzes[s.quizKey(userID, moduleID)] = session
	}
	_, answeredBefore := session.answers[question.ID]
	session.answers[question.ID] = chosenOption
	if correct && !answeredBefore {
		session.correct++
	}
	s.mu.Unlock()

	feedback := AnswerFeedback{
		Correct:      correct,
		CorrectIndex: question.CorrectIndex,
		Explanation:  question.Explanation,
	}
	if correct && !answeredBefore {
		reason := fmt.Sprintf("Correct answer in quiz question %d", questionIndex+1)
		if _, err := s.ledger.AwardXP(ctx, userID, domain.CorrectAnswerXP, reason); err != nil {
			return AnswerFeedback{}, err
		}
		feedback.XPAwarded = domain.CorrectAnswerXP
	}
	return feedback, nil
}

// FinalizeQuiz converts the accumulated correct count into a percentage score
// (rounded half-up) and drops the session.
func (s *LearningService) FinalizeQuiz(ctx context.Context, userID string, moduleID int) (int, error) {
	module, err := s.content.GetModule(ctx, moduleID)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	session := s.quizzes[s.quizKey(userID, moduleID)]
	delete(s.quizzes, s.quizKey(userID, moduleID))
	s.mu.Unlock()

	correct := 0
	if session != nil {
		correct = session.correct
	}
	return domain.QuizScore(correct, len(module.Quiz)), nil
}

// CompleteModule upserts the progress record, awards the module's XP reward,
// and runs the completion-driven badge checks through the ledger.
func (s *LearningService) CompleteModule(ctx context.Context, userID string, moduleID, score, timeSpent int) (domain.ModuleProgress, domain.XPAward, error) {
	module, err := s.content.GetModule(ctx, moduleID)
	if err != nil {
		return domain.ModuleProgress{}, domain.XPAward{}, err
	}
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return domain.ModuleProgress{}, domain.XPAward{}, err
	}

	record, err := s.progress.Get(userID, moduleID)
	firstCompletion := false
	if err == domain.ErrProgressNotFound {
		record = domain.ModuleProgress{
			ID:          s.newID(),
			UserID:      userID,
			ModuleID:    moduleID,
			QuizAnswers: map[string]int{},
		}
		firstCompletion = true
	} else if err != nil {
		return domain.ModuleProgress{}, domain.XPAward{}, err
	} else {
		firstCompletion = !record.Completed
	}

	s.mu.Lock()
	if session := s.quizzes[s.quizKey(userID, moduleID)]; session != nil {
		for questionID, chosen := range session.answers {
			record.QuizAnswers[questionID] = chosen
		}
		delete(s.quizzes, s.quizKey(userID, moduleID))
	}
	s.mu.Unlock()

	now := s.clock()
	record.Completed = true
	record.Score = score
	record.TimeSpent = timeSpent
	record.CompletedAt = &now
	if err := s.progress.Put(record); err != nil {
		return domain.ModuleProgress{}, domain.XPAward{}, err
	}

	award, err := s.ledger.recordModuleCompletion(ctx, userID, module, score, firstCompletion)
	if err != nil {
		return domain.ModuleProgress{}, domain.XPAward{}, err
	}
	return record, award, nil
}

// Progress lists all module progress records for a user.
func (s *LearningService) Progress(ctx context.Context, userID string) ([]domain.ModuleProgress, error) {
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.progress.ListForUser(userID)
}

// ProgressFor fetches the record for one user/module pair.
func (s *LearningService) ProgressFor(ctx context.Context, userID string, moduleID int) (domain.ModuleProgress, error) {
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return domain.ModuleProgress{}, err
	}
	return s.progress.Get(userID, moduleID)
}

func (s *LearningService) quizKey(userID string, moduleID int) string {
	return fmt.Sprintf("%s:%d", userID, moduleID)
}
