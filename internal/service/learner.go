package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/repository"
	"github.com/aliskhannn/learn-scripting/internal/storage"
)

// QuizAttempt is a quiz being answered in a chat.
type QuizAttempt struct {
	Subject   entities.Subject
	Questions []entities.QuizQuestion
	Answers   entities.QuizAnswers
	Offline   bool
}

// Learner is the client state of one chat: progress, session, preferences and
// the lesson or quiz currently on screen.
type Learner struct {
	ChatID   int64
	Progress *ProgressState

	sessions SessionRepository
	settings SettingsRepository

	mu       sync.Mutex
	session  entities.Session
	prefs    entities.Settings
	inflight map[string]struct{}
	lesson   *openLesson
	quiz     *QuizAttempt
}

type openLesson struct {
	subject entities.Subject
	lesson  entities.Lesson
}

// Session returns the current session.
func (l *Learner) Session() entities.Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session
}

func (l *Learner) setSession(ctx context.Context, s entities.Session) error {
	if err := l.sessions.Save(ctx, s); err != nil {
		return err
	}

	l.mu.Lock()
	l.session = s
	l.mu.Unlock()
	return nil
}

func (l *Learner) clearSession(ctx context.Context) error {
	if err := l.sessions.Clear(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	l.session = entities.Anonymous()
	l.mu.Unlock()
	return nil
}

// Settings returns the display preferences.
func (l *Learner) Settings() entities.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.prefs
}

func (l *Learner) setSettings(ctx context.Context, s entities.Settings) error {
	if err := l.settings.Save(ctx, s); err != nil {
		return err
	}

	l.mu.Lock()
	l.prefs = s
	l.mu.Unlock()
	return nil
}

// OpenLesson makes lesson the target of the next answer.
func (l *Learner) OpenLesson(subject entities.Subject, lesson entities.Lesson) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lesson = &openLesson{subject: subject, lesson: lesson}
}

// CurrentLesson returns the lesson opened last.
func (l *Learner) CurrentLesson() (entities.Subject, entities.Lesson, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lesson == nil {
		return "", entities.Lesson{}, ErrNoActiveLesson
	}
	return l.lesson.subject, l.lesson.lesson, nil
}

// StartQuiz replaces any quiz in progress.
func (l *Learner) StartQuiz(subject entities.Subject, questions []entities.QuizQuestion, offline bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.quiz = &QuizAttempt{
		Subject:   subject,
		Questions: questions,
		Answers:   make(entities.QuizAnswers, len(questions)),
		Offline:   offline,
	}
}

// SelectAnswer records the chosen option; choosing again overwrites it.
func (l *Learner) SelectAnswer(subject entities.Subject, question, option int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.quiz == nil || l.quiz.Subject != subject {
		return ErrNoActiveQuiz
	}
	if question < 0 || question >= len(l.quiz.Questions) {
		return ErrInvalidOption
	}
	if option < 0 || option >= len(l.quiz.Questions[question].Options) {
		return ErrInvalidOption
	}

	l.quiz.Answers[question] = option
	return nil
}

// Quiz returns a copy of the quiz in progress.
func (l *Learner) Quiz() (QuizAttempt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.quiz == nil {
		return QuizAttempt{}, ErrNoActiveQuiz
	}

	c := *l.quiz
	c.Answers = make(entities.QuizAnswers, len(l.quiz.Answers))
	for q, opt := range l.quiz.Answers {
		c.Answers[q] = opt
	}
	return c, nil
}

// takeQuiz removes the quiz of subject in progress and returns it, so an
// attempt can be graded only once.
func (l *Learner) takeQuiz(subject entities.Subject) (QuizAttempt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.quiz == nil || l.quiz.Subject != subject {
		return QuizAttempt{}, ErrNoActiveQuiz
	}
	a := *l.quiz
	l.quiz = nil
	return a, nil
}

// restoreQuiz puts back an attempt whose result could not be saved, unless
// another quiz was started meanwhile.
func (l *Learner) restoreQuiz(a QuizAttempt) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.quiz == nil {
		l.quiz = &a
	}
}

// beginCheck marks a check as in flight. The returned func ends it.
func (l *Learner) beginCheck(key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.inflight[key]; busy {
		return nil, ErrCheckInFlight
	}
	l.inflight[key] = struct{}{}

	return func() {
		l.mu.Lock()
		delete(l.inflight, key)
		l.mu.Unlock()
	}, nil
}

// LearnerRegistry loads learners lazily, one namespace per chat.
type LearnerRegistry struct {
	mu       sync.Mutex
	store    storage.Store
	log      *zap.Logger
	learners map[int64]*Learner
}

func NewLearnerRegistry(store storage.Store, log *zap.Logger) *LearnerRegistry {
	return &LearnerRegistry{
		store:    store,
		log:      log,
		learners: make(map[int64]*Learner),
	}
}

// Get returns the learner of chatID, loading it from the store on first use.
func (r *LearnerRegistry) Get(ctx context.Context, chatID int64) *Learner {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.learners[chatID]; ok {
		return l
	}

	l := r.load(ctx, chatID)
	r.learners[chatID] = l
	return l
}

func (r *LearnerRegistry) load(ctx context.Context, chatID int64) *Learner {
	ns := storage.WithPrefix(r.store, fmt.Sprintf("learner:%d:", chatID))
	log := r.log.With(zap.Int64("chat_id", chatID))

	l := &Learner{
		ChatID:   chatID,
		Progress: LoadProgressState(ctx, repository.NewProgressRepository(ns), log),
		sessions: repository.NewSessionRepository(ns),
		settings: repository.NewSettingsRepository(ns),
		inflight: make(map[string]struct{}),
	}

	session, err := l.sessions.Get(ctx)
	if err != nil {
		log.Warn("discarding unreadable session", zap.Error(err))
		session = entities.Anonymous()
	}
	l.session = session

	prefs, err := l.settings.Get(ctx)
	if err != nil {
		log.Warn("discarding unreadable settings", zap.Error(err))
	}
	l.prefs = prefs

	l.Progress.Subscribe(func(ev ProgressEvent) {
		log.Info("progress changed",
			zap.String("event", string(ev.Kind)),
			zap.String("subject", string(ev.Subject)),
			zap.Int("lesson_id", ev.LessonID),
		)
	})

	return l
}
