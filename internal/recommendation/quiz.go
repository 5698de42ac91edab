package recommendation

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/angelmondragon/lushka-backend/pkg/enums"
)

// View is a read-only snapshot of a quiz.
type View struct {
	Status         enums.QuizStatus `json:"status"`
	Question       *Question        `json:"current_question"`
	Answers        []Answer         `json:"answers"`
	Recommendation *Recommendation  `json:"recommendation"`
	Progress       float64          `json:"progress"`
	CanGoBack      bool             `json:"can_go_back"`
	CanAdvance     bool             `json:"can_advance"`
}

// QuizListener receives the view after every transition.
type QuizListener func(View)

// QuizOptions wires a quiz's collaborators.
type QuizOptions struct {
	Recommender Recommender
	Delay       time.Duration
	Clock       func() time.Time
	// OnCompleted runs after a recommendation settles, outside the lock.
	OnCompleted func(ctx context.Context, rec Recommendation)
}

// Quiz is one shopper's question flow. Every transition bumps a generation
// counter; a recommendation computed for an older generation is discarded.
type Quiz struct {
	mu             sync.Mutex
	status         enums.QuizStatus
	current        int
	answers        []Answer
	recommendation *Recommendation
	generation     uint64

	recommender Recommender
	delay       time.Duration
	now         func() time.Time
	onCompleted func(ctx context.Context, rec Recommendation)

	subMu     sync.Mutex
	listeners map[int]QuizListener
	nextSubID int
}

// NewQuiz returns a quiz positioned on the first question.
func NewQuiz(opts QuizOptions) *Quiz {
	q := &Quiz{
		status:      enums.QuizStatusQuestion,
		recommender: opts.Recommender,
		delay:       opts.Delay,
		now:         opts.Clock,
		onCompleted: opts.OnCompleted,
		listeners:   map[int]QuizListener{},
	}
	if q.now == nil {
		q.now = time.Now
	}
	return q
}

// AnswerQuestion records optionID for the current question. It is ignored
// outside the question phase or when the option does not belong to the
// current question. The final answer starts processing.
func (q *Quiz) AnswerQuestion(ctx context.Context, optionID string) View {
	view, _ := q.answer(ctx, optionID)
	return view
}

// answer reports whether this call was the one that started processing.
func (q *Quiz) answer(ctx context.Context, optionID string) (View, bool) {
	q.mu.Lock()
	if q.status != enums.QuizStatusQuestion || q.current >= len(questions) {
		view := q.viewLocked()
		q.mu.Unlock()
		return view, false
	}
	question := questions[q.current]
	opt, ok := question.Option(optionID)
	if !ok {
		view := q.viewLocked()
		q.mu.Unlock()
		return view, false
	}

	q.answers = append(q.answers, Answer{
		QuestionID: question.ID,
		OptionID:   opt.ID,
		Value:      opt.Value,
		AnsweredAt: q.now(),
	})
	q.generation++

	var (
		start      bool
		generation = q.generation
		answers    []Answer
	)
	if len(q.answers) == len(questions) {
		q.status = enums.QuizStatusLoading
		start = true
		answers = copyAnswers(q.answers)
	} else {
		q.current++
	}
	view := q.viewLocked()
	q.mu.Unlock()

	q.notify(view)
	if start {
		go q.process(context.WithoutCancel(ctx), generation, answers)
	}
	return view, start
}

func (q *Quiz) process(ctx context.Context, generation uint64, answers []Answer) {
	if q.delay > 0 {
		timer := time.NewTimer(q.delay)
		<-timer.C
	}

	if !q.isCurrent(generation) {
		return
	}
	var rec Recommendation
	if q.recommender != nil {
		rec = q.recommender.Recommend(ctx, answers)
	}

	q.mu.Lock()
	if q.generation != generation || q.status != enums.QuizStatusLoading {
		q.mu.Unlock()
		return
	}
	q.generation++
	q.status = enums.QuizStatusCompleted
	q.recommendation = &rec
	view := q.viewLocked()
	q.mu.Unlock()

	q.notify(view)
	if q.onCompleted != nil {
		q.onCompleted(ctx, rec)
	}
}

func (q *Quiz) isCurrent(generation uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.generation == generation
}

// GoBack removes the last answer and returns to the question it answered.
// From the completed phase the recommendation is discarded. With no answers
// it is a no-op.
func (q *Quiz) GoBack() View {
	q.mu.Lock()
	if len(q.answers) == 0 {
		view := q.viewLocked()
		q.mu.Unlock()
		return view
	}

	last := q.answers[len(q.answers)-1]
	q.answers = q.answers[:len(q.answers)-1]
	if _, idx, ok := questionByID(last.QuestionID); ok {
		q.current = idx
	} else {
		q.current = len(q.answers)
	}
	q.status = enums.QuizStatusQuestion
	q.recommendation = nil
	q.generation++
	view := q.viewLocked()
	q.mu.Unlock()

	q.notify(view)
	return view
}

// Reset returns to the first question with no answers.
func (q *Quiz) Reset() View {
	q.mu.Lock()
	q.status = enums.QuizStatusQuestion
	q.current = 0
	q.answers = nil
	q.recommendation = nil
	q.generation++
	view := q.viewLocked()
	q.mu.Unlock()

	q.notify(view)
	return view
}

// View returns the current state.
func (q *Quiz) View() View {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.viewLocked()
}

// Recommendation returns the settled recommendation, if any.
func (q *Quiz) Recommendation() (Recommendation, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.recommendation == nil {
		return Recommendation{}, false
	}
	return *q.recommendation, true
}

func (q *Quiz) viewLocked() View {
	v := View{
		Status:     q.status,
		Answers:    copyAnswers(q.answers),
		CanGoBack:  len(q.answers) > 0,
		CanAdvance: q.status == enums.QuizStatusQuestion,
	}
	if q.status == enums.QuizStatusQuestion && q.current < len(questions) {
		question := questions[q.current]
		v.Question = &question
	}
	if q.recommendation != nil {
		rec := *q.recommendation
		v.Recommendation = &rec
	}
	if q.status == enums.QuizStatusCompleted {
		v.Progress = 100
	} else {
		v.Progress = float64(len(q.answers)) / float64(len(questions)) * 100
	}
	return v
}

// Subscribe registers fn for transition notifications and returns a func
// that removes it.
func (q *Quiz) Subscribe(fn QuizListener) func() {
	if fn == nil {
		return func() {}
	}
	q.subMu.Lock()
	id := q.nextSubID
	q.nextSubID++
	q.listeners[id] = fn
	q.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			q.subMu.Lock()
			delete(q.listeners, id)
			q.subMu.Unlock()
		})
	}
}

func (q *Quiz) notify(view View) {
	q.subMu.Lock()
	ids := make([]int, 0, len(q.listeners))
	for id := range q.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]QuizListener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, q.listeners[id])
	}
	q.subMu.Unlock()

	for _, fn := range fns {
		fn(view)
	}
}
