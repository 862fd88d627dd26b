package handler

import (
	"errors"
	"testing"
	"time"

	"langportal/internal/domain"
	"langportal/internal/service"
	"langportal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

const testUserID int64 = 42

// fakeContext records what the handler sends for a plain message update
type fakeContext struct {
	tele.Context
	sender *tele.User
	sent   []interface{}
}

func newFakeContext() *fakeContext {
	return &fakeContext{sender: &tele.User{ID: testUserID}}
}

func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Callback() *tele.Callback { return nil }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

type quizFixture struct {
	handler *Handler
	words   *testutil.MockWordRepository
	groups  *testutil.MockGroupRepository
	study   *testutil.MockStudyRepository
}

func newQuizFixture() *quizFixture {
	f := &quizFixture{
		words:  new(testutil.MockWordRepository),
		groups: new(testutil.MockGroupRepository),
		study:  new(testutil.MockStudyRepository),
	}
	logger := testutil.NewTestLogger()
	f.handler = NewHandler(nil, Services{
		Words: service.NewWordService(f.words, f.groups, logger),
		Study: service.NewStudyService(f.study, f.groups, logger),
	}, time.UTC, logger)
	return f
}

func reviewOf(sessionID, wordID int64, correct bool) interface{} {
	return mock.MatchedBy(func(item *domain.ReviewItem) bool {
		return item.SessionID == sessionID && item.WordID == wordID && item.IsCorrect == correct
	})
}

func TestCheckAnswer(t *testing.T) {
	unavailable := &domain.StorageError{Kind: domain.ErrStorageUnavailable, Op: "add review item", Err: errors.New("refused")}

	tests := []struct {
		name      string
		answer    string
		correct   bool
		storeErr  error
		wantSent  string
		wantReset bool
	}{
		{
			name:      "correct answer is recorded",
			answer:    "  Water ",
			correct:   true,
			wantSent:  "✅ Correct!",
			wantReset: true,
		},
		{
			name:      "wrong answer is recorded",
			answer:    "fire",
			correct:   false,
			wantSent:  "❌ Not quite. पानी means: water",
			wantReset: true,
		},
		{
			name:    "word deleted while the question was open",
			answer:  "water",
			correct: true,
			storeErr: &domain.StorageError{
				Kind: domain.ErrConstraintViolation,
				Op:   "add review item",
				Err:  errors.New("FOREIGN KEY constraint failed"),
			},
			wantSent:  "✅ Correct!",
			wantReset: true,
		},
		{
			name:     "store unavailable",
			answer:   "water",
			correct:  true,
			storeErr: unavailable,
			wantSent: storageMessage(unavailable),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuizFixture()
			f.study.On("AddReviewItem", mock.Anything, reviewOf(7, 3, tt.correct)).Return(tt.storeErr)

			state := &domain.StateData{
				State:     domain.StateWaitingAnswer,
				SessionID: 7,
				Word:      testutil.NewTestWord(3, "पानी", "water"),
			}
			f.handler.SetState(testUserID, state)
			c := newFakeContext()

			require.NoError(t, f.handler.checkAnswer(c, state, tt.answer))

			require.Len(t, c.sent, 1)
			assert.Equal(t, tt.wantSent, c.sent[0])

			got := f.handler.GetState(testUserID)
			assert.Equal(t, domain.StateWaitingAnswer, got.State)
			assert.Equal(t, int64(7), got.SessionID)
			if tt.wantReset {
				assert.Nil(t, got.Word)
			} else {
				assert.NotNil(t, got.Word)
			}
			f.study.AssertExpectations(t)
		})
	}
}

func TestCheckAnswer_NoOpenQuestion(t *testing.T) {
	f := newQuizFixture()
	state := &domain.StateData{State: domain.StateWaitingAnswer, SessionID: 7}
	c := newFakeContext()

	require.NoError(t, f.handler.checkAnswer(c, state, "water"))

	require.Len(t, c.sent, 1)
	assert.Contains(t, c.sent[0], "Next word")
	f.study.AssertNotCalled(t, "AddReviewItem", mock.Anything, mock.Anything)
}

func TestHandleFinishQuiz(t *testing.T) {
	t.Run("closes the session and shows the score", func(t *testing.T) {
		f := newQuizFixture()
		f.study.On("EndSession", mock.Anything, int64(7), mock.AnythingOfType("time.Time")).Return(nil)
		f.study.On("SessionReviewItems", mock.Anything, int64(7)).Return([]domain.ReviewItem{
			{SessionID: 7, WordID: 3, IsCorrect: true},
			{SessionID: 7, WordID: 4, IsCorrect: false},
		}, nil)
		f.handler.SetState(testUserID, &domain.StateData{State: domain.StateWaitingAnswer, SessionID: 7})
		c := newFakeContext()

		require.NoError(t, f.handler.handleFinishQuiz(c))

		require.Len(t, c.sent, 1)
		assert.Equal(t, "🏁 Session finished\n\nCorrect: 1 of 2 (50%)", c.sent[0])
		assert.Equal(t, domain.StateIdle, f.handler.GetState(testUserID).State)
		assert.Zero(t, f.handler.GetState(testUserID).SessionID)
		f.study.AssertExpectations(t)
	})

	t.Run("no open session", func(t *testing.T) {
		f := newQuizFixture()
		c := newFakeContext()

		require.NoError(t, f.handler.handleFinishQuiz(c))

		require.Len(t, c.sent, 1)
		assert.Equal(t, msgMainMenu, c.sent[0])
		f.study.AssertNotCalled(t, "EndSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("session already gone", func(t *testing.T) {
		f := newQuizFixture()
		f.study.On("EndSession", mock.Anything, int64(7), mock.Anything).Return(domain.ErrNotFound)
		f.handler.SetState(testUserID, &domain.StateData{State: domain.StateWaitingAnswer, SessionID: 7})
		c := newFakeContext()

		require.NoError(t, f.handler.handleFinishQuiz(c))

		require.Len(t, c.sent, 1)
		assert.Equal(t, msgFailure, c.sent[0])
		assert.Equal(t, domain.StateIdle, f.handler.GetState(testUserID).State)
	})
}

func TestHandleRemoveWord(t *testing.T) {
	t.Run("deletes the asked word and keeps the session", func(t *testing.T) {
		f := newQuizFixture()
		f.words.On("DeleteWord", mock.Anything, int64(3)).Return(nil)
		f.handler.SetState(testUserID, &domain.StateData{
			State:     domain.StateWaitingAnswer,
			SessionID: 7,
			Word:      testutil.NewTestWord(3, "पानी", "water"),
		})
		c := newFakeContext()

		require.NoError(t, f.handler.handleRemoveWord(c))

		require.Len(t, c.sent, 1)
		assert.Equal(t, "🗑 पानी (पानी) removed from your vocabulary.", c.sent[0])
		got := f.handler.GetState(testUserID)
		assert.Equal(t, int64(7), got.SessionID)
		assert.Nil(t, got.Word)
		f.words.AssertExpectations(t)
	})

	t.Run("already deleted", func(t *testing.T) {
		f := newQuizFixture()
		f.words.On("DeleteWord", mock.Anything, int64(3)).Return(domain.ErrNotFound)
		f.handler.SetState(testUserID, &domain.StateData{
			State:     domain.StateWaitingAnswer,
			SessionID: 7,
			Word:      testutil.NewTestWord(3, "पानी", "water"),
		})
		c := newFakeContext()

		require.NoError(t, f.handler.handleRemoveWord(c))

		require.Len(t, c.sent, 1)
		assert.Contains(t, c.sent[0], "removed from your vocabulary")
	})

	t.Run("no open question", func(t *testing.T) {
		f := newQuizFixture()
		c := newFakeContext()

		require.NoError(t, f.handler.handleRemoveWord(c))

		require.Len(t, c.sent, 1)
		assert.Equal(t, "There is no word to remove", c.sent[0])
		f.words.AssertNotCalled(t, "DeleteWord", mock.Anything, mock.Anything)
	})
}
