package handler

import (
	"fmt"
	"strings"
	"time"

	"langportal/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleDashboard shows the dashboard statistics
func (h *Handler) handleDashboard(c tele.Context) error {
	ctx, cancel := requestContext()
	defer cancel()

	stats, err := h.dashboard.Stats(ctx)
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.Error(err))
		return alert(c, storageMessage(err))
	}

	return h.show(c, formatDashboard(stats), backMarkup())
}

// handleLastSession shows the most recent study session
func (h *Handler) handleLastSession(c tele.Context) error {
	ctx, cancel := requestContext()
	defer cancel()

	session, err := h.study.RecentSession(ctx)
	if err != nil {
		h.logger.Error("Failed to load recent session", zap.Error(err))
		return alert(c, storageMessage(err))
	}
	if session == nil {
		return alert(c, "No study sessions yet")
	}

	return h.show(c, formatSession(session, h.now(), h.loc), backMarkup())
}

func formatDashboard(s domain.DashboardStats) string {
	var b strings.Builder
	b.WriteString("📊 Dashboard\n\n")
	fmt.Fprintf(&b, "📚 Vocabulary: %d words\n", s.TotalVocabulary)
	fmt.Fprintf(&b, "📝 Studied: %d words\n", s.TotalWordsStudied)
	fmt.Fprintf(&b, "🏆 Mastered: %d words\n", s.MasteredWords)
	fmt.Fprintf(&b, "🎯 Success rate: %.0f%%\n", s.SuccessRate*100)
	fmt.Fprintf(&b, "🗓 Sessions (30 days): %d\n", s.TotalSessions)
	fmt.Fprintf(&b, "👥 Active groups: %d\n", s.ActiveGroups)
	fmt.Fprintf(&b, "🔥 Streak: %d %s", s.CurrentStreak, plural(s.CurrentStreak, "day", "days"))
	return b.String()
}

func formatSession(s *domain.SessionSummary, now time.Time, loc *time.Location) string {
	day := domain.Day{Date: domain.CalendarDate(s.CreatedAt, loc)}
	started := s.CreatedAt.In(loc).Format("15:04")

	total := s.CorrectCount + s.WrongCount
	return fmt.Sprintf("🕘 Last session\n\n%s, %s at %s\n✅ Correct: %d\n❌ Wrong: %d\n📝 Reviewed: %d",
		s.ActivityName, day.DisplayString(domain.CalendarDate(now, loc)), started,
		s.CorrectCount, s.WrongCount, total)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
