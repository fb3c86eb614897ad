package workers

import (
	"context"
	"time"

	sessionapp "bhasaconnect/internal/core/session/service"

	"go.uber.org/zap"
)

// RefreshWorker توکن دسترسی را قبل از انقضا تازه می‌کند
type RefreshWorker struct {
	Session  *sessionapp.SessionService
	Interval time.Duration // فاصله بررسی
	Window   time.Duration // چقدر قبل از انقضا refresh بزنیم
	Logger   *zap.Logger
}

func NewRefreshWorker(session *sessionapp.SessionService, interval, window time.Duration, logger *zap.Logger) *RefreshWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &RefreshWorker{
		Session:  session,
		Interval: interval,
		Window:   window,
		Logger:   logger,
	}
}

// Run حلقه بررسی تا لغو context
func (w *RefreshWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 RefreshWorker started")
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 Refresh worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *RefreshWorker) tick(ctx context.Context) {
	if !w.Session.HasRefreshToken() {
		return
	}

	exp, ok := w.Session.TokenExpiry()
	if !ok {
		return
	}
	if time.Until(exp) > w.Window {
		return
	}

	w.Logger.Info("➡ Access token close to expiry, refreshing", zap.Time("expiresAt", exp))
	if err := w.Session.Refresh(ctx); err != nil {
		// شکست refresh یعنی session پاک شده؛ حلقه ادامه می‌دهد
		w.Logger.Error("❌ Error refreshing token:", zap.Error(err))
		return
	}
	w.Logger.Info("✅ Access token refreshed")
}
