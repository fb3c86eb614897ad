package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisadapter "bhasaconnect/internal/adapters/redis"
	"bhasaconnect/internal/adapters/restapi"
	"bhasaconnect/internal/adapters/storage"
	"bhasaconnect/internal/config"
	discoveryapp "bhasaconnect/internal/core/discovery/service"
	"bhasaconnect/internal/core/feed"
	feedapp "bhasaconnect/internal/core/feed/service"
	sessionapp "bhasaconnect/internal/core/session/service"
	"bhasaconnect/internal/ports/authapi"
	"bhasaconnect/internal/ports/tokenstore"
	"bhasaconnect/internal/workers"

	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	config.Init() // بارگذاری تنظیمات از .env

	// انتخاب ذخیره‌سازی توکن: فایل یا Redis
	var store tokenstore.TokenStore
	if os.Getenv("TOKEN_STORE") == "redis" {
		config.InitRedis()
		defer closeResources(config.Logger)
		store = redisadapter.NewTokenStoreRedis(config.RedisClient)
	} else {
		store = storage.NewFileStore(os.Getenv("STORAGE_PATH"))
	}

	client := restapi.NewClient(os.Getenv("API_BASE_URL"))                      // کلاینت مشترک HTTP
	authGateway := restapi.NewAuthGatewayREST(client)                           // آداپتر خروجی
	postsSvc := restapi.NewPostsServiceREST(client)                             // آداپتر خروجی
	usersSvc := restapi.NewUsersServiceREST(client)                             // آداپتر خروجی
	sessionSvc := sessionapp.NewSessionService(authGateway, store, client, config.Logger) // یوزکیس/سرویس
	feedSvc := feedapp.NewFeedService(postsSvc, feed.KindAll, "", config.Logger)
	discoverySvc := discoveryapp.NewDiscoveryService(usersSvc, config.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// بازسازی session از ذخیره‌سازی پایدار
	sessionSvc.Initialize(ctx)

	// ورود با کاربر دمو اگر تنظیم شده باشد
	if email := os.Getenv("DEMO_EMAIL"); email != "" && !sessionSvc.IsAuthenticated() {
		creds := authapi.Credentials{Email: email, Password: os.Getenv("DEMO_PASSWORD")}
		if err := sessionSvc.Login(ctx, creds); err != nil {
			config.Logger.Fatal("Login failed:", zap.Error(err))
		}
	}

	// اجرای worker در پس‌زمینه
	refreshWorker := workers.NewRefreshWorker(sessionSvc, 30*time.Second, 5*time.Minute, config.Logger)
	go refreshWorker.Run(ctx)

	// TEST
	testFlow(ctx, config.Logger, sessionSvc, feedSvc, discoverySvc)
	// End TEST

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	config.Logger.Info("Shutting down")
}

// closeResources بستن اتصال به Redis
func closeResources(logger *zap.Logger) {
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection:", zap.Error(err))
	}
}

func testFlow(ctx context.Context, logger *zap.Logger, sessionSvc *sessionapp.SessionService, feedSvc *feedapp.FeedService, discoverySvc *discoveryapp.DiscoveryService) {
	snapshot := sessionSvc.Snapshot()
	if !snapshot.IsAuthenticated {
		logger.Info("Not authenticated, skipping demo flow")
		return
	}

	logger.Info("🚀 Starting demo flow", zap.String("user", snapshot.User.FullName()))

	// 1️⃣ بارگذاری فید
	if err := feedSvc.Load(ctx); err != nil {
		logger.Error("❌ Error loading feed", zap.Error(err))
		return
	}
	posts := feedSvc.Items()
	logger.Info("✅ Feed loaded", zap.Int("count", len(posts)))
	for _, p := range posts {
		logger.Info("📝 Post", zap.String("ID", p.ID), zap.String("author", p.Author.FullName()), zap.Int("likes", p.LikesCount))
	}

	// 2️⃣ لایک خوش‌بینانه روی اولین پست
	if len(posts) > 0 {
		if err := feedSvc.ToggleLike(ctx, posts[0].ID); err != nil {
			logger.Error("❌ Error liking post", zap.Error(err))
		} else {
			logger.Info("✅ Toggled like", zap.String("postID", posts[0].ID))
		}
	}

	// 3️⃣ جستجوی کاربران
	if err := discoverySvc.Search(ctx, "an"); err != nil {
		logger.Error("❌ Error searching users", zap.Error(err))
		return
	}
	logger.Info("✅ Search completed", zap.Int("count", len(discoverySvc.Results())))
}
