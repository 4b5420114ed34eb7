package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"rehablog_backend/internal/app/di"
	"rehablog_backend/internal/app/router"
	authadapters "rehablog_backend/internal/feature/auth/adapters"
	authhandler "rehablog_backend/internal/feature/auth/transport/handler"
	authusecase "rehablog_backend/internal/feature/auth/usecase"
	rehabadapters "rehablog_backend/internal/feature/rehablog/adapters"
	rehabhandler "rehablog_backend/internal/feature/rehablog/transport/handler"
	rehabusecase "rehablog_backend/internal/feature/rehablog/usecase"
	"rehablog_backend/internal/platform/config"
	platformdb "rehablog_backend/internal/platform/db"
	"rehablog_backend/internal/platform/metrics"
	platformredis "rehablog_backend/internal/platform/redis"
	"rehablog_backend/internal/platform/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// db
	db := platformdb.Open(cfg)

	// Redis（未設定・接続不可ならSQLセッションストアにフォールバック）
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := platformredis.NewRedisClient(cfg); err != nil {
			log.Println("[WARN] Redis unavailable. Falling back to SQL session store.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	logRepo := rehabadapters.NewLogGorm(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, cfg.SessionTTL)
	logUC := rehabusecase.NewLogUsecase(logRepo)

	// セッションCookie署名とガード
	tokens := token.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	guard := token.RequireSession(tokens, authUC)

	// Handler
	cookie := authhandler.CookieConfig{
		MaxAge: int(cfg.SessionTTL.Seconds()),
		Secure: cfg.CookieSecure,
	}
	authH := authhandler.NewAuthHandler(authUC, tokens, cookie)
	logH := rehabhandler.NewLogHandler(logUC)

	// ルータ生成
	r := router.NewRouter(authH, logH, guard, metrics.NewCollector())

	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal(err)
	}
}
