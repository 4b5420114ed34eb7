package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rehablog_backend/internal/app/web"
	authhandler "rehablog_backend/internal/feature/auth/transport/handler"
	rehabhandler "rehablog_backend/internal/feature/rehablog/transport/handler"
	"rehablog_backend/internal/platform/http/handler"
	"rehablog_backend/internal/platform/metrics"
)

// requestIDHeader is echoed back so responses can be correlated with logs.
const requestIDHeader = "X-Request-ID"

// requestID はリクエストごとにIDを採番してレスポンスヘッダーに設定します。
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func NewRouter(auth *authhandler.AuthHandler, logs *rehabhandler.LogHandler,
	guard gin.HandlerFunc, collector *metrics.Collector) *gin.Engine {
	r := gin.Default()
	// CORS のデフォルト設定を有効
	r.Use(cors.Default())
	r.Use(requestID())
	r.Use(collector.Middleware())
	r.SetHTMLTemplate(web.Templates())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// Prometheusメトリクス
	r.GET("/metrics", gin.WrapH(collector.Handler()))
	// 案内ページ
	r.GET("/about", handler.About)
	// 新規ユーザー登録（成功時は自動ログイン）
	r.GET("/register", auth.ShowRegister)
	r.POST("/register", auth.Register)
	// ログイン（セッションCookie発行）
	r.GET("/login", auth.ShowLogin)
	r.POST("/login", auth.Login)

	// 認証必須のルート
	// guard（セッションガード）未通過のリクエストは /login へリダイレクトされる
	protected := r.Group("/")
	protected.Use(guard)
	{
		protected.GET("/", logs.Dashboard)
		protected.GET("/dashboard", logs.Dashboard)
		protected.GET("/logout", auth.Logout)
		protected.POST("/add-log", logs.Add)
		protected.GET("/delete-log/:id", logs.Delete)
	}

	return r
}
