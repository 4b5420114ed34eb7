// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rehablog_backend/internal/feature/auth/domain/entity"
	"rehablog_backend/internal/feature/auth/usecase"
	"rehablog_backend/internal/platform/token"
)

// invalidCredentialsMessage は認証失敗時の汎用メッセージです。
// ユーザー未検出とパスワード不一致で文言を変えてはいけません。
const invalidCredentialsMessage = "invalid username or password"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、自動ログインのセッションを返します。
	Register(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error)
	// Login はユーザーを認証し、成功時に新しいセッションを返します。
	Login(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error)
	// Logout は指定されたセッションを無効化します（冪等）。
	Logout(ctx context.Context, sessionID string) error
}

// TokenManager はセッションCookie用の署名付きトークンを発行・検証します。
type TokenManager interface {
	Issue(sessionID string) (string, error)
	Parse(tokenStr string) (string, error)
}

// CookieConfig はセッションCookieの属性を保持します。
type CookieConfig struct {
	MaxAge int // 秒
	Secure bool
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// フォームPOSTを受け付け、成功時はリダイレクト、失敗時はフォームを再描画します。
type AuthHandler struct {
	auth   AuthUsecase
	tokens TokenManager
	cookie CookieConfig
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, tokens TokenManager, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, cookie: cookie}
}

// clientInfo はリクエストから監査用のクライアント情報を抽出します。
func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// setSessionCookie は署名付きセッショントークンをHTTP Only Cookieに設定します。
func (h *AuthHandler) setSessionCookie(c *gin.Context, signed string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(token.SessionCookie, signed, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
}

// clearSessionCookie はセッションCookieを削除します。
func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(token.SessionCookie, "", -1, "/", "", h.cookie.Secure, true)
}

// establishSession はセッションIDからCookieを発行し、ダッシュボードへリダイレクトします。
func (h *AuthHandler) establishSession(c *gin.Context, sessionID string) bool {
	signed, err := h.tokens.Issue(sessionID)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return false
	}
	h.setSessionCookie(c, signed)
	c.Redirect(http.StatusFound, "/")
	return true
}

// ShowRegister は登録フォームを描画します。
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register はユーザー登録を処理します。
// - ユーザー名・パスワード欠落時は400でフォームを再描画
// - ユーザー名重複時は409でフォームを再描画
// - 成功時はセッションを確立（自動ログイン）してリダイレクト
func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	session, err := h.auth.Register(c.Request.Context(), username, password, clientInfo(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingCredentials):
			c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": err.Error()})
		case errors.Is(err, usecase.ErrUsernameTaken):
			slog.Warn("registration with taken username", "username", username, "remote_addr", c.ClientIP())
			c.HTML(http.StatusConflict, "register.html", gin.H{"Error": "username already taken"})
		default:
			slog.Error("registration failed", "error", err, "remote_addr", c.ClientIP())
			c.String(http.StatusInternalServerError, "internal error")
		}
		return
	}

	slog.Info("user registered", "username", username, "remote_addr", c.ClientIP())
	h.establishSession(c, session.ID)
}

// ShowLogin はログインフォームを描画します。
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login はユーザーログインを処理します。
// - 認証失敗時は401で汎用メッセージとともにフォームを再描画
// - 成功時はセッションCookieを設定してリダイレクト
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	session, err := h.auth.Login(c.Request.Context(), username, password, clientInfo(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// 失敗理由を公開しない
			slog.Warn("login failed", "username", username, "remote_addr", c.ClientIP())
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": invalidCredentialsMessage})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	slog.Info("user login successful", "username", username, "remote_addr", c.ClientIP())
	h.establishSession(c, session.ID)
}

// Logout は現在のセッションを無効化し、ログインページへリダイレクトします。
// 既に無効なセッションでもエラーにしません（冪等）。
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(token.SessionCookie); err == nil && cookie != "" {
		if sessionID, err := h.tokens.Parse(cookie); err == nil {
			if err := h.auth.Logout(c.Request.Context(), sessionID); err != nil {
				slog.Error("logout failed", "error", err)
			}
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, token.LoginPath)
}
