package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"soko/internal/domain/model"
	repo "soko/internal/repository"
)

// TokenIssuer はJWTの発行だけを約束する（実装はmainで注入）。
type TokenIssuer interface {
	Issue(subjectID string, role model.Role, now time.Time) (string, time.Time, error)
}

// AuthUsecase はログインのスタブ。
// クライアントの申告をそのまま信じてトークンを発行する。
// パスワードも登録も無い（認可設計はこのシステムの範囲外）。
type AuthUsecase struct {
	sellerRepo repo.SellerRepository
	issuer     TokenIssuer
	idGen      IDGenerator
	clock      Clock
}

func NewAuthUsecase(sellerRepo repo.SellerRepository, issuer TokenIssuer, idGen IDGenerator, clock Clock) *AuthUsecase {
	return &AuthUsecase{sellerRepo: sellerRepo, issuer: issuer, idGen: idGen, clock: clock}
}

type LoginInput struct {
	Name       string
	Role       string
	SellerID   string // role=seller のとき必須
	CustomerID string // 任意。再ログインで同じカートに戻るため
}

type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	role, ok := model.ParseRole(in.Role)
	if !ok {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	var subject string
	switch role {
	case model.RoleSeller:
		if in.SellerID == "" {
			return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "seller_id required")
		}
		//出品者は実在チェックだけする
		if _, err := u.sellerRepo.FindByID(ctx, in.SellerID); err != nil {
			if err == repo.ErrNotFound {
				return LoginOutput{}, NewHTTPError(http.StatusNotFound, "seller not found")
			}
			return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		subject = in.SellerID
	default:
		subject = in.CustomerID
		if subject == "" {
			subject = u.idGen.NewID()
		}
	}

	token, expiresAt, err := u.issuer.Issue(subject, role, u.clock.Now())
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    subject,
		Name:      strings.TrimSpace(in.Name),
		Role:      string(role),
	}, nil
}
