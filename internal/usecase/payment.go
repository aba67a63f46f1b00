package usecase

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// ケニアの携帯番号（07xx / 254xxx / +254xxx を許容）
var mpesaPhoneRe = regexp.MustCompile(`^(?:254|\+254|0)?(7[0-9]{8})$`)

var cardExpiryRe = regexp.MustCompile(`^\d{2}/\d{2}$`)

func ValidMpesaPhone(phone string) bool {
	return mpesaPhoneRe.MatchString(strings.TrimSpace(phone))
}

type CardDetails struct {
	Number string
	Name   string
	Expiry string
	CVC    string
}

// ValidateCardDetails は最初に見つけた違反を返す。
func ValidateCardDetails(c CardDetails) error {
	number := strings.ReplaceAll(strings.TrimSpace(c.Number), " ", "")
	if len(number) < 16 {
		return NewHTTPError(http.StatusBadRequest, "invalid card number")
	}
	if strings.TrimSpace(c.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "card holder name required")
	}
	if !cardExpiryRe.MatchString(strings.TrimSpace(c.Expiry)) {
		return NewHTTPError(http.StatusBadRequest, "invalid expiry date (MM/YY)")
	}
	if len(strings.TrimSpace(c.CVC)) < 3 {
		return NewHTTPError(http.StatusBadRequest, "invalid cvc")
	}
	return nil
}

// PaymentSimulator はプロバイダ往復の代役。
// 入力が正しければ必ず成功する（spec上、失敗もリトライも無い）。
type PaymentSimulator interface {
	ProcessMpesa(ctx context.Context) error
	ProcessCard(ctx context.Context) error
}

// DelayPaymentSimulator は固定待ちで決済を模す。
// M-Pesaは「リクエスト送信→確認」の2段待ち、カードは1段。
type DelayPaymentSimulator struct {
	MpesaRequestDelay time.Duration
	MpesaConfirmDelay time.Duration
	CardDelay         time.Duration
}

func (s *DelayPaymentSimulator) ProcessMpesa(ctx context.Context) error {
	time.Sleep(s.MpesaRequestDelay)
	// ここで実プロバイダなら端末にプッシュが届く
	time.Sleep(s.MpesaConfirmDelay)
	return nil
}

func (s *DelayPaymentSimulator) ProcessCard(ctx context.Context) error {
	time.Sleep(s.CardDelay)
	return nil
}
