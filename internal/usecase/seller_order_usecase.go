package usecase

import (
	"context"
	"net/http"

	"soko/internal/domain/model"
	"soko/internal/infra/events"
	repo "soko/internal/repository"
)

// SellerOrderUsecase は出品者側の注文管理。
type SellerOrderUsecase struct {
	tx        repo.TransactionManager
	publisher events.Publisher
}

func NewSellerOrderUsecase(tx repo.TransactionManager, publisher events.Publisher) *SellerOrderUsecase {
	return &SellerOrderUsecase{tx: tx, publisher: publisher}
}

type UpdateOrderStatusInput struct {
	Status string
}

func (u *SellerOrderUsecase) ListSellerOrders(ctx context.Context, sellerID string) ([]OrderOutput, error) {
	if sellerID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListBySellerID(ctx, sellerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// UpdateStatus はステータス遷移。前進のみ＋キャンセルのグラフを強制する。
// cancelled にするときは確保済み在庫を戻す。
func (u *SellerOrderUsecase) UpdateStatus(ctx context.Context, sellerID string, orderID string, in UpdateOrderStatusInput) error {
	if sellerID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus, ok := model.ParseOrderStatus(in.Status)
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var from model.OrderStatus
	changed := false

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//他の出品者の注文は「存在しない扱い」
		if o.SellerID != sellerID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}
		if !o.Status.CanTransition(newStatus) {
			return NewHTTPError(http.StatusBadRequest, "invalid status transition")
		}

		// キャンセル時だけ在庫を戻す
		if newStatus == model.OrderStatusCancelled {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			for _, it := range items {
				err := r.Products().IncreaseStock(ctx, it.ProductID, it.Quantity)
				if err == repo.ErrNotFound {
					// 商品がカタログから消えていたら戻し先が無い
					continue
				}
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		from = o.Status
		changed = true
		return nil
	})

	if err != nil {
		return err
	}

	if changed {
		u.publisher.OrderStatusUpdated(ctx, orderID, from, newStatus)
	}
	return nil
}
