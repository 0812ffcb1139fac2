package reconcile

import (
	"context"
	"strings"

	"github.com/oscoderuz/django-shablon/internal/constants"
	"github.com/oscoderuz/django-shablon/internal/models"
)

// ReconcileStatus 按库存修正商品状态，backorder 永不改写
func ReconcileStatus(quantity int, status string) string {
	switch {
	case quantity == 0 && status == constants.ProductStatusAvailable:
		return constants.ProductStatusOutOfStock
	case quantity > 0 && status == constants.ProductStatusOutOfStock:
		return constants.ProductStatusAvailable
	default:
		return status
	}
}

// AvailabilityReconciler 库存状态对账钩子
type AvailabilityReconciler struct{}

// Name 钩子名称
func (AvailabilityReconciler) Name() string {
	return "availability_reconciler"
}

// BeforeSave 提交前修正状态
func (AvailabilityReconciler) BeforeSave(_ context.Context, _ Store, product *models.Product) error {
	if product == nil {
		return nil
	}
	if strings.TrimSpace(product.Status) == "" {
		product.Status = constants.ProductStatusAvailable
	}
	product.Status = ReconcileStatus(product.Quantity, product.Status)
	return nil
}
