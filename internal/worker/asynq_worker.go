package worker

import (
	"context"
	"errors"

	"github.com/flipcart-next/internal/logger"
	"github.com/flipcart-next/internal/models"
	"github.com/flipcart-next/internal/provider"
	"github.com/flipcart-next/internal/queue"
	"github.com/flipcart-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCartConsolidate, c.handleCartConsolidate)
}

func (c *Consumer) handleCartConsolidate(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || c.CartService == nil || task == nil {
		logger.Debugw("worker_cart_consolidate_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCartConsolidatePayload(task)
	if err != nil {
		logger.Warnw("worker_cart_consolidate_unmarshal_failed", "error", err)
		// 载荷损坏重试也无意义
		return errors.Join(err, asynq.SkipRetry)
	}
	userID, _ := models.ParseEntityID(payload.UserID)
	if userID.IsZero() {
		logger.Debugw("worker_cart_consolidate_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if err := c.CartService.Consolidate(ctx, userID); err != nil {
		if errors.Is(err, service.ErrCartInvalid) {
			return nil
		}
		logger.Warnw("worker_cart_consolidate_failed", "user_id", userID, "error", err)
		return err
	}
	return nil
}
