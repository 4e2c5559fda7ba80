package queue

import (
	"encoding/json"

	"github.com/flipcart-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCartConsolidate 合并同一用户多个购物车文档
	TaskCartConsolidate = constants.TaskCartConsolidate
)

// CartConsolidatePayload 购物车合并任务载荷
type CartConsolidatePayload struct {
	UserID string `json:"user_id"`
}

// NewCartConsolidateTask 创建购物车合并任务
func NewCartConsolidateTask(payload CartConsolidatePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartConsolidate, body), nil
}

// ParseCartConsolidatePayload 解析购物车合并任务载荷
func ParseCartConsolidatePayload(task *asynq.Task) (CartConsolidatePayload, error) {
	var payload CartConsolidatePayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
