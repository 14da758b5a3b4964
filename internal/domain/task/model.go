package task

import (
	"time"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

type Task struct {
	ID          string             `db:"id" json:"id"`
	CompanyID   string             `db:"company_id" json:"company_id"`
	Title       string             `db:"title" json:"title"`
	Description string             `db:"description" json:"description,omitempty"`
	TaskStatus  types.TaskStatus   `db:"task_status" json:"task_status"`
	Priority    types.TaskPriority `db:"priority" json:"priority"`
	DueDate     *time.Time         `db:"due_date" json:"due_date,omitempty"`
	types.BaseModel
}
