package notify

import (
	"fmt"

	"github.com/mesa-pos/terminal/internal/enum"
)

// NotifyLowStock raises a low-stock alert for an ingredient. A no-op while
// notifications are disabled. The store does not deduplicate; callers track
// which ingredients they have already announced this session.
func (in *Inbox) NotifyLowStock(name string, currentStock float64, unit string, refID int64) {
	if !in.Enabled() {
		return
	}
	in.Add(
		enum.NotificationLowStock,
		"Low stock: "+name,
		fmt.Sprintf("%s is down to %g %s", name, currentStock, unit),
		refData(refID),
	)
}

// NotifyOutOfStock raises an out-of-stock alert for an ingredient. A no-op
// while notifications are disabled.
func (in *Inbox) NotifyOutOfStock(name string, refID int64) {
	if !in.Enabled() {
		return
	}
	in.Add(
		enum.NotificationOutOfStock,
		"Out of stock: "+name,
		name+" has run out",
		refData(refID),
	)
}

func refData(refID int64) map[string]string {
	if refID == 0 {
		return nil
	}
	return map[string]string{"ingredientId": fmt.Sprintf("%d", refID)}
}
