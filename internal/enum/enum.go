package enum

// ── Roles (closed set, mirrored by authz.Role) ──

const (
	RoleAdmin            = "ADMIN"
	RoleChef             = "CHEF"
	RoleInventoryManager = "INVENTORY_MANAGER"
	RoleWaiter           = "WAITER"
)

// ── Notification types ──

const (
	NotificationLowStock   = "low-stock"
	NotificationOutOfStock = "out-of-stock"
	NotificationOrder      = "order"
	NotificationInfo       = "info"
	NotificationSuccess    = "success"
	NotificationError      = "error"
)

// ── Payment methods (configurable labels, no backend constraint) ──

const (
	PaymentMethodCash = "CASH"
	PaymentMethodCard = "CARD"
	PaymentMethodQR   = "QR"
)
