package enum

// ── Table state machine ──

const (
	TableStatusFree     = "free"
	TableStatusOccupied = "occupied"
	TableStatusReserved = "reserved"
)

// ── Staff roles (display labels, no access control behind them) ──

const (
	RoleWaiter  = "Официант"
	RoleManager = "Менеджер"
)

// ── WebSocket event types ──

const (
	EventTableCreated  = "table.created"
	EventTableDeleted  = "table.deleted"
	EventTableReserved = "table.reserved"
	EventTableReleased = "table.released"
	EventOrderCreated  = "order.created"
	EventOrderClosed   = "order.closed"
)

// ── Preference keys ──

const PrefDarkMode = "darkMode"
