package enum

// ── Group A: Roles (CHECK constrained in DB) ──

const (
	UserRoleOwner   = "OWNER"
	UserRoleManager = "MANAGER"
	UserRoleServer  = "SERVER"
	UserRoleKitchen = "KITCHEN"
)

// ── Group B: Floor UI item vocabulary (client-side, never persisted) ──

const (
	UIItemHeld    = "held"
	UIItemSent    = "sent"
	UIItemCooking = "cooking"
	UIItemReady   = "ready"
	UIItemServed  = "served"
	UIItemVoid    = "void"
)

// ── Group C: Session audit trail event types ──

const (
	EventGuestSeated       = "guest_seated"
	EventCourseFired       = "course_fired"
	EventItemStatusChanged = "item_status_changed"
	EventPaymentCompleted  = "payment_completed"
	EventSessionClosed     = "session_closed"
)

// ── Group D: Configurable labels (no DB constraint) ──

const (
	SessionSourceWalkIn      = "walk_in"
	SessionSourceReservation = "reservation"
)

const (
	CloseReasonManagerOverride = "manager_override"
)
