package constants

import "time"

// Date formats accepted on the wire
const (
	DateLayout = "2006-01-02"
)

// Cache keys
const (
	CacheKeyRoomList         = "rooms:list"
	CacheKeyDashboardSummary = "dashboard:summary"
	CacheKeyAvailablePrefix  = "rooms:available:"
)

// Cache lifetimes
const (
	RoomListTTL         = 10 * time.Minute
	AvailableRoomsTTL   = 2 * time.Minute
	DashboardSummaryTTL = 5 * time.Minute
)

// Context keys set by middleware
const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextRequestID = "requestID"
)

const HeaderRequestID = "X-Request-ID"
