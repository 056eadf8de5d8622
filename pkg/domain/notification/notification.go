package notification

import "errors"

// Notification types. Types without a dedicated email template render
// with the default template.
const (
	TypeWelcome    = "welcome"
	TypeBid        = "bid_notification"
	TypeOutbid     = "outbid"
	TypeAuctionEnd = "auction_end"
	TypeWin        = "win_notification"
)

// ErrNotificationNotFound is returned when a notification cannot be
// found for the requesting user.
var ErrNotificationNotFound = errors.New("notification not found")
