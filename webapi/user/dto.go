package user

// UpdateProfileInput carries the editable profile fields. Pointers
// distinguish "leave unchanged" from an explicit value.
type UpdateProfileInput struct {
	FullName              *string `json:"fullName" validate:"omitempty,max=255"`
	EmailNotifications    *bool   `json:"emailNotifications"`
	SMSNotifications      *bool   `json:"smsNotifications"`
	WhatsAppNotifications *bool   `json:"whatsAppNotifications"`
}

// TrackBehaviorInput logs one engagement action.
type TrackBehaviorInput struct {
	Action     string `json:"action" validate:"required,oneof=view click bid watch search"`
	AuctionID  *int64 `json:"auctionId"`
	CategoryID *int64 `json:"categoryId"`
	Query      string `json:"query" validate:"omitempty,max=255"`
}
