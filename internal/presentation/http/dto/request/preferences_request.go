package request

// PreferencesRequest represents a preferences update request
type PreferencesRequest struct {
	Theme            string `json:"theme" binding:"required"`
	BusinessCategory string `json:"business_category"`
}
