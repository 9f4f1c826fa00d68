package entity

// BusinessProfile is the per-account metadata used to brand invoices.
// One profile per authenticated account email. The category selects which
// navigation variant the console presents (e.g. the trading-journal set);
// that is a display concern, not a data invariant.
type BusinessProfile struct {
	BusinessName     string `json:"business_name"`
	BusinessEmail    string `json:"business_email"`
	BusinessMobile   string `json:"business_mobile"`
	BusinessAddress  string `json:"business_address"`
	BusinessCategory string `json:"business_category"`
	LogoURL          string `json:"logo_url"`
	StampURL         string `json:"stamp_url"`
}

// Business categories offered by the profile form.
const (
	CategoryRetail      = "Retail Shop"
	CategoryWholesale   = "Wholesale Shop"
	CategoryService     = "Service"
	CategoryAgriculture = "Agriculture Shop"
	CategoryShareMarket = "Share Market"
	CategoryOther       = "Other"
)
