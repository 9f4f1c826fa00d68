package backend

import (
	"context"
	"net/url"

	"mims-console/internal/domain/entity"
)

type profileWire struct {
	BusinessName     string `json:"businessName"`
	BusinessEmail    string `json:"businessEmail"`
	BusinessMobile   string `json:"businessMobile"`
	BusinessAddress  string `json:"businessAddress"`
	BusinessCategory string `json:"businessCategory"`
	BusinessLogo     string `json:"businessLogo"`
	BusinessStamp    string `json:"businessStamp"`
}

// GetBusinessProfile fetches the profile for an account email. A 404
// means the account has not completed the profile-creation flow yet;
// callers must treat that as distinct from unauthenticated.
func (c *Client) GetBusinessProfile(ctx context.Context, email string) (*entity.BusinessProfile, error) {
	var wire profileWire
	if err := c.getJSON(ctx, "/business-profile/"+url.PathEscape(email), &wire); err != nil {
		return nil, err
	}
	return &entity.BusinessProfile{
		BusinessName:     wire.BusinessName,
		BusinessEmail:    wire.BusinessEmail,
		BusinessMobile:   wire.BusinessMobile,
		BusinessAddress:  wire.BusinessAddress,
		BusinessCategory: wire.BusinessCategory,
		LogoURL:          wire.BusinessLogo,
		StampURL:         wire.BusinessStamp,
	}, nil
}

// ProfileInput carries the profile fields plus optional logo/stamp assets.
type ProfileInput struct {
	Profile entity.BusinessProfile
	Logo    *FilePart
	Stamp   *FilePart
}

// SaveBusinessProfile creates or replaces the profile. Assets travel as
// multipart file parts; everything else as form fields.
func (c *Client) SaveBusinessProfile(ctx context.Context, in ProfileInput) error {
	fields := map[string]string{
		"businessName":     in.Profile.BusinessName,
		"businessEmail":    in.Profile.BusinessEmail,
		"businessMobile":   in.Profile.BusinessMobile,
		"businessAddress":  in.Profile.BusinessAddress,
		"businessCategory": in.Profile.BusinessCategory,
	}
	files := map[string]FilePart{}
	if in.Logo != nil {
		files["businessLogo"] = *in.Logo
	}
	if in.Stamp != nil {
		files["businessStamp"] = *in.Stamp
	}
	return c.postMultipart(ctx, "/business-profile/"+url.PathEscape(in.Profile.BusinessEmail), fields, files, nil)
}
