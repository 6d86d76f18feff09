package steam

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/steamnick/nick-batcher/internal/model"
)

// vanityProfile matches the fields we read from the vanity lookup response.
// The service answers with a <profile> document on success and a <response>
// document carrying <error> otherwise; omitting XMLName accepts both roots.
type vanityProfile struct {
	SteamID64 string `xml:"steamID64"`
	Error     string `xml:"error"`
}

// ResolveVanity resolves a vanity profile name to its canonical 17-digit
// identifier via the XML profile lookup.
func (c *Client) ResolveVanity(ctx context.Context, vanity string) (string, error) {
	resp, err := c.get(ctx, fmt.Sprintf(vanityPathFormat, url.PathEscape(vanity)))
	if err != nil {
		return "", fmt.Errorf("resolve vanity %q: %w", vanity, err)
	}
	defer resp.Body.Close()

	var profile vanityProfile
	if err := xml.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", fmt.Errorf("resolve vanity %q: decode response: %w", vanity, err)
	}

	if profile.Error != "" {
		return "", fmt.Errorf("resolve vanity %q: %s", vanity, profile.Error)
	}
	if !model.ValidSteamID(profile.SteamID64) {
		return "", fmt.Errorf("resolve vanity %q: response carries no canonical identifier", vanity)
	}
	return profile.SteamID64, nil
}
