package steam

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/steamnick/nick-batcher/internal/model"
)

// Friends page selectors
const (
	friendBlockSelector  = "[data-steamid]"
	nicknameTextSelector = ".player_nickname"
)

// Friend is one entry scraped from the rendered friends page.
type Friend struct {
	SteamID  string
	Nickname string // displayed nickname, empty when none is assigned
}

// Friends fetches the rendered friends page of the given profile and scrapes
// the friend blocks and their displayed nicknames. The service renders
// nicknames wrapped in parentheses; the wrapping is stripped here.
func (c *Client) Friends(ctx context.Context, steamID string) ([]Friend, error) {
	resp, err := c.get(ctx, fmt.Sprintf(friendsPathFormat, steamID))
	if err != nil {
		return nil, fmt.Errorf("fetch friends page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse friends page: %w", err)
	}

	return scrapeFriends(doc), nil
}

// scrapeFriends extracts friends from a parsed friends page document.
func scrapeFriends(doc *goquery.Document) []Friend {
	var friends []Friend
	seen := make(map[string]bool)

	doc.Find(friendBlockSelector).Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("data-steamid")
		if !model.ValidSteamID(id) || seen[id] {
			return
		}
		seen[id] = true

		nick := strings.TrimSpace(sel.Find(nicknameTextSelector).First().Text())
		nick = strings.TrimPrefix(nick, "(")
		nick = strings.TrimSuffix(nick, ")")

		friends = append(friends, Friend{SteamID: id, Nickname: nick})
	})

	return friends
}
