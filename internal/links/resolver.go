package links

import (
	"net/url"
	"strings"
)

// Action is the canonical meaning of a recognized deep link.
type Action string

const (
	ActionNone              Action = "none"
	ActionJoinByInvite      Action = "join-by-invite"
	ActionMessagePermalink  Action = "permalink-to-message"
	ActionPrivatePost       Action = "private-post"
	ActionResolveByUsername Action = "resolve-by-username"
)

// Resolution is the outcome of resolving one URL. Username is set for
// ActionResolveByUsername only.
type Resolution struct {
	Action   Action
	Username string
}

// Resolver turns a raw URL into its canonical action. The host may supply
// its own; DeepLinkResolver is the offline default.
type Resolver interface {
	Resolve(rawURL string) Resolution
}

// Hosts recognized as the Telegram link service.
var recognizedHosts = map[string]bool{
	"t.me":         true,
	"telegram.me":  true,
	"telegram.dog": true,
}

// DeepLinkResolver resolves t.me-style links without any network access.
type DeepLinkResolver struct{}

func NewDeepLinkResolver() *DeepLinkResolver {
	return &DeepLinkResolver{}
}

func (r *DeepLinkResolver) Resolve(rawURL string) Resolution {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Resolution{Action: ActionNone}
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return Resolution{Action: ActionNone}
	}
	if !recognizedHosts[strings.ToLower(u.Hostname())] {
		return Resolution{Action: ActionNone}
	}

	parts := splitPath(u.Path)
	if len(parts) == 0 {
		return Resolution{Action: ActionNone}
	}

	first := parts[0]
	switch {
	case strings.HasPrefix(first, "+"):
		return Resolution{Action: ActionJoinByInvite}
	case strings.EqualFold(first, "joinchat"):
		if len(parts) < 2 {
			return Resolution{Action: ActionNone}
		}
		return Resolution{Action: ActionJoinByInvite}
	case strings.EqualFold(first, "c"):
		if len(parts) < 3 || !isNumeric(parts[1]) || !isNumeric(parts[2]) {
			return Resolution{Action: ActionNone}
		}
		return Resolution{Action: ActionPrivatePost}
	}

	if len(parts) >= 2 && isNumeric(parts[1]) {
		return Resolution{Action: ActionMessagePermalink, Username: first}
	}

	return Resolution{Action: ActionResolveByUsername, Username: first}
}

func splitPath(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
