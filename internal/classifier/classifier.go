package classifier

import (
	"strings"

	"github.com/agnivade/levenshtein"
	log "github.com/sirupsen/logrus"

	"adfilter/internal/domain"
	"adfilter/internal/links"
)

// Config is read-only during evaluation; it is captured when the filter mode
// is enabled.
type Config struct {
	// MaxDistance is the edit-distance threshold at or below which a link
	// label is considered a self-reference to the owning chat.
	MaxDistance int

	// Verbose routes block diagnostics to the user-visible level instead of
	// debug.
	Verbose bool

	// AllowKnownChatLinks is declared configuration with no effect on
	// classification. See DESIGN.md.
	AllowKnownChatLinks bool
}

// DistanceFunc computes the edit distance between two strings. The host may
// supply its own; the default is levenshtein.ComputeDistance.
type DistanceFunc func(a, b string) int

// Classifier decides whether a message advertises a different chat than the
// one hosting it. It is pure over its inputs: chat metadata must already be
// cached, nothing here performs I/O.
type Classifier struct {
	cfg      Config
	resolver links.Resolver
	distance DistanceFunc
}

// New builds a Classifier. A nil resolver or distance selects the offline
// defaults.
func New(cfg Config, resolver links.Resolver, distance DistanceFunc) *Classifier {
	if resolver == nil {
		resolver = links.NewDeepLinkResolver()
	}
	if distance == nil {
		distance = levenshtein.ComputeDistance
	}

	return &Classifier{
		cfg:      cfg,
		resolver: resolver,
		distance: distance,
	}
}

// IsAdvert reports whether any link candidate in the message classifies as
// advert evidence. Short-circuits on the first hit.
func (c *Classifier) IsAdvert(msg *domain.Message, chat *domain.Chat) bool {
	cand, _, ok := c.Evidence(msg, chat)
	if !ok {
		return false
	}

	fields := log.Fields{
		"url":  cand.URL,
		"chat": chat.Title,
	}
	// Advisory only; the result does not depend on where this lands.
	if c.cfg.Verbose {
		log.WithFields(fields).Info("blocking advert link")
	} else {
		log.WithFields(fields).Debug("blocking advert link")
	}

	return true
}

// Evidence returns the first candidate that classifies as an advert together
// with its resolution. ok is false when the message is benign.
func (c *Classifier) Evidence(msg *domain.Message, chat *domain.Chat) (domain.LinkCandidate, links.Resolution, bool) {
	if chat == nil {
		return domain.LinkCandidate{}, links.Resolution{}, false
	}

	for _, cand := range links.Extract(msg) {
		if c.isAdvertLink(cand, chat) {
			return cand, c.resolver.Resolve(cand.URL), true
		}
	}

	return domain.LinkCandidate{}, links.Resolution{}, false
}

// isAdvertLink applies the per-candidate conditions in order, failing fast.
func (c *Classifier) isAdvertLink(cand domain.LinkCandidate, chat *domain.Chat) bool {
	// Label reads like the chat itself: not an outward advert.
	if c.distance(chat.Title, cand.Label) <= c.cfg.MaxDistance {
		return false
	}
	if chat.Username != "" && c.distance(chat.Username, cand.Label) <= c.cfg.MaxDistance {
		return false
	}

	// The chat discloses this link in its own cached description.
	if chat.Description != "" && strings.Contains(chat.Description, cand.URL) {
		return false
	}

	res := c.resolver.Resolve(cand.URL)
	switch res.Action {
	case links.ActionJoinByInvite, links.ActionPrivatePost, links.ActionMessagePermalink:
		return true
	case links.ActionResolveByUsername:
		// A link straight back to this chat is exempt.
		if chat.Username == "" {
			return true
		}
		return !strings.EqualFold(res.Username, chat.Username)
	default:
		return false
	}
}
