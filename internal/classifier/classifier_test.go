package classifier

import (
	"testing"

	"adfilter/internal/domain"
)

func fooNews() *domain.Chat {
	return &domain.Chat{
		ID:          10,
		Kind:        domain.ChatChannel,
		Title:       "Foo News",
		Username:    "foonews",
		Description: "Daily news. Chat: t.me/foochat",
	}
}

func buttonMessage(label, url string) *domain.Message {
	return &domain.Message{
		ID:     "m1",
		ChatID: 10,
		Keyboard: &domain.Keyboard{
			Rows: [][]domain.Button{
				{{Kind: domain.ButtonURL, Text: label, URL: url}},
			},
		},
	}
}

func textLinkMessage(label, url string) *domain.Message {
	return &domain.Message{
		ID:     "m2",
		ChatID: 10,
		Text:   label,
		Entities: []domain.Entity{
			{Kind: domain.EntityURL, Label: label, URL: url},
		},
	}
}

func TestInviteLinkIsAdvert(t *testing.T) {
	c := New(Config{MaxDistance: 4}, nil, nil)

	msg := buttonMessage("Join", "https://t.me/joinchat/ABCDEF123")
	if !c.IsAdvert(msg, fooNews()) {
		t.Error("invite link with distant label should classify as advert")
	}
}

func TestSelfTitledLabelIsNotAdvert(t *testing.T) {
	c := New(Config{MaxDistance: 4}, nil, nil)

	msg := textLinkMessage("Foo News", "https://t.me/foonews")
	if c.IsAdvert(msg, fooNews()) {
		t.Error("label equal to chat title must never classify as advert")
	}
}

func TestLabelCloseToUsernameIsNotAdvert(t *testing.T) {
	c := New(Config{MaxDistance: 4}, nil, nil)

	// distance("foonews", "foo-news") = 1 <= 4
	msg := buttonMessage("foo-news", "https://t.me/joinchat/ABCDEF123")
	if c.IsAdvert(msg, fooNews()) {
		t.Error("label close to chat username must not classify as advert")
	}
}

func TestURLDisclosedInDescriptionIsNotAdvert(t *testing.T) {
	c := New(Config{MaxDistance: 4}, nil, nil)

	chat := fooNews()
	chat.Description = "Partners: https://t.me/joinchat/ABCDEF123"

	msg := buttonMessage("Join", "https://t.me/joinchat/ABCDEF123")
	if c.IsAdvert(msg, chat) {
		t.Error("link disclosed in the chat description must not classify as advert")
	}
}

func TestMissingDescriptionStillClassifies(t *testing.T) {
	c := New(Config{MaxDistance: 4}, nil, nil)

	chat := fooNews()
	chat.Description = ""

	msg := buttonMessage("Join", "https://t.me/joinchat/ABCDEF123")
	if !c.IsAdvert(msg, chat) {
		t.Error("absent description counts as not disclosed")
	}
}

func TestUnrecognizedHostIsNotAdvert(t *testing.T) {
	c := New(Config{MaxDistance: 4}, nil, nil)

	msg := buttonMessage("Click here now", "https://example.com/joinchat/ABCDEF123")
	if c.IsAdvert(msg, fooNews()) {
		t.Error("non-telegram URL must not classify as advert")
	}
}

func TestUsernameLinkSelfExemption(t *testing.T) {
	c := New(Config{MaxDistance: 4}, nil, nil)

	// Resolves to the chat's own username: exempt even with a distant label.
	self := textLinkMessage("click for the source", "https://t.me/FooNews")
	if c.IsAdvert(self, fooNews()) {
		t.Error("username link back to the owning chat must be exempt")
	}

	other := textLinkMessage("click for the source", "https://t.me/bargossip")
	if !c.IsAdvert(other, fooNews()) {
		t.Error("username link to a different chat should classify as advert")
	}
}

func TestUsernameLinkWhenChatHasNoUsername(t *testing.T) {
	c := New(Config{MaxDistance: 4}, nil, nil)

	chat := fooNews()
	chat.Username = ""

	msg := textLinkMessage("click for the source", "https://t.me/bargossip")
	if !c.IsAdvert(msg, chat) {
		t.Error("chat without a username has no self-link to be exempt")
	}
}

func TestAggregationAnyCandidate(t *testing.T) {
	c := New(Config{MaxDistance: 4}, nil, nil)

	msg := &domain.Message{
		ID:     "m3",
		ChatID: 10,
		Text:   "Foo News and friends",
		Entities: []domain.Entity{
			{Kind: domain.EntityURL, Label: "Foo News", URL: "https://t.me/foonews"},
			{Kind: domain.EntityURL, Label: "amazing deals", URL: "https://t.me/c/1234567/89"},
		},
	}

	if !c.IsAdvert(msg, fooNews()) {
		t.Error("one advert candidate among benign ones should classify the message")
	}
}

func TestNoCandidatesIsNotAdvert(t *testing.T) {
	c := New(Config{MaxDistance: 4}, nil, nil)

	if c.IsAdvert(&domain.Message{ID: "m4", ChatID: 10, Text: "hello"}, fooNews()) {
		t.Error("message without links must not classify as advert")
	}
	if c.IsAdvert(&domain.Message{ID: "m5", ChatID: 10}, fooNews()) {
		t.Error("empty message must not classify as advert")
	}
}

func TestCustomDistanceFunc(t *testing.T) {
	// A distance that declares everything a self-reference disables the
	// classifier entirely.
	c := New(Config{MaxDistance: 4}, nil, func(a, b string) int { return 0 })

	msg := buttonMessage("Join", "https://t.me/joinchat/ABCDEF123")
	if c.IsAdvert(msg, fooNews()) {
		t.Error("distance at threshold must not classify as advert")
	}
}
