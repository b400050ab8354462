package links

import "testing"

func TestResolve(t *testing.T) {
	r := NewDeepLinkResolver()

	tests := []struct {
		url      string
		action   Action
		username string
	}{
		{"https://t.me/joinchat/ABCDEF123", ActionJoinByInvite, ""},
		{"https://t.me/+ABCDEF123", ActionJoinByInvite, ""},
		{"http://telegram.me/joinchat/xyz", ActionJoinByInvite, ""},
		{"https://telegram.dog/c/1234567/89", ActionPrivatePost, ""},
		{"https://t.me/foonews/120", ActionMessagePermalink, "foonews"},
		{"https://t.me/foonews", ActionResolveByUsername, "foonews"},
		{"https://T.ME/foonews", ActionResolveByUsername, "foonews"},

		{"https://example.com/foonews", ActionNone, ""},
		{"ftp://t.me/foonews", ActionNone, ""},
		{"tg://resolve?domain=foonews", ActionNone, ""},
		{"https://t.me/", ActionNone, ""},
		{"https://t.me/joinchat", ActionNone, ""},
		{"https://t.me/c/abc/89", ActionNone, ""},
		{"://bad url", ActionNone, ""},
	}

	for _, tt := range tests {
		got := r.Resolve(tt.url)
		if got.Action != tt.action {
			t.Errorf("Resolve(%q).Action = %q, want %q", tt.url, got.Action, tt.action)
		}
		if tt.action == ActionResolveByUsername && got.Username != tt.username {
			t.Errorf("Resolve(%q).Username = %q, want %q", tt.url, got.Username, tt.username)
		}
	}
}
