package classifier

import (
	"fmt"

	"github.com/Knetic/govaluate"
	log "github.com/sirupsen/logrus"

	"adfilter/internal/domain"
)

// DefaultChatExpression selects channels that are not verified accounts.
const DefaultChatExpression = "channel && !verified"

// Gate restricts classification to chats matching a boolean expression over
// chat attributes. The expression is compiled once at construction.
type Gate struct {
	expr     string
	compiled *govaluate.EvaluableExpression
}

func NewGate(expr string) (*Gate, error) {
	if expr == "" {
		expr = DefaultChatExpression
	}

	compiled, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("compile chat expression %q: %w", expr, err)
	}

	return &Gate{expr: expr, compiled: compiled}, nil
}

// Matches reports whether the chat should be classified at all. Any
// evaluation problem fails open: the chat is left alone.
func (g *Gate) Matches(chat *domain.Chat) bool {
	if chat == nil {
		return false
	}

	params := map[string]interface{}{
		"channel":      chat.Kind == domain.ChatChannel,
		"group":        chat.Kind == domain.ChatGroup,
		"private":      chat.Kind == domain.ChatPrivate,
		"verified":     chat.Verified,
		"has_username": chat.Username != "",
		"title":        chat.Title,
		"username":     chat.Username,
	}

	result, err := g.compiled.Evaluate(params)
	if err != nil {
		log.WithError(err).Debugf("chat expression %q failed, skipping chat", g.expr)
		return false
	}

	matched, ok := result.(bool)
	if !ok {
		log.Debugf("chat expression %q is not boolean, skipping chat", g.expr)
		return false
	}

	return matched
}
