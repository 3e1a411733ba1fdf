// Package conversation keeps the bounded question/answer history of a chat
// session.
package conversation

import (
	"slices"

	"github.com/google/uuid"

	"github.com/Veraticus/invoice-advisor/internal/service"
)

// DefaultMaxTurns is the stock number of retained turns.
const DefaultMaxTurns = 20

// Log is an append-only ordered list of turns. When it grows past its limit
// the oldest question/answer pairs are dropped. A Log is not safe for
// concurrent use.
type Log struct {
	sessionID string
	turns     []service.Turn
	maxTurns  int
}

// NewLog creates an empty log retaining at most maxTurns turns. Odd limits are
// rounded down so pairs stay together; limits below 2 use DefaultMaxTurns.
func NewLog(maxTurns int) *Log {
	if maxTurns < 2 {
		maxTurns = DefaultMaxTurns
	}
	return &Log{
		sessionID: uuid.NewString(),
		maxTurns:  maxTurns - maxTurns%2,
	}
}

// SessionID identifies the conversation.
func (l *Log) SessionID() string { return l.sessionID }

// MaxTurns returns the retention limit.
func (l *Log) MaxTurns() int { return l.maxTurns }

// AppendExchange records one answered question.
func (l *Log) AppendExchange(question, answer string) {
	l.turns = append(l.turns,
		service.Turn{Role: service.RoleUser, Content: question},
		service.Turn{Role: service.RoleAssistant, Content: answer},
	)
	if over := len(l.turns) - l.maxTurns; over > 0 {
		l.turns = slices.Delete(l.turns, 0, over)
	}
}

// Turns returns a copy of the retained turns, oldest first.
func (l *Log) Turns() []service.Turn {
	return slices.Clone(l.turns)
}

// Len returns the number of retained turns.
func (l *Log) Len() int { return len(l.turns) }

// Reset drops every turn and starts a new session.
func (l *Log) Reset() {
	l.turns = nil
	l.sessionID = uuid.NewString()
}
