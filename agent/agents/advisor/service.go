package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
	nodex "github.com/tanpawarit/Chative-College-Advisor/agent/nodes"
	statex "github.com/tanpawarit/Chative-College-Advisor/agent/state"
)

var ErrInvalidMessage = nodex.ErrInvalidMessage

const (
	StartGreeting = "Hello! I'm your AI College Recommender. Tell me about your academic interests, skills, desired major, preferred college rank, or anything else to help me find the best institutes for you."
	ResetGreeting = "Chat has been reset! How can I help you today?"

	apologyFormat = "I apologize, I encountered an error: %v. Please try again or rephrase your request."
)

type Config struct {
	MaxToolHops int `envconfig:"MAX_TOOL_HOPS" split_words:"true" default:"1"`
}

// Advisor runs conversation turns: user text goes to the model, a requested
// tool is dispatched locally and its result is sent back on the same session.
type Advisor struct {
	gateway     contractx.Gateway
	tools       contractx.ToolDispatcher
	maxToolHops int

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(gateway contractx.Gateway, tools contractx.ToolDispatcher, cfg Config) (*Advisor, error) {
	if gateway == nil {
		return nil, errors.New("model gateway is required")
	}
	if tools == nil {
		return nil, errors.New("tool dispatcher is required")
	}

	maxToolHops := cfg.MaxToolHops
	if maxToolHops <= 0 {
		maxToolHops = 1
	}

	a := &Advisor{
		gateway:     gateway,
		tools:       tools,
		maxToolHops: maxToolHops,
		now:         time.Now,
	}

	graphRunner, err := a.compileTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	a.graphRunner = graphRunner

	return a, nil
}

// NewConversation starts a conversation seeded with the first-start greeting.
func (a *Advisor) NewConversation() (*Conversation, error) {
	return a.newConversation(StartGreeting)
}

// Reset returns a brand-new conversation. The previous one is left as is and
// should be dropped by the caller.
func (a *Advisor) Reset() (*Conversation, error) {
	return a.newConversation(ResetGreeting)
}

func (a *Advisor) newConversation(greeting string) (*Conversation, error) {
	st := statex.NewConversation(a.now())
	if _, err := st.Append(contractx.RoleModel, greeting, a.now()); err != nil {
		return nil, err
	}

	session, err := a.gateway.StartSession(st.History())
	if err != nil {
		return nil, fmt.Errorf("start chat session: %w", err)
	}

	log.Debug().Str("conversation_id", st.ID).Msg("conversation started")
	return &Conversation{advisor: a, state: st, session: session}, nil
}

// Conversation is one chat handle. It is not safe for concurrent use.
type Conversation struct {
	advisor *Advisor
	state   *statex.Conversation
	session contractx.ChatSession
}

func (c *Conversation) ID() string {
	return c.state.ID
}

func (c *Conversation) History() []contractx.Message {
	return c.state.History()
}

// Greeting returns the model message the conversation was seeded with.
func (c *Conversation) Greeting() contractx.Message {
	return c.state.Messages[0]
}

// Send runs one turn. Any failure after the user message was recorded is
// turned into an apology that is appended to the history and returned along
// with the error.
func (c *Conversation) Send(ctx context.Context, text string) (contractx.Message, error) {
	start := time.Now()

	var nodeErr error
	ctx = context.WithValue(ctx, turnErrKey{}, &nodeErr)

	out, err := c.advisor.graphRunner.Invoke(ctx, nodex.GraphInput{
		Conversation: c.state,
		Session:      c.session,
		Text:         text,
	})
	if err == nil {
		log.Info().
			Str("conversation_id", c.state.ID).
			Dur("duration", time.Since(start)).
			Msg("turn completed")
		return out.Reply, nil
	}

	if nodeErr != nil {
		err = nodeErr
	}
	if errors.Is(err, ErrInvalidMessage) {
		return contractx.Message{}, err
	}

	log.Error().Err(err).
		Str("conversation_id", c.state.ID).
		Dur("duration", time.Since(start)).
		Msg("turn failed")

	apology, appendErr := c.state.Append(contractx.RoleModel, fmt.Sprintf(apologyFormat, err), c.advisor.now())
	if appendErr != nil {
		return contractx.Message{}, errors.Join(err, appendErr)
	}
	return apology, err
}
