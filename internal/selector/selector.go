package selector

import (
	"comicbot/internal/bot/interfaces"
	"comicbot/internal/catalog"
	"comicbot/internal/follows"
	"comicbot/internal/models"
	"comicbot/internal/providers"
	"comicbot/internal/structures"
	"context"
	"fmt"
	"github.com/google/uuid"
	"strings"
	"sync"
	"time"
)

// AfterFunc arms a timer and returns its stop function. It matches time.AfterFunc(...).Stop.
type AfterFunc func(d time.Duration, fn func()) func() bool

type SelectorInterface interface {
	Start(ctx context.Context, userID, channelID, query string) error
	HandleReply(ctx context.Context, userID, channelID, text string) bool
	HasSession(userID, channelID string) bool
	OpenSessions() int
}

type sessionKey struct {
	userID    string
	channelID string
}

// Selector runs the follow dialog: search, page through results, pick one.
// Sessions are plain state keyed by user and channel; timeouts come back through the dispatcher.
type Selector struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session

	catalog    catalog.ClientInterface
	store      follows.StoreInterface
	messenger  interfaces.MessengerInterface
	dispatcher interfaces.DispatcherInterface
	metrics    providers.MetricsProviderInterface
	logger     providers.Logger

	pageSize  int
	timeout   time.Duration
	prefix    string
	afterFunc AfterFunc
}

func NewSelector(conf *structures.Config, catalogClient catalog.ClientInterface, store follows.StoreInterface, messenger interfaces.MessengerInterface, dispatcher interfaces.DispatcherInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) SelectorInterface {
	return newSelector(conf, catalogClient, store, messenger, dispatcher, metrics, logger, func(d time.Duration, fn func()) func() bool {
		return time.AfterFunc(d, fn).Stop
	})
}

func newSelector(conf *structures.Config, catalogClient catalog.ClientInterface, store follows.StoreInterface, messenger interfaces.MessengerInterface, dispatcher interfaces.DispatcherInterface, metrics providers.MetricsProviderInterface, logger providers.Logger, afterFunc AfterFunc) *Selector {
	pageSize := conf.Selector.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}
	timeout := conf.Selector.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Selector{
		sessions:   make(map[sessionKey]*Session),
		catalog:    catalogClient,
		store:      store,
		messenger:  messenger,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		pageSize:   pageSize,
		timeout:    timeout,
		prefix:     conf.Discord.CommandPrefix,
		afterFunc:  afterFunc,
	}
}

// Start searches the catalog and, when something matches, opens a session showing the first page.
// A session already open for the same user and channel is replaced.
func (s *Selector) Start(ctx context.Context, userID, channelID, query string) error {
	query = strings.TrimSpace(query)
	key := sessionKey{userID: userID, channelID: channelID}
	if prev := s.take(key); prev != nil {
		s.logger.Debugf(providers.TypeBot, "Session %s replaced by a new search", prev.ID)
		s.finish(prev, StateCancelled)
	}

	results, err := s.catalog.SearchVolumes(ctx, query, "")
	if err != nil {
		s.logger.Errorf(providers.TypeBot, "Search %q for %s failed: %s", query, userID, err)
		s.say(ctx, channelID, "⚠️ The comic catalog is not answering right now, try again later.")
		s.metrics.IncSelectorOutcome("error")
		return err
	}

	if len(results) == 0 {
		s.say(ctx, channelID, fmt.Sprintf("🔍 No series found for \"%s\".", query))
		s.metrics.IncSelectorOutcome(StateCancelled.String())
		return nil
	}

	session := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ChannelID: channelID,
		Query:     query,
		Results:   results,
		PageSize:  s.pageSize,
		State:     StatePaging,
	}

	s.mu.Lock()
	s.sessions[key] = session
	s.arm(session)
	s.metrics.SetOpenSessions(len(s.sessions))
	s.mu.Unlock()

	s.logger.Debugf(providers.TypeBot, "Session %s opened for %s with %d results", session.ID, userID, len(results))
	s.say(ctx, channelID, renderPage(session))
	return nil
}

// HandleReply feeds one message into the session of userID in channelID.
// It reports false when there is no such session, so the caller can treat the message normally.
func (s *Selector) HandleReply(ctx context.Context, userID, channelID, text string) bool {
	key := sessionKey{userID: userID, channelID: channelID}

	s.mu.Lock()
	session, ok := s.sessions[key]
	if ok {
		session.stopTimer()
	}
	s.mu.Unlock()
	if !ok {
		return false
	}

	act, n := parseReply(text)
	switch act {
	case actionStop:
		s.end(key, session, StateCancelled)
		s.say(ctx, channelID, "🛑 Selection cancelled.")
		return true

	case actionNext:
		if !session.Next() {
			s.say(ctx, channelID, "You are already on the last page.")
		} else {
			s.say(ctx, channelID, renderPage(session))
		}

	case actionPrev:
		if !session.Prev() {
			s.say(ctx, channelID, "You are already on the first page.")
		} else {
			s.say(ctx, channelID, renderPage(session))
		}

	case actionSelect:
		volume, err := session.Resolve(n)
		if err != nil {
			s.say(ctx, channelID, fmt.Sprintf("❌ %d is not on this page. %s", n, replyHint(session)))
			break
		}
		s.follow(ctx, key, session, volume)
		return true

	default:
		s.say(ctx, channelID, "❌ I did not understand that. "+replyHint(session))
	}

	s.mu.Lock()
	if s.sessions[key] == session {
		s.arm(session)
	}
	s.mu.Unlock()
	return true
}

func (s *Selector) HasSession(userID, channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionKey{userID: userID, channelID: channelID}]
	return ok
}

func (s *Selector) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Selector) follow(ctx context.Context, key sessionKey, session *Session, volume models.VolumeSearchResult) {
	res, err := s.store.Follow(session.UserID, volume)
	if err != nil {
		s.logger.Errorf(providers.TypeBot, "Follow %d for %s failed: %s", volume.VolumeID, session.UserID, err)
		s.end(key, session, StateCancelled)
		s.say(ctx, session.ChannelID, "⚠️ Could not save your follow list, please try again later.")
		return
	}

	s.end(key, session, StateSelected)
	switch res {
	case follows.AlreadyFollowing:
		s.say(ctx, session.ChannelID, fmt.Sprintf("ℹ️ You already follow **%s**.", volume.Name))
	default:
		s.say(ctx, session.ChannelID, fmt.Sprintf("✅ You are now following **%s**.", volume.Label()))
	}
}

// arm starts the inactivity timer. Must hold s.mu.
func (s *Selector) arm(session *Session) {
	key := sessionKey{userID: session.UserID, channelID: session.ChannelID}
	session.generation++
	id, generation := session.ID, session.generation
	session.stopTimer = s.afterFunc(s.timeout, func() {
		s.dispatcher.Submit(func() {
			s.expire(key, id, generation)
		})
	})
}

// expire ends the session unless it was replaced or saw activity after this timer was armed.
func (s *Selector) expire(key sessionKey, id string, generation uint64) {
	s.mu.Lock()
	session, ok := s.sessions[key]
	if !ok || session.ID != id || session.generation != generation {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.end(key, session, StateTimedOut)
	s.logger.Debugf(providers.TypeBot, "Session %s: %s", id, models.ErrSessionTimeout)
	s.say(context.Background(), key.channelID, fmt.Sprintf("⌛ Selection timed out for %s, run `%sfollow <name>` again.", models.Mention(key.userID), s.prefix))
}

// take removes and returns the session for key, stopping its timer.
func (s *Selector) take(key sessionKey) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if !ok {
		return nil
	}
	session.stopTimer()
	delete(s.sessions, key)
	s.metrics.SetOpenSessions(len(s.sessions))
	return session
}

func (s *Selector) end(key sessionKey, session *Session, state State) {
	s.mu.Lock()
	if s.sessions[key] == session {
		delete(s.sessions, key)
	}
	s.metrics.SetOpenSessions(len(s.sessions))
	s.mu.Unlock()
	s.finish(session, state)
}

func (s *Selector) finish(session *Session, state State) {
	session.State = state
	if session.stopTimer != nil {
		session.stopTimer()
	}
	s.metrics.IncSelectorOutcome(state.String())
}

func (s *Selector) say(ctx context.Context, channelID, text string) {
	if err := s.messenger.SendText(ctx, channelID, text); err != nil {
		s.logger.Warnf(providers.TypeBot, "Send to %s failed: %s", channelID, err)
	}
}
