package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/teconavi/alitaramdemo2/internal/catalog"
	"github.com/teconavi/alitaramdemo2/internal/config"
	"github.com/teconavi/alitaramdemo2/internal/consultation"
	"github.com/teconavi/alitaramdemo2/internal/conversation"
	"github.com/teconavi/alitaramdemo2/internal/domain"
	"github.com/teconavi/alitaramdemo2/internal/metrics"
	"github.com/teconavi/alitaramdemo2/internal/repository"
	"github.com/teconavi/alitaramdemo2/internal/session"
)

// Content is the static site content served alongside the catalogue.
type Content struct {
	Text        map[string]string `json:"text"`
	About       catalog.About     `json:"about"`
	QuickTopics []string          `json:"quick_topics"`
}

type Service struct {
	store     store.Store
	catalog   *catalog.Catalog
	sender    conversation.Sender
	gate      consultation.Gate
	publisher session.Publisher
	metrics   *metrics.Metrics
	config    *config.Config
	log       logrus.FieldLogger

	// createMu serialises lookup-then-create for caller-chosen ids.
	createMu sync.Mutex
	sessions *lru.Cache[string, *session.Session]
}

func New(store store.Store, cat *catalog.Catalog, sender conversation.Sender, gate consultation.Gate, publisher session.Publisher, m *metrics.Metrics, cfg *config.Config, log logrus.FieldLogger) (*Service, error) {
	s := &Service{
		store:     store,
		catalog:   cat,
		sender:    sender,
		gate:      gate,
		publisher: publisher,
		metrics:   m,
		config:    cfg,
		log:       log,
	}
	sessions, err := lru.NewWithEvict[string, *session.Session](cfg.SessionCapacity, s.onEvict)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	s.sessions = sessions
	return s, nil
}

// onEvict ends a session: timers stop and the message log is destroyed.
func (s *Service) onEvict(id string, sess *session.Session) {
	sess.Close()
	if err := s.store.DeleteSession(context.Background(), id); err != nil {
		s.log.WithError(err).WithField("session_id", id).Error("failed to delete session log")
	}
	s.metrics.SessionClosed()
	s.log.WithField("session_id", id).Info("session ended")
}

// CreateSession starts a new session with a generated id.
func (s *Service) CreateSession(ctx context.Context) (*session.Session, error) {
	return s.createSession(ctx, "sess_"+uuid.New().String()[:8])
}

// GetOrCreateSession returns the live session for id, creating it when unknown.
// An empty id always creates a new session.
func (s *Service) GetOrCreateSession(ctx context.Context, id string) (*session.Session, bool, error) {
	if id == "" {
		sess, err := s.CreateSession(ctx)
		return sess, true, err
	}
	s.createMu.Lock()
	defer s.createMu.Unlock()
	if sess, ok := s.sessions.Get(id); ok {
		return sess, false, nil
	}
	sess, err := s.createSession(ctx, id)
	return sess, true, err
}

func (s *Service) createSession(ctx context.Context, id string) (*session.Session, error) {
	now := time.Now()
	if err := s.store.CreateSession(ctx, &domain.Session{SessionID: id, CreatedAt: now}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sess := session.New(id, now, session.Deps{
		Catalog:       s.catalog,
		Sender:        s.sender,
		Gate:          s.gate,
		Store:         s.store,
		Publisher:     s.publisher,
		Metrics:       s.metrics,
		Log:           s.log,
		GreetingDelay: s.config.GreetingDelay,
	})
	s.sessions.Add(id, sess)
	s.metrics.SessionOpened()
	s.log.WithField("session_id", id).Info("session started")
	return sess, nil
}

// GetSession returns a live session.
func (s *Service) GetSession(id string) (*session.Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return sess, nil
}

// EndSession drops the session and its log.
func (s *Service) EndSession(id string) error {
	if !s.sessions.Remove(id) {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return nil
}

// SessionCount returns the number of live sessions.
func (s *Service) SessionCount() int {
	return s.sessions.Len()
}

// Close ends every session.
func (s *Service) Close() {
	s.sessions.Purge()
}

func (s *Service) ListProducts() []domain.Product {
	return s.catalog.List()
}

func (s *Service) GetProduct(id string) (domain.Product, error) {
	return s.catalog.Get(id)
}

func (s *Service) Content() Content {
	return Content{
		Text:        catalog.UIText,
		About:       catalog.AboutContent,
		QuickTopics: catalog.QuickTopics,
	}
}
