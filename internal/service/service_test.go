package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/teconavi/alitaramdemo2/internal/catalog"
	"github.com/teconavi/alitaramdemo2/internal/config"
	"github.com/teconavi/alitaramdemo2/internal/domain"
	"github.com/teconavi/alitaramdemo2/internal/metrics"
	"github.com/teconavi/alitaramdemo2/internal/policy"
	"github.com/teconavi/alitaramdemo2/internal/repository"
)

type echoSender struct{}

func (echoSender) SendTurn(ctx context.Context, history []domain.Turn, text string) string {
	return "You said: " + text
}

type allowGate struct{}

func (allowGate) Check(ctx context.Context, step domain.ConsultationStep, form domain.ConsultationForm) (policy.Decision, error) {
	return policy.Decision{Allow: true}, nil
}

func setupTestService(t *testing.T, capacity int) (*Service, *store.SQLiteStore) {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	log, _ := test.NewNullLogger()
	cfg := &config.Config{SessionCapacity: capacity}
	svc, err := New(st, catalog.Default(), echoSender{}, allowGate{}, nil, metrics.New(), cfg, log)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc, st
}

func TestCreateAndGetSession(t *testing.T) {
	svc, st := setupTestService(t, 4)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if len(sess.ID) != len("sess_")+8 {
		t.Errorf("unexpected session id %q", sess.ID)
	}

	got, err := svc.GetSession(sess.ID)
	if err != nil || got != sess {
		t.Fatalf("GetSession returned %v, %v", got, err)
	}

	rec, err := st.GetSession(ctx, sess.ID)
	if err != nil || rec == nil {
		t.Fatalf("session record missing: %v", err)
	}

	if _, err := svc.GetSession("sess_missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetOrCreateSessionReusesLiveSession(t *testing.T) {
	svc, _ := setupTestService(t, 4)
	ctx := context.Background()

	first, created, err := svc.GetOrCreateSession(ctx, "sess_fixed")
	if err != nil || !created {
		t.Fatalf("expected new session, got created=%v err=%v", created, err)
	}
	second, created, err := svc.GetOrCreateSession(ctx, "sess_fixed")
	if err != nil || created {
		t.Fatalf("expected existing session, got created=%v err=%v", created, err)
	}
	if first != second {
		t.Error("expected the same session instance")
	}

	_, created, err = svc.GetOrCreateSession(ctx, "")
	if err != nil || !created {
		t.Fatalf("empty id should create, got created=%v err=%v", created, err)
	}
	if svc.SessionCount() != 2 {
		t.Errorf("expected 2 sessions, got %d", svc.SessionCount())
	}
}

func TestGetOrCreateSessionConcurrentSameID(t *testing.T) {
	svc, _ := setupTestService(t, 4)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	ids := make(map[string]int)
	createdCount := 0
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, created, err := svc.GetOrCreateSession(ctx, "sess_same")
			errs[i] = err
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			ids[sess.ID]++
			if created {
				createdCount++
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if createdCount != 1 {
		t.Errorf("expected exactly one creation, got %d", createdCount)
	}
	if ids["sess_same"] != n {
		t.Errorf("expected %d calls to resolve sess_same, got %v", n, ids)
	}
	if svc.SessionCount() != 1 {
		t.Errorf("expected 1 session, got %d", svc.SessionCount())
	}
}

func TestEndSessionDeletesLog(t *testing.T) {
	svc, st := setupTestService(t, 4)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	sess.OpenChat()
	if _, _, err := sess.SendMessage("hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	sess.Wait()

	msgs, err := st.ListMessages(ctx, sess.ID, 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 stored messages, got %d", len(msgs))
	}

	if err := svc.EndSession(sess.ID); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	msgs, err = st.ListMessages(ctx, sess.ID, 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected log to be deleted, got %d messages", len(msgs))
	}
	if err := svc.EndSession(sess.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestEvictionEndsOldestSession(t *testing.T) {
	svc, st := setupTestService(t, 1)
	ctx := context.Background()

	old, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := svc.CreateSession(ctx); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if _, err := svc.GetSession(old.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected evicted session to be gone, got %v", err)
	}
	rec, err := st.GetSession(ctx, old.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if rec != nil {
		t.Error("expected evicted session record to be deleted")
	}
}

func TestContentAndProducts(t *testing.T) {
	svc, _ := setupTestService(t, 4)

	if got := len(svc.ListProducts()); got != 8 {
		t.Errorf("expected 8 products, got %d", got)
	}
	p, err := svc.GetProduct("p2")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if p.Name != "HydroLift Smart Bath Chair" {
		t.Errorf("unexpected product %q", p.Name)
	}
	if _, err := svc.GetProduct("p9"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	content := svc.Content()
	if len(content.QuickTopics) == 0 || content.About.Mission == "" {
		t.Error("expected populated site content")
	}
}
