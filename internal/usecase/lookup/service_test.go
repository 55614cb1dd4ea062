package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/leitor-app/leitor/internal/domain"
	"github.com/leitor-app/leitor/internal/domain/dictionary"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
	"github.com/leitor-app/leitor/internal/domain/viewer"
	sessionrepo "github.com/leitor-app/leitor/internal/repository/session"
)

// --- Mocks ---

type mockSessions struct {
	session domsess.Session
	getErr  error
	saveErr error
}

func (m *mockSessions) GetByDocument(_ context.Context, _ string) (domsess.Session, error) {
	if m.getErr != nil {
		return domsess.Session{}, m.getErr
	}
	return m.session, nil
}

func (m *mockSessions) Save(_ context.Context, s domsess.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.session = s
	return nil
}

func (m *mockSessions) Update(
	_ context.Context, _ string, fn func(domsess.Session) (domsess.Session, error),
) error {
	if m.getErr != nil {
		return m.getErr
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	updated, err := fn(m.session)
	if err != nil {
		return err
	}
	m.session = updated
	return nil
}

type mockClient struct {
	result dictionary.Result
	err    error
	calls  int
	// observed session state at call time
	inFlightDuringCall bool
	sessions           *mockSessions
}

func (m *mockClient) Lookup(_ context.Context, _ string) (dictionary.Result, error) {
	m.calls++
	if m.sessions != nil {
		m.inFlightDuringCall = m.sessions.session.LookupInFlight()
	}
	return m.result, m.err
}

func makeSession(t *testing.T) domsess.Session {
	t.Helper()
	view, err := viewer.New(10, viewer.DefaultBounds())
	if err != nil {
		t.Fatalf("viewer.New: %v", err)
	}
	sess, err := domsess.New("sess-1", "doc-1", view)
	if err != nil {
		t.Fatalf("domsess.New: %v", err)
	}
	return sess
}

// --- Tests ---

func TestLookup_Success(t *testing.T) {
	sessions := &mockSessions{session: makeSession(t)}
	client := &mockClient{
		result:   dictionary.New("casa", "Edificação destinada à habitação.", []string{"lar", "moradia"}),
		sessions: sessions,
	}
	svc := New(sessions, client)

	result, err := svc.Lookup(context.Background(), "doc-1", "casa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Word() != "casa" {
		t.Errorf("expected word casa, got %q", result.Word())
	}
	if !client.inFlightDuringCall {
		t.Error("in-flight flag should be set while the provider call runs")
	}
	if sessions.session.LookupInFlight() {
		t.Error("in-flight flag should be released after the call")
	}

	panel, ok := sessions.session.Panel()
	if !ok {
		t.Fatal("panel should be set after a successful lookup")
	}
	if panel.Word() != "casa" {
		t.Errorf("panel word = %q", panel.Word())
	}
}

func TestLookup_ReplacesPanelWholesale(t *testing.T) {
	sess := makeSession(t)
	sess = sess.WithPanel(dictionary.New("livro", "Obra escrita.", []string{"obra"}))
	sessions := &mockSessions{session: sess}
	client := &mockClient{result: dictionary.New("casa", "Habitação.", nil)}
	svc := New(sessions, client)

	if _, err := svc.Lookup(context.Background(), "doc-1", "casa"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	panel, _ := sessions.session.Panel()
	if panel.Word() != "casa" {
		t.Errorf("panel should be replaced, got %q", panel.Word())
	}
}

func TestLookup_EmptyText(t *testing.T) {
	sessions := &mockSessions{session: makeSession(t)}
	client := &mockClient{}
	svc := New(sessions, client)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Lookup(context.Background(), "doc-1", text)
		if !errors.Is(err, domain.ErrEmptySelection) {
			t.Errorf("text %q: expected ErrEmptySelection, got %v", text, err)
		}
	}
	if client.calls != 0 {
		t.Error("provider should not be called for empty text")
	}
}

func TestLookup_AlreadyInFlight(t *testing.T) {
	sess := makeSession(t)
	sessions := &mockSessions{session: sess.WithLookupInFlight(true)}
	client := &mockClient{}
	svc := New(sessions, client)

	_, err := svc.Lookup(context.Background(), "doc-1", "casa")
	if !errors.Is(err, domain.ErrLookupInFlight) {
		t.Errorf("expected ErrLookupInFlight, got %v", err)
	}
	if client.calls != 0 {
		t.Error("provider should not be called while a lookup is pending")
	}
}

func TestLookup_ProviderError_ReleasesFlag(t *testing.T) {
	sessions := &mockSessions{session: makeSession(t)}
	providerErr := domain.ErrLookupProviderError
	client := &mockClient{err: providerErr}
	svc := New(sessions, client)

	_, err := svc.Lookup(context.Background(), "doc-1", "casa")
	if !errors.Is(err, domain.ErrLookupProviderError) {
		t.Errorf("expected provider error wrapped, got %v", err)
	}
	if sessions.session.LookupInFlight() {
		t.Error("in-flight flag should be released after a provider error")
	}
	if _, ok := sessions.session.Panel(); ok {
		t.Error("panel should not be set on error")
	}
}

func TestLookup_FallbackResultFillsPanel(t *testing.T) {
	sessions := &mockSessions{session: makeSession(t)}
	client := &mockClient{result: dictionary.NotFound("xyzzy")}
	svc := New(sessions, client)

	result, err := svc.Lookup(context.Background(), "doc-1", "xyzzy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsNotFound() {
		t.Error("expected the fallback result")
	}
	panel, ok := sessions.session.Panel()
	if !ok || !panel.IsNotFound() {
		t.Error("fallback result should still land in the panel")
	}
}

// blockingClient parks inside Lookup until released, so the test can act
// while the call is pending.
type blockingClient struct {
	entered chan struct{}
	release chan struct{}
	result  dictionary.Result
}

func (c *blockingClient) Lookup(_ context.Context, _ string) (dictionary.Result, error) {
	close(c.entered)
	<-c.release
	return c.result, nil
}

func TestLookup_ConcurrentSecondRefused(t *testing.T) {
	ctx := context.Background()
	repo := sessionrepo.New()
	if err := repo.Save(ctx, makeSession(t)); err != nil {
		t.Fatalf("save session: %v", err)
	}

	client := &blockingClient{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		result:  dictionary.New("casa", "Habitação.", nil),
	}
	svc := New(repo, client)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Lookup(ctx, "doc-1", "casa")
		done <- err
	}()
	<-client.entered

	// A second lookup while one is pending is refused
	if _, err := svc.Lookup(ctx, "doc-1", "lar"); !errors.Is(err, domain.ErrLookupInFlight) {
		t.Errorf("expected ErrLookupInFlight, got %v", err)
	}

	// A selection saved while the lookup is pending must survive the release
	sel, err := domsess.NewSelection("um trecho", 2)
	if err != nil {
		t.Fatalf("NewSelection: %v", err)
	}
	err = repo.Update(ctx, "doc-1", func(s domsess.Session) (domsess.Session, error) {
		return s.WithSelection(sel), nil
	})
	if err != nil {
		t.Fatalf("save selection: %v", err)
	}

	close(client.release)
	if err := <-done; err != nil {
		t.Fatalf("pending lookup failed: %v", err)
	}

	sess, err := repo.GetByDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess.LookupInFlight() {
		t.Error("in-flight flag should be released")
	}
	if sess.Selection().Text() != "um trecho" {
		t.Error("selection saved during the lookup should be preserved")
	}
	if panel, ok := sess.Panel(); !ok || panel.Word() != "casa" {
		t.Error("pending result should still land in the panel")
	}
}

func TestLookup_SessionMissing(t *testing.T) {
	sessions := &mockSessions{getErr: domain.ErrSessionNotFound}
	svc := New(sessions, &mockClient{})

	_, err := svc.Lookup(context.Background(), "doc-1", "casa")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestPanel(t *testing.T) {
	sess := makeSession(t)
	sess = sess.WithPanel(dictionary.New("casa", "Habitação.", []string{"lar"}))
	sessions := &mockSessions{session: sess}
	svc := New(sessions, &mockClient{})

	panel, err := svc.Panel(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if panel.Word() != "casa" {
		t.Errorf("panel word = %q", panel.Word())
	}
}

func TestPanel_Empty(t *testing.T) {
	sessions := &mockSessions{session: makeSession(t)}
	svc := New(sessions, &mockClient{})

	_, err := svc.Panel(context.Background(), "doc-1")
	if !errors.Is(err, domain.ErrNoDictionaryResult) {
		t.Errorf("expected ErrNoDictionaryResult, got %v", err)
	}
}

func TestClear(t *testing.T) {
	sess := makeSession(t)
	sess = sess.WithPanel(dictionary.New("casa", "Habitação.", nil))
	sessions := &mockSessions{session: sess}
	svc := New(sessions, &mockClient{})

	if err := svc.Clear(context.Background(), "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sessions.session.Panel(); ok {
		t.Error("panel should be cleared")
	}
}
