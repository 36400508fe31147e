package auth

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"
)

// DefaultCallbackPort is the port the loopback redirect is registered on.
// It must exactly match the redirect URI configured with the identity
// provider.
const DefaultCallbackPort = 4200

// CallbackTimeout is how long the listener waits for the redirect before
// giving up and releasing the port.
const CallbackTimeout = 5 * time.Minute

//go:embed templates/callback_success.html
var callbackSuccessHTML string

//go:embed templates/callback_error.html
var callbackErrorHTML string

// CallbackServer is a single-use local HTTP server that captures the
// authorization redirect. It starts, handles exactly one qualifying
// request, then shuts down; a second request arriving after resolution is
// rejected, never processed twice.
//
// The state parameter is validated here, before any code is accepted, so a
// mismatched callback can never leak an authorization code to the caller.
type CallbackServer struct {
	port          int
	expectedState string
	timeout       time.Duration
	server        *http.Server
	listener      net.Listener
	codeCh        chan string
	errCh         chan error
	once          sync.Once
	serverURL     string
}

// NewCallbackServer creates a callback server bound to the given port,
// resolving only a callback whose state equals expectedState. Port 0
// binds an ephemeral port; the actual redirect URI is known after Start.
func NewCallbackServer(port int, expectedState string) *CallbackServer {
	return &CallbackServer{
		port:          port,
		expectedState: expectedState,
		timeout:       CallbackTimeout,
		codeCh:        make(chan string, 1),
		errCh:         make(chan error, 1),
	}
}

// Start binds the port and begins listening for the redirect. It returns
// the redirect URI to embed in the authorization request. The server stops
// when the context is cancelled.
func (s *CallbackServer) Start(ctx context.Context) (string, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to start callback server on %s: %w", addr, err)
	}

	s.listener = listener
	s.port = listener.Addr().(*net.TCPAddr).Port
	s.serverURL = fmt.Sprintf("http://localhost:%d", s.port)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", s.handleCallback)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case s.errCh <- err:
			default:
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return s.RedirectURI(), nil
}

// Wait blocks until the callback resolves, the window elapses, or the
// context is cancelled. The port is released on every exit path; on
// success the listener shuts down right after the confirmation page is
// delivered.
//
// Terminal outcomes: the authorization code on success; an
// *AuthorizationError when the provider reported one; ErrStateMismatch,
// ErrMalformedCallback or ErrCallbackTimeout otherwise.
func (s *CallbackServer) Wait(ctx context.Context) (string, error) {
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case code := <-s.codeCh:
		return code, nil
	case err := <-s.errCh:
		s.Stop()
		return "", err
	case <-timer.C:
		s.Stop()
		return "", ErrCallbackTimeout
	case <-ctx.Done():
		s.Stop()
		return "", ctx.Err()
	}
}

// handleCallback handles the redirect. sync.Once guarantees the callback
// is processed at most once; later requests get a 400.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	var handled bool
	s.once.Do(func() {
		handled = true
		s.processCallback(w, r)
	})

	if !handled {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
	}
}

// processCallback classifies the single accepted request and resolves the
// pending wait. Called exactly once via sync.Once.
func (s *CallbackServer) processCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")

	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")

	var outcome error
	switch {
	case query.Get("error") != "":
		outcome = &AuthorizationError{
			Code:        query.Get("error"),
			Description: query.Get("error_description"),
		}
	case state != s.expectedState:
		// Checked before the code: a callback correlated with a request we
		// never made must not yield its code, even a plausible-looking one.
		outcome = ErrStateMismatch
	case code == "":
		outcome = ErrMalformedCallback
	}

	s.renderResult(w, outcome)

	if outcome != nil {
		select {
		case s.errCh <- outcome:
		default:
		}
	} else {
		select {
		case s.codeCh <- code:
		default:
		}
	}

	// Give the response time to flush before the listener goes away.
	go func() {
		time.Sleep(1 * time.Second)
		s.Stop()
	}()
}

// renderResult writes the minimal confirmation page. Best-effort UX only;
// the flow's outcome is carried on the channels, not this page.
func (s *CallbackServer) renderResult(w http.ResponseWriter, outcome error) {
	var tmpl *template.Template
	var data interface{}

	if outcome != nil {
		tmpl = template.Must(template.New("error").Parse(callbackErrorHTML))
		data = map[string]string{"Reason": outcome.Error()}
	} else {
		tmpl = template.Must(template.New("success").Parse(callbackSuccessHTML))
		data = map[string]string{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Stop shuts the server down and releases the port. Safe to call multiple
// times and on every exit path.
func (s *CallbackServer) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

// RedirectURI returns the redirect URI for the authorization request.
func (s *CallbackServer) RedirectURI() string {
	return s.serverURL + "/callback"
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	return s.port
}
