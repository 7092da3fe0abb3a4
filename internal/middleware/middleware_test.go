package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func echoToken(w http.ResponseWriter, r *http.Request) {
	token, ok := TokenFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Write([]byte(token))
}

func TestSessionToken(t *testing.T) {
	h := SessionToken()(http.HandlerFunc(echoToken))

	tests := []struct {
		name   string
		header string
		target string
		code   int
		body   string
	}{
		{"header", "Bearer abc", "/", http.StatusOK, "abc"},
		{"query", "", "/?token=def", http.StatusOK, "def"},
		{"header wins", "Bearer abc", "/?token=def", http.StatusOK, "abc"},
		{"missing", "", "/", http.StatusUnauthorized, ""},
		{"not bearer", "Basic xyz", "/", http.StatusUnauthorized, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, test.target, nil)
			if test.header != "" {
				r.Header.Set("Authorization", test.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, test.code, w.Code)
			assert.Equal(t, test.body, w.Body.String())
		})
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/game?x=1", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"uri":"/game?x=1"`)
}

func TestWrapOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.NotFoundHandler(), mw("inner"), mw("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestCors(t *testing.T) {
	h := Cors([]string{"https://mines.example"})(http.NotFoundHandler())
	r := httptest.NewRequest(http.MethodOptions, "/game", nil)
	r.Header.Set("Origin", "https://mines.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "https://mines.example", w.Header().Get("Access-Control-Allow-Origin"))
}
