package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRenderer_Render(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><body><table><tr><td>Kubo</td></tr></table></body></html>`))
	}))
	defer srv.Close()

	r := NewStaticRenderer(WithStaticUserAgent("TestBot/1.0"))
	page, err := r.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "TestBot/1.0", gotUA)
	assert.Equal(t, 1, page.Find("table tr").Length())
}

func TestStaticRenderer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	r := NewStaticRenderer()
	page, err := r.Render(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Nil(t, page)
	assert.Contains(t, err.Error(), "status 403")
}

func TestStaticRenderer_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	r := NewStaticRenderer()
	_, err := r.Render(context.Background(), srv.URL)

	assert.Error(t, err)
}

func TestStaticRenderer_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	r := NewStaticRenderer()
	_, err := r.Render(ctx, srv.URL)

	assert.Error(t, err)
}

func TestChromeRenderer_Defaults(t *testing.T) {
	r := NewChromeRenderer()

	assert.True(t, r.headless)
	assert.Equal(t, DefaultUserAgent, r.userAgent)
	assert.Equal(t, 30*time.Second, r.navTimeout)
	assert.Equal(t, 2*time.Second, r.settleDelay)

	custom := NewChromeRenderer(
		WithHeadless(false),
		WithUserAgent("X/1.0"),
		WithNavTimeout(time.Second),
		WithSettleDelay(time.Millisecond),
	)
	assert.False(t, custom.headless)
	assert.Equal(t, "X/1.0", custom.userAgent)
	assert.Equal(t, time.Second, custom.navTimeout)
	assert.Equal(t, time.Millisecond, custom.settleDelay)
}
