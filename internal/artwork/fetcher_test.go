package artwork

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func newTestFetcher(timeout time.Duration) *Fetcher {
	return NewFetcher(timeout, 1000, zap.NewNop())
}

func TestFetch_Success(t *testing.T) {
	body := pngBytes(t, testImage(8, 6))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer server.Close()

	img, err := newTestFetcher(time.Second).Fetch(context.Background(), server.URL+"/art/1")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := img.Bounds(); got.Dx() != 8 || got.Dy() != 6 {
		t.Errorf("Fetch() bounds = %v, want 8x6", got)
	}
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantKind   ErrorKind
		wantStatus int
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantKind:   KindHTTP,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantKind:   KindHTTP,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "not an image",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>nope</html>"))
			},
			wantKind: KindDecode,
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantKind: KindDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newTestFetcher(time.Second).Fetch(context.Background(), server.URL)
			if err == nil {
				t.Fatal("Fetch() expected error")
			}

			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("Fetch() error type = %T, want *FetchError", err)
			}
			if fe.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", fe.Kind, tt.wantKind)
			}
			if fe.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", fe.StatusCode, tt.wantStatus)
			}
			if fe.URL != server.URL {
				t.Errorf("URL = %q, want %q", fe.URL, server.URL)
			}
			if kind, ok := KindOf(err); !ok || kind != tt.wantKind {
				t.Errorf("KindOf() = %v, %v", kind, ok)
			}
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := newTestFetcher(50*time.Millisecond).Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Fetch() expected timeout error")
	}
	if kind, _ := KindOf(err); kind != KindNetwork {
		t.Errorf("Kind = %v, want network", kind)
	}
	if !IsTimeout(err) {
		t.Errorf("IsTimeout(%v) = false, want true", err)
	}
}

func TestFetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestFetcher(time.Second).Fetch(context.Background(), url)
	if kind, ok := KindOf(err); !ok || kind != KindNetwork {
		t.Errorf("KindOf(%v) = %v, %v, want network", err, kind, ok)
	}
	if IsTimeout(err) {
		t.Error("connection refused reported as a timeout")
	}
}

func TestFetch_BadURL(t *testing.T) {
	_, err := newTestFetcher(time.Second).Fetch(context.Background(), "://bad")
	if kind, ok := KindOf(err); !ok || kind != KindNetwork {
		t.Errorf("KindOf(%v) = %v, %v, want network", err, kind, ok)
	}
}

func TestSpawn_DeliversImage(t *testing.T) {
	body := pngBytes(t, testImage(4, 4))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer server.Close()

	out := make(chan Loaded, 1)
	url := server.URL + "/cover.png"
	newTestFetcher(time.Second).Spawn(url, out)

	select {
	case loaded := <-out:
		if loaded.URL != url {
			t.Errorf("Loaded.URL = %q, want %q", loaded.URL, url)
		}
		if loaded.Image == nil {
			t.Error("Loaded.Image is nil")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no image delivered")
	}
}

func TestSpawn_FailureIsDropped(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	out := make(chan Loaded, 1)
	newTestFetcher(time.Second).Spawn(server.URL, out)

	select {
	case loaded := <-out:
		t.Fatalf("unexpected delivery for %q", loaded.URL)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestDecode_Formats(t *testing.T) {
	src := testImage(3, 2)

	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatalf("bmp.Encode() error = %v", err)
	}

	for name, data := range map[string][]byte{
		"png": pngBytes(t, src),
		"bmp": bmpBuf.Bytes(),
	} {
		img, err := Decode(data)
		if err != nil {
			t.Errorf("%s: Decode() error = %v", name, err)
			continue
		}
		if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
			t.Errorf("%s: bounds = %v, want 3x2", name, b)
		}
	}

	if _, err := Decode([]byte("GIF89a-truncated")); err == nil {
		t.Error("Decode() of a truncated GIF should fail")
	}
}

func TestFetchError_Error(t *testing.T) {
	httpErr := &FetchError{Kind: KindHTTP, URL: "http://core/a", StatusCode: 503}
	if got := httpErr.Error(); got != "album art http error for http://core/a: status 503" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("unexpected EOF")
	readErr := &FetchError{Kind: KindRead, URL: "http://core/a", Err: cause}
	if !strings.Contains(readErr.Error(), "read error") || !errors.Is(readErr, cause) {
		t.Errorf("Error() = %q, Unwrap lost the cause", readErr.Error())
	}

	if got := ErrorKind(9).String(); got != "ErrorKind(9)" {
		t.Errorf("String() = %q", got)
	}
	if IsTimeout(nil) {
		t.Error("IsTimeout(nil) = true")
	}
	if !IsTimeout(context.DeadlineExceeded) {
		t.Error("IsTimeout(DeadlineExceeded) = false")
	}
}
