package artwork

import (
	"bytes"
	"context"
	"image"
	"io"
	"net/http"
	"time"

	// Decoders for the formats the core may serve.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single fetch, including reading the body
	DefaultTimeout = 10 * time.Second

	// DefaultRate is the number of fetches started per second
	DefaultRate = 4.0

	// maxBodySize caps the bytes read from one response
	maxBodySize = 32 << 20
)

// Loaded is a decoded album-art image and the URL it came from.
type Loaded struct {
	Image image.Image
	URL   string
}

// Fetcher downloads and decodes album art. Fetches are throttled, never
// dropped: a fetch waits for the limiter before issuing its request.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewFetcher creates a fetcher. A non-positive timeout or rate selects the default.
func NewFetcher(timeout time.Duration, perSecond float64, logger *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if perSecond <= 0 {
		perSecond = DefaultRate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		logger:  logger,
	}
}

// Fetch downloads url and decodes the body as an image.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Kind: KindHTTP, URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{Kind: KindRead, URL: url, Err: err}
	}

	img, err := Decode(data)
	if err != nil {
		return nil, &FetchError{Kind: KindDecode, URL: url, Err: err}
	}
	return img, nil
}

// Spawn fetches url on a detached goroutine and sends the result on out.
// Failures are logged and dropped. The send blocks until the receiver takes
// the previous image.
func (f *Fetcher) Spawn(url string, out chan<- Loaded) {
	id := uuid.NewString()
	logger := f.logger.With(zap.String("fetch_id", id), zap.String("url", url))
	logger.Debug("fetching album art")

	go func() {
		start := time.Now()
		img, err := f.Fetch(context.Background(), url)
		if err != nil {
			logger.Warn("failed to fetch album art",
				zap.Bool("timeout", IsTimeout(err)),
				zap.Error(err))
			return
		}
		logger.Debug("album art loaded",
			zap.Duration("duration", time.Since(start)),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()))
		out <- Loaded{Image: img, URL: url}
	}()
}

// Decode decodes an image in any registered format (JPEG, PNG, GIF, WebP, BMP).
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
