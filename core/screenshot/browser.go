package screenshot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/gaurav-prasanna/stylepipe/core"
)

// BrowserCapturer renders pages in headless Chrome and takes a full-page PNG.
type BrowserCapturer struct {
	allocator context.Context
	cancel    context.CancelFunc
	timeout   time.Duration
	settle    time.Duration
}

// NewBrowser starts a Chrome allocator. Close releases it.
func NewBrowser(timeout time.Duration) *BrowserCapturer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(1440, 900),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &BrowserCapturer{
		allocator: allocCtx,
		cancel:    cancel,
		timeout:   timeout,
		settle:    time.Second,
	}
}

// Close shuts the browser down.
func (b *BrowserCapturer) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

// Capture navigates to target and screenshots the whole document.
func (b *BrowserCapturer) Capture(ctx context.Context, target string) (*core.Screenshot, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("browser capture: empty target url")
	}

	taskCtx, cancelTab := chromedp.NewContext(b.allocator)
	defer cancelTab()

	// Bind the tab to the caller's context.
	taskCtx, cancel := context.WithTimeout(taskCtx, b.timeout)
	defer cancel()
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-taskCtx.Done():
		}
	}()

	var buf []byte
	err := chromedp.Run(taskCtx,
		chromedp.EmulateViewport(1440, 900),
		chromedp.Navigate(target),
		chromedp.Sleep(b.settle),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("browser capture of %s: %w", target, err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("browser capture of %s: %w", target, ErrNoImage)
	}

	return &core.Screenshot{
		URL:         target,
		Label:       Label(target),
		ContentType: "image/png",
		Data:        buf,
	}, nil
}
