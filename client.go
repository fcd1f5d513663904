package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

const defaultHttpConnectTimeout = 5 * time.Second

var errUnexpectedStatus = errors.New("unexpected status")

// GrainRecord is the wire form of a pixel, both in region responses and as
// the body of an edit.
type GrainRecord struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}

// canvasService is what the sync loop needs from the remote canvas. Both
// calls return immediately; results arrive on the queues.
type canvasService interface {
	FetchRegion(region Region, batches *Queue[[]GrainRecord], statuses *Queue[FetchStatus])
	SubmitEdit(edit GrainRecord, batches *Queue[[]GrainRecord])
	Close()
}

type canvasClient struct {
	ctx    context.Context
	cancel context.CancelFunc

	baseUrl    string
	httpClient *http.Client
	log        logrus.FieldLogger

	wg sync.WaitGroup
}

func newHttpClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout: defaultHttpConnectTimeout,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: defaultHttpConnectTimeout,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

func newCanvasClient(ctx context.Context, baseUrl string, timeout time.Duration, log logrus.FieldLogger) *canvasClient {
	cancelCtx, cancel := context.WithCancel(ctx)
	return &canvasClient{
		ctx:        cancelCtx,
		cancel:     cancel,
		baseUrl:    strings.TrimRight(baseUrl, "/"),
		httpClient: newHttpClient(timeout),
		log:        log,
	}
}

func (c *canvasClient) regionUrl(region Region) string {
	return fmt.Sprintf(
		"%s/api/canvas?topLeftX=%d&topLeftY=%d&bottomRightX=%d&bottomRightY=%d",
		c.baseUrl,
		region.TopLeft.X,
		region.TopLeft.Y,
		region.BottomRight.X,
		region.BottomRight.Y,
	)
}

func (c *canvasClient) pixelUrl() string {
	return c.baseUrl + "/api/canvas/pixel"
}

// FetchRegion requests the grains of region in the background. On success
// the batch is queued before the success status; on any failure only a
// failed status is queued.
func (c *canvasClient) FetchRegion(region Region, batches *Queue[[]GrainRecord], statuses *Queue[FetchStatus]) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		requestId := ulid.Make().String()
		log := c.log.WithFields(logrus.Fields{
			"region":     region.String(),
			"request_id": requestId,
		})

		status := failedStatus()
		var records []GrainRecord
		if err := c.do(http.MethodGet, c.regionUrl(region), requestId, nil, &records); err != nil {
			log.WithError(err).Warn("region fetch failed")
		} else if err := batches.Push(records); err != nil {
			log.WithError(err).Warn("region batch dropped")
		} else {
			log.WithField("grains", len(records)).Debug("region fetched")
			status = successStatus(region)
		}

		if err := statuses.Push(status); err != nil {
			log.WithError(err).Debug("fetch status dropped")
		}
	}()
}

// SubmitEdit stores one pixel. The echoed record is queued as a one element
// batch; failures are logged and dropped.
func (c *canvasClient) SubmitEdit(edit GrainRecord, batches *Queue[[]GrainRecord]) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		requestId := ulid.Make().String()
		log := c.log.WithFields(logrus.Fields{
			"x":          edit.X,
			"y":          edit.Y,
			"color":      edit.Color,
			"request_id": requestId,
		})

		body, err := json.Marshal(edit)
		if err != nil {
			log.WithError(err).Warn("pixel edit not encoded")
			return
		}

		var echo GrainRecord
		if err := c.do(http.MethodPut, c.pixelUrl(), requestId, body, &echo); err != nil {
			log.WithError(err).Warn("pixel edit failed")
			return
		}
		if err := batches.Push([]GrainRecord{echo}); err != nil {
			log.WithError(err).Debug("pixel echo dropped")
			return
		}
		log.Debug("pixel edit stored")
	}()
}

func (c *canvasClient) do(method string, url string, requestId string, body []byte, result any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(c.ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-Request-Id", requestId)
	if body != nil {
		req.Header.Set("Accept", "*/*")
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || 300 <= resp.StatusCode {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: %w %d", method, url, errUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, url, err)
	}
	return nil
}

// Wait blocks until every outstanding request has delivered its result.
func (c *canvasClient) Wait() {
	c.wg.Wait()
}

func (c *canvasClient) Close() {
	c.cancel()
}
