package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/marben/fractarium"
)

type webServer struct {
	cfg  config
	base fractarium.View
}

func newWebServer(cfg config) *webServer {
	return &webServer{cfg: cfg, base: fractarium.DefaultView()}
}

func (s *webServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /render", s.handleRender)
	mux.HandleFunc("GET /point", s.handlePoint)
	mux.HandleFunc("GET /palette", s.handlePalette)
	mux.HandleFunc("GET /regions", handleRegions)
	mux.HandleFunc("/ws", s.handleWebsocket)
	return mux
}

// parseView applies q on top of the server defaults and enforces the size limit.
func (s *webServer) parseView(q url.Values) (fractarium.View, error) {
	view, err := fractarium.ParseView(q, s.base)
	if err != nil {
		return view, err
	}
	// ParseView leaves Width and Height positive
	if w, h := view.Params.Width, view.Params.Height; w > s.cfg.maxPixels/h {
		return view, fmt.Errorf("%dx%d exceeds %d pixels: %w", w, h, s.cfg.maxPixels, fractarium.ErrConfigurationInvalid)
	}
	return view, nil
}

func (s *webServer) newJob(view fractarium.View) (*renderJob, error) {
	job, err := newRenderJob(view)
	if err != nil {
		return nil, err
	}
	job.verbose = s.cfg.verbose
	return job, nil
}

// handleRender responds with the image of the view in the query. "thumb" limits
// the longer side of the returned image, "format" is png (default) or tiff.
func (s *webServer) handleRender(w http.ResponseWriter, r *http.Request) {
	view, err := s.parseView(r.URL.Query())
	if err != nil {
		httpError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	switch format {
	case "":
		format = "png"
	case "png", "tiff":
	default:
		http.Error(w, fmt.Sprintf("format %q: want png or tiff", format), http.StatusBadRequest)
		return
	}
	job, err := s.newJob(view)
	if err != nil {
		httpError(w, err)
		return
	}
	job.start(r.Context(), s.cfg.workers)

	buf, err := job.GetImage(r.Context())
	if err != nil {
		log.Printf("render %s: %v", r.URL.RawQuery, err)
		return
	}

	var img image.Image = buf
	if t := r.URL.Query().Get("thumb"); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil || n <= 0 {
			http.Error(w, fmt.Sprintf("thumb %q: want a positive integer", t), http.StatusBadRequest)
			return
		}
		img = fractarium.Thumbnail(buf, n)
	}
	writeImage(w, img, format)
}

type pointResponse struct {
	Point string  `json:"point"`
	Real  float64 `json:"real"`
	Imag  float64 `json:"imag"`
}

// handlePoint reports the plane coordinate under pixel (x, y) of the view.
func (s *webServer) handlePoint(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := s.parseView(q)
	if err != nil {
		httpError(w, err)
		return
	}
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if err := errors.Join(errX, errY); err != nil || !finite(x) || !finite(y) {
		http.Error(w, "x and y must be finite numbers", http.StatusBadRequest)
		return
	}

	p := view.Params.PointAt(x, y)
	writeJSON(w, pointResponse{Point: fractarium.FormatComplex(p), Real: p.Real, Imag: p.Imag})
}

// handlePalette draws a preview of the palette in the query.
func (s *webServer) handlePalette(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := s.parseView(q)
	if err != nil {
		httpError(w, err)
		return
	}

	width, height := 400, 40
	if v := q.Get("pw"); v != "" {
		width, err = strconv.Atoi(v)
	}
	if v := q.Get("ph"); v != "" && err == nil {
		height, err = strconv.Atoi(v)
	}
	if err != nil || width <= 0 || height <= 0 || width > s.cfg.maxPixels/height {
		http.Error(w, "invalid preview size", http.StatusBadRequest)
		return
	}

	buf := fractarium.NewBuffer(width, height)
	switch mode := q.Get("mode"); mode {
	case "", "continuous":
		err = view.Palette.DrawContinuousPreview(width, height, buf.Pix)
	case "discrete":
		err = view.Palette.DrawDiscretePreview(width, height, buf.Pix)
	default:
		http.Error(w, fmt.Sprintf("mode %q: want continuous or discrete", mode), http.StatusBadRequest)
		return
	}
	if err != nil {
		httpError(w, err)
		return
	}
	writeImage(w, buf, "png")
}

// wsHeader opens a tile stream, wsDone closes it.
type wsHeader struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  int    `json:"tiles"`
	View   string `json:"view"`
}

type wsDone struct {
	Done     bool    `json:"done"`
	Finished float32 `json:"finished"`
	Error    string  `json:"error,omitempty"`
}

// handleWebsocket renders a view and streams the tiles as they finish.
//
// The client sends one JSON object whose string fields are the query
// parameters of /render. The server answers with a wsHeader, one binary
// message per tile (see encodeTile) and a final wsDone.
func (s *webServer) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.origins,
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	ctx := r.Context()
	log.Printf("got websocket connection from: %s", r.RemoteAddr)

	var req map[string]string
	if err := wsjson.Read(ctx, c, &req); err != nil {
		log.Printf("websocket read request: %v", err)
		return
	}
	q := url.Values{}
	for k, v := range req {
		q.Set(k, v)
	}

	view, err := s.parseView(q)
	var job *renderJob
	if err == nil {
		job, err = s.newJob(view)
	}
	if err != nil {
		_ = wsjson.Write(ctx, c, wsDone{Error: err.Error()})
		c.Close(websocket.StatusUnsupportedData, "invalid view")
		return
	}

	if err := s.streamJob(ctx, c, view, job); err != nil {
		log.Printf("websocket stream to %s: %v", r.RemoteAddr, err)
	}
}

func (s *webServer) streamJob(ctx context.Context, c *websocket.Conn, view fractarium.View, job *renderJob) error {
	header := wsHeader{
		Width:  view.Params.Width,
		Height: view.Params.Height,
		Tiles:  job.tileCount,
		View:   view.Query().Encode(),
	}
	if err := wsjson.Write(ctx, c, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	job.start(ctx, s.cfg.workers)
	for range job.tileCount {
		select {
		case tile := <-job.Tiles():
			if err := c.Write(ctx, websocket.MessageBinary, encodeTile(job.buf, tile)); err != nil {
				return fmt.Errorf("write tile %s: %w", tile, err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := wsjson.Write(ctx, c, wsDone{Done: true, Finished: job.finished()}); err != nil {
		return fmt.Errorf("write done: %w", err)
	}
	return c.Close(websocket.StatusNormalClosure, "")
}

// encodeTile lays a tile out as four big-endian uint32 (min x, min y, max x,
// max y) followed by its ARGB pixels, row by row, also big-endian.
func encodeTile(buf *fractarium.Buffer, tile image.Rectangle) []byte {
	msg := make([]byte, 0, 16+4*tile.Dx()*tile.Dy())
	for _, v := range []int{tile.Min.X, tile.Min.Y, tile.Max.X, tile.Max.Y} {
		msg = binary.BigEndian.AppendUint32(msg, uint32(v))
	}
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		for x := tile.Min.X; x < tile.Max.X; x++ {
			msg = binary.BigEndian.AppendUint32(msg, buf.ARGBAt(x, y))
		}
	}
	return msg
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fractarium.ErrInvalidFormat),
		errors.Is(err, fractarium.ErrBoundViolation),
		errors.Is(err, fractarium.ErrConfigurationInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("internal error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeImage(w http.ResponseWriter, img image.Image, format string) {
	w.Header().Set("Content-Type", "image/"+format)
	if err := fractarium.Encode(w, img, format); err != nil {
		log.Printf("encode %s: %v", format, err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("json encode: %v", err)
	}
}
