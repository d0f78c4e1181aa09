package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/willbeason/escapetime/pkg/imageio"
	"github.com/willbeason/escapetime/pkg/render"
)

// maxCloseReason is the longest close reason a websocket frame can carry.
const maxCloseReason = 123

type server struct {
	defaults render.Config
	limits   limits
	logger   *slog.Logger
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /render", s.handleRender)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// handleRender renders the requested image and returns it encoded.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := newRequest(s.defaults)
	if err := q.applyQuery(r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format, err := imageio.ParseFormat(q.Format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := q.config(s.defaults.Workers, s.limits)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	renderer, err := render.New(cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, err := renderer.Render(r.Context())
	if err != nil {
		s.logger.Info("render abandoned", "remote", r.RemoteAddr, "error", err)
		return
	}
	s.logger.Debug("rendered", "remote", r.RemoteAddr, "mode", renderer.Config().Mode.String(), "format", format)

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, format, img); err != nil {
		s.logger.Error("encoding render", "format", format, "error", err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Info("writing render", "remote", r.RemoteAddr, "error", err)
	}
}

// handleWebsocket reads one JSON request, answers with a JSON header and then
// streams the image one binary message per row, top to bottom.
func (s *server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Info("websocket accept", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer c.CloseNow()

	ctx := r.Context()
	log := s.logger.With("remote", r.RemoteAddr)

	q := newRequest(s.defaults)
	if err := wsjson.Read(ctx, c, &q); err != nil {
		log.Info("reading websocket request", "error", err)
		return
	}

	cfg, err := q.config(s.defaults.Workers, s.limits)
	if err != nil {
		closeWithError(c, websocket.StatusPolicyViolation, err)
		return
	}
	renderer, err := render.New(cfg)
	if err != nil {
		closeWithError(c, websocket.StatusPolicyViolation, err)
		return
	}

	cfg = renderer.Config()
	err = wsjson.Write(ctx, c, header{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Mode:          cfg.Mode.String(),
		MaxIterations: cfg.MaxIterations,
	})
	if err != nil {
		log.Info("writing websocket header", "error", err)
		return
	}

	_, err = renderer.Stream(ctx, func(_ int, row []uint8) error {
		return c.Write(ctx, websocket.MessageBinary, row)
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Info("streaming render", "error", err)
		}
		return
	}

	c.Close(websocket.StatusNormalClosure, "")
}

func closeWithError(c *websocket.Conn, code websocket.StatusCode, err error) {
	reason := err.Error()
	if len(reason) > maxCloseReason {
		reason = reason[:maxCloseReason]
	}
	c.Close(code, reason)
}
