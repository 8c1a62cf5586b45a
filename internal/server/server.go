// Package server exposes method channels over HTTP.
// A call is POSTed to /channels/{name} using the JSON method codec and the
// reply is a success or error envelope.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/Guliveer/sysquery/internal/channel"
	"github.com/Guliveer/sysquery/internal/config"
)

// maxBodyBytes caps the size of an encoded method call.
const maxBodyBytes = 1 << 20

// Server routes HTTP requests to channels held by a Messenger.
type Server struct {
	cfg       *config.Config
	messenger *channel.Messenger
	logger    *zap.Logger
	mux       *http.ServeMux
}

// New creates a server for the given messenger.
func New(cfg *config.Config, messenger *channel.Messenger, logger *zap.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		messenger: messenger,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /channels/{name}", s.handleCall)
	s.mux.HandleFunc("GET /channels/{name}/{method}", s.handleGet)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.mux,
		ReadTimeout:  s.cfg.Server.ReadTimeout.Duration,
		WriteTimeout: s.cfg.Server.WriteTimeout.Duration,
		ErrorLog:     zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("Listening",
		zap.String("addr", ln.Addr().String()),
		zap.Strings("channels", s.messenger.Names()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, channel.NewError(channel.CodeBadRequest, err.Error(), nil, err))
		return
	}
	call, err := channel.DecodeMethodCall(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, channel.NewError(channel.CodeBadRequest, err.Error(), nil, err))
		return
	}
	s.dispatch(w, r, call)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, channel.MethodCall{Method: r.PathValue("method")})
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, call channel.MethodCall) {
	name := r.PathValue("name")
	start := time.Now()

	result, err := s.messenger.Send(r.Context(), name, call)

	s.logger.Debug("Handled call",
		zap.String("channel", name),
		zap.String("method", call.Method),
		zap.Duration("took", time.Since(start)),
		zap.Error(err))

	switch {
	case err == nil:
		s.writeSuccess(w, result)
	case errors.Is(err, channel.ErrUnknownChannel), errors.Is(err, channel.ErrNotImplemented):
		s.writeError(w, http.StatusNotFound, channel.NewError(channel.CodeNotImplemented, err.Error(), nil, err))
	default:
		// Handler failures are payload, not transport errors.
		s.writeError(w, http.StatusOK, channel.AsError(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(map[string]interface{}{
		"status":   "ok",
		"channels": s.messenger.Names(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.write(w, http.StatusOK, data)
}

func (s *Server) writeSuccess(w http.ResponseWriter, result interface{}) {
	data, err := channel.EncodeSuccessEnvelope(result)
	if err != nil {
		s.logger.Error("Failed to encode result", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, channel.AsError(err))
		return
	}
	s.write(w, http.StatusOK, data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, e *channel.Error) {
	data, err := channel.EncodeErrorEnvelope(e)
	if err != nil {
		// Details were not encodable; drop them.
		data, _ = channel.EncodeErrorEnvelope(channel.NewError(e.Code, e.Message, nil, nil))
	}
	s.write(w, status, data)
}

func (s *Server) write(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("Failed to write response", zap.Error(err))
	}
}
