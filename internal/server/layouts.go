package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/railyard/stationlayout/pkg/editor"
	"github.com/railyard/stationlayout/pkg/occupancy"
	"github.com/railyard/stationlayout/pkg/scene2d"
	"github.com/railyard/stationlayout/pkg/station"
	"github.com/railyard/stationlayout/pkg/validation"
	"github.com/railyard/stationlayout/pkg/wire"
)

const ctxKeyEditor contextKey = "editor"

// createRequest starts a session. When Layout is present it is loaded and
// the identity fields are ignored.
type createRequest struct {
	StationID   string          `json:"stationId"`
	StationName string          `json:"stationName"`
	StationCode string          `json:"stationCode"`
	CreatedBy   string          `json:"createdBy"`
	Layout      json.RawMessage `json:"layout,omitempty"`
}

// sessionResponse describes a session and its live layout.
type sessionResponse struct {
	Layout    wire.Exported    `json:"layout"`
	Selection editor.Selection `json:"selection"`
	View      editor.View      `json:"view"`
	CanUndo   bool             `json:"canUndo"`
	CanRedo   bool             `json:"canRedo"`
}

// validationResponse carries the station-data outcome and the full report
// with integrity findings merged in.
type validationResponse struct {
	validation.Outcome
	Report *validation.Report `json:"report"`
}

type historyResponse struct {
	Changed bool `json:"changed"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

type addPlatformRequest struct {
	Dual bool `json:"dual"`
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type addInfrastructureRequest struct {
	Type station.InfrastructureType `json:"type"`
	X    float64                    `json:"x"`
	Y    float64                    `json:"y"`
}

type addConnectorRequest struct {
	Type        station.InfrastructureType `json:"type"`
	PlatformIDs []string                   `json:"platformIds"`
}

func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		e, ok := s.sessions.get(id)
		if !ok {
			writeNotFound(w, "layout session not found: "+id)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyEditor, e)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func editorFrom(r *http.Request) *editor.Editor {
	e, _ := r.Context().Value(ctxKeyEditor).(*editor.Editor)
	return e
}

func describe(e *editor.Editor) sessionResponse {
	return sessionResponse{
		Layout:    wire.ToWire(e.Layout()),
		Selection: e.Selection(),
		View:      e.View(),
		CanUndo:   e.CanUndo(),
		CanRedo:   e.CanRedo(),
	}
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, _ *http.Request) {
	ids := s.sessions.ids()
	sort.Strings(ids)
	writeJSON(w, http.StatusOK, map[string]any{"layouts": ids})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	e := s.sessions.factory()
	if len(req.Layout) > 0 {
		if err := e.Load(req.Layout); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
	} else {
		if strings.TrimSpace(req.StationID) == "" {
			writeBadRequest(w, "stationId is required")
			return
		}
		e.Initialize(req.StationID, req.StationName, req.StationCode, req.CreatedBy)
	}

	id := e.Layout().StationID
	if id == "" {
		writeBadRequest(w, "layout has no stationId")
		return
	}
	if replaced := s.sessions.put(id, e); replaced {
		s.logger.Info("layout session replaced", "station_id", id)
	}
	writeJSON(w, http.StatusCreated, describe(e))
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, describe(editorFrom(r)))
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	s.sessions.remove(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := editorFrom(r).Export()
	if err != nil {
		s.logger.Error("export failed", "error", err)
		writeInternalError(w, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // connection may already be closed
	w.Write(data)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("expected")
	expected, err := strconv.Atoi(raw)
	if err != nil || expected < 0 {
		writeBadRequest(w, "expected must be a non-negative integer")
		return
	}

	l := editorFrom(r).Layout()
	report := validation.ValidateWithStationData(l, expected)
	outcome := report.Outcome()
	report.Merge(validation.ValidateIntegrity(l))
	writeJSON(w, http.StatusOK, validationResponse{
		Outcome: outcome,
		Report:  report,
	})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene2d.Flatten(editorFrom(r).Layout()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, occupancy.Summarize(editorFrom(r).Layout()))
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	e := editorFrom(r)
	changed := e.Undo()
	writeJSON(w, http.StatusOK, historyResponse{Changed: changed, CanUndo: e.CanUndo(), CanRedo: e.CanRedo()})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	e := editorFrom(r)
	changed := e.Redo()
	writeJSON(w, http.StatusOK, historyResponse{Changed: changed, CanUndo: e.CanUndo(), CanRedo: e.CanRedo()})
}

func (s *Server) handleAddPlatform(w http.ResponseWriter, r *http.Request) {
	var req addPlatformRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	e := editorFrom(r)
	var p station.Platform
	if req.Dual {
		p = e.AddDualTrackPlatform()
	} else {
		p = e.AddCompletePlatform()
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleRemovePlatform(w http.ResponseWriter, r *http.Request) {
	e := editorFrom(r)
	pid := chi.URLParam(r, "pid")
	if _, ok := e.Layout().Platform(pid); !ok {
		writeNotFound(w, "platform not found: "+pid)
		return
	}
	e.RemovePlatform(pid)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMovePlatform(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	e := editorFrom(r)
	pid := chi.URLParam(r, "pid")
	e.MovePlatform(pid, req.X, req.Y)
	p, ok := e.Layout().Platform(pid)
	if !ok {
		writeNotFound(w, "platform not found: "+pid)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAddShop(w http.ResponseWriter, r *http.Request) {
	var req station.ShopZone
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	shop, err := editorFrom(r).AddShopZone(chi.URLParam(r, "pid"), req)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, shop)
}

func (s *Server) handleAddInfrastructure(w http.ResponseWriter, r *http.Request) {
	var req addInfrastructureRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	b, err := editorFrom(r).AddInfrastructure(req.Type, req.X, req.Y)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleAddConnector(w http.ResponseWriter, r *http.Request) {
	var req addConnectorRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	b, err := editorFrom(r).AddConnectorInfrastructure(req.Type, req.PlatformIDs)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// writeCommandError maps editor rejections onto status codes.
func (s *Server) writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, editor.ErrNotFound):
		writeNotFound(w, err.Error())
	case errors.Is(err, editor.ErrUnknownInfrastructure):
		writeBadRequest(w, err.Error())
	case errors.Is(err, editor.ErrNoSpace),
		errors.Is(err, editor.ErrShopWidth),
		errors.Is(err, editor.ErrTooFewPlatforms),
		errors.Is(err, editor.ErrLocked),
		errors.Is(err, editor.ErrInvalidNumber):
		writeRejected(w, err.Error())
	default:
		s.logger.Error("command failed", "error", err)
		writeInternalError(w, "command failed")
	}
}
