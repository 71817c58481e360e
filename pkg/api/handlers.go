// Package api exposes graph metadata, key decoding and per-edge graphlet
// counts over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/hetero"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/report"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/store"
)

// Handlers serves one graph. The store is optional; without it edges are
// classified on request.
type Handlers struct {
	classifier *hetero.Classifier
	store      *store.Store
	startedAt  time.Time
}

func NewHandlers(classifier *hetero.Classifier, s *store.Store) *Handlers {
	return &Handlers{classifier: classifier, store: s, startedAt: time.Now()}
}

type GraphInfo struct {
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
	Labels      int    `json:"labels"`
	MaximalHash uint64 `json:"maximal_hash"`
	Stored      bool   `json:"stored"`
}

type KindInfo struct {
	Ordinal int    `json:"ordinal"`
	Name    string `json:"name"`
	Nodes   int    `json:"nodes"`
	Derived bool   `json:"derived"`
	Reduced string `json:"reduced"`
}

type DecodedKey struct {
	Key    uint64   `json:"key"`
	Kind   string   `json:"kind"`
	Labels []uint32 `json:"labels"`
}

type EdgeGraphlets struct {
	Src    int            `json:"src"`
	Dst    int            `json:"dst"`
	Source string         `json:"source"`
	Report *report.Report `json:"report"`
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccessResponse(w, "Service is healthy", map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}

func (h *Handlers) GraphInfo(w http.ResponseWriter, r *http.Request) {
	g := h.classifier.Graph()
	WriteSuccessResponse(w, "Graph retrieved", GraphInfo{
		Nodes:       g.NumberOfNodes(),
		Edges:       g.NumberOfEdges(),
		Labels:      g.NumberOfNodeLabels(),
		MaximalHash: uint64(h.classifier.Hash().MaximalHash()),
		Stored:      h.store != nil,
	})
}

func (h *Handlers) ListKinds(w http.ResponseWriter, r *http.Request) {
	kinds := make([]KindInfo, 0, graphlet.NumberOfKinds)
	for _, kind := range graphlet.Kinds() {
		kinds = append(kinds, KindInfo{
			Ordinal: int(kind),
			Name:    kind.String(),
			Nodes:   kind.Nodes(),
			Derived: kind.Derived(),
			Reduced: kind.Reduced().String(),
		})
	}
	WriteSuccessResponse(w, "Graphlet kinds retrieved", kinds)
}

func (h *Handlers) DecodeKey(w http.ResponseWriter, r *http.Request) {
	key, err := strconv.ParseUint(mux.Vars(r)["key"], 10, 64)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid key", err)
		return
	}

	t, err := h.classifier.Hash().Decode(graphlet.Key(key))
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Key does not decode", err)
		return
	}

	labels := make([]uint32, 0, 4)
	for _, l := range t.NodeLabels() {
		labels = append(labels, uint32(l))
	}
	WriteSuccessResponse(w, "Key decoded", DecodedKey{Key: key, Kind: t.Kind.String(), Labels: labels})
}

func (h *Handlers) EdgeGraphlets(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	g := h.classifier.Graph()

	src, errSrc := strconv.Atoi(vars["src"])
	dst, errDst := strconv.Atoi(vars["dst"])
	if errSrc != nil || errDst != nil || src >= g.NumberOfNodes() || dst >= g.NumberOfNodes() {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid edge",
			fmt.Errorf("nodes must be in [0, %d)", g.NumberOfNodes()))
		return
	}
	if !graph.HasEdge(g, src, dst) {
		WriteErrorResponse(w, http.StatusNotFound, "Edge not found", nil)
		return
	}

	c, source, err := h.lookup(src, dst)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load edge", err)
		return
	}

	rep, err := report.Build(c, h.classifier.Hash())
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to decode counts", err)
		return
	}
	WriteSuccessResponse(w, "Edge graphlets retrieved", EdgeGraphlets{Src: src, Dst: dst, Source: source, Report: rep})
}

// lookup prefers the stored counter and falls back to classifying.
func (h *Handlers) lookup(src, dst int) (counter.Counter, string, error) {
	if h.store != nil {
		c, err := h.store.GetEdge(src, dst)
		if err == nil {
			return c, "store", nil
		}
		if !errors.Is(err, store.ErrEdgeNotFound) {
			return nil, "", err
		}
	}
	return h.classifier.Classify(src, dst), "computed", nil
}
