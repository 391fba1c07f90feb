// Package monitoring turns a playback session into an HTTP server so that a
// browser or a script can view and drive it.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/playback"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/refstring"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/render"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/sirupsen/logrus"
	"github.com/syifan/goseth"
)

// Monitor serves a player over HTTP. Loading a new reference string
// recomputes the history and hands it to the player.
type Monitor struct {
	player     *playback.Player
	simBuilder replacement.Builder
	logger     logrus.FieldLogger

	portNumber      int
	maxFrames       int
	defaultInterval time.Duration
	profileDuration time.Duration

	progressBar *ProgressBar

	serverLock sync.Mutex
	server     *http.Server
}

// NewMonitor creates a new Monitor for the player.
func NewMonitor(player *playback.Player) *Monitor {
	m := &Monitor{
		player:          player,
		simBuilder:      replacement.MakeBuilder(),
		logger:          logrus.StandardLogger(),
		maxFrames:       refstring.DefaultMaxFrames,
		defaultInterval: time.Second,
		profileDuration: time.Second,
		progressBar: NewProgressBar("Playback",
			uint64(player.History().Len())),
	}

	player.AcceptHook(&progressHook{bar: m.progressBar})

	return m
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// replaced by a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.WithField("port", portNumber).
			Warn("port number not allowed, using a random port instead")

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithMaxFrames sets the largest frame count accepted by /api/load.
func (m *Monitor) WithMaxFrames(maxFrames int) *Monitor {
	m.maxFrames = maxFrames
	return m
}

// WithDefaultInterval sets the auto-play interval used when /api/play does
// not give one.
func (m *Monitor) WithDefaultInterval(interval time.Duration) *Monitor {
	m.defaultInterval = interval
	return m
}

// WithSimulatorBuilder sets the builder used to compute histories, so that
// hooks such as tracers are attached to every load.
func (m *Monitor) WithSimulatorBuilder(b replacement.Builder) *Monitor {
	m.simBuilder = b
	return m
}

// WithLogger sets the logger of the monitor.
func (m *Monitor) WithLogger(logger logrus.FieldLogger) *Monitor {
	m.logger = logger
	return m
}

// Router returns the handler of all the monitor routes.
func (m *Monitor) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", m.index).Methods(http.MethodGet)
	r.HandleFunc("/api/history", m.history).Methods(http.MethodGet)
	r.HandleFunc("/api/table", m.table).Methods(http.MethodGet)
	r.HandleFunc("/api/step/{index:-?[0-9]+}", m.stepAt).Methods(http.MethodGet)
	r.HandleFunc("/api/current", m.current).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", m.stats).Methods(http.MethodGet)
	r.HandleFunc("/api/progress", m.progress).Methods(http.MethodGet)
	r.HandleFunc("/api/player", m.playerState).Methods(http.MethodGet)
	r.HandleFunc("/api/next", m.next).Methods(http.MethodPost)
	r.HandleFunc("/api/prev", m.prev).Methods(http.MethodPost)
	r.HandleFunc("/api/reset", m.reset).Methods(http.MethodPost)
	r.HandleFunc("/api/play", m.play).Methods(http.MethodPost)
	r.HandleFunc("/api/pause", m.pause).Methods(http.MethodPost)
	r.HandleFunc("/api/load", m.load).Methods(http.MethodPost)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return r
}

// StartServer starts serving in the background and returns the URL of the
// server.
func (m *Monitor) StartServer() (string, error) {
	m.serverLock.Lock()
	defer m.serverLock.Unlock()

	if m.server != nil {
		return "", errors.New("monitoring server already started")
	}

	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.WithError(err).Error("monitoring server stopped")
		}
	}()

	m.logger.WithField("url", url).Info("monitoring replacement simulation")

	return url, nil
}

// OpenInBrowser opens the URL in the default browser.
func (m *Monitor) OpenInBrowser(url string) {
	browser.Stdout = os.Stderr

	err := browser.OpenURL(url)
	if err != nil {
		m.logger.WithError(err).Warn("cannot open browser")
	}
}

// Shutdown stops playback and the server.
func (m *Monitor) Shutdown(ctx context.Context) error {
	m.player.Pause()

	m.serverLock.Lock()
	defer m.serverLock.Unlock()

	if m.server == nil {
		return nil
	}

	err := m.server.Shutdown(ctx)
	m.server = nil

	return err
}

type errorRsp struct {
	Error string `json:"error"`
}

type stepRsp struct {
	Index  int                     `json:"index"`
	Record *replacement.StepRecord `json:"record,omitempty"`
	Log    string                  `json:"log,omitempty"`
	Stats  replacement.Stats       `json:"stats"`
	Ratio  float64                 `json:"hit_ratio"`
}

type loadReq struct {
	Refs   string `json:"refs"`
	Frames int    `json:"frames"`
}

func (m *Monitor) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	m.logOnErr(err)
}

func (m *Monitor) writeError(w http.ResponseWriter, status int, err error) {
	m.logger.WithError(err).WithField("status", status).Debug("request rejected")
	m.writeJSON(w, status, errorRsp{Error: err.Error()})
}

func (m *Monitor) logOnErr(err error) {
	if err != nil {
		m.logger.WithError(err).Warn("cannot write response")
	}
}

func (m *Monitor) makeStepRsp(h replacement.History, index int) stepRsp {
	stats := h.Stats(index)
	rsp := stepRsp{
		Index: index,
		Stats: stats,
		Ratio: stats.HitRatio(),
	}

	if rec, ok := h.At(index); ok {
		rsp.Record = &rec
		rsp.Log = render.LogLine(rec)
	}

	return rsp
}

func (m *Monitor) index(w http.ResponseWriter, _ *http.Request) {
	h := m.player.History()
	cur := m.player.Current()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	err := render.Table(w, h, cur)
	m.logOnErr(err)

	if rec, ok := h.At(cur); ok {
		fmt.Fprintf(w, "\n%s\n%s", render.LogLine(rec), render.StackView(rec))
	}

	fmt.Fprintf(w, "\n%s\n", render.Summary(h.Stats(cur)))
}

func (m *Monitor) history(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	err := render.WriteJSON(w, m.player.History())
	m.logOnErr(err)
}

func (m *Monitor) table(w http.ResponseWriter, r *http.Request) {
	h := m.player.History()
	upTo := m.player.Current()

	if s := r.URL.Query().Get("upto"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			m.writeError(w, http.StatusBadRequest,
				fmt.Errorf("invalid upto %q", s))
			return
		}

		if n < playback.NotStarted {
			m.writeError(w, http.StatusBadRequest,
				fmt.Errorf("upto must be at least -1, got %d", n))
			return
		}

		upTo = n
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	err := render.Table(w, h, upTo)
	m.logOnErr(err)
}

func (m *Monitor) stepAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		m.writeError(w, http.StatusBadRequest, err)
		return
	}

	h := m.player.History()
	if _, ok := h.At(index); !ok {
		m.writeError(w, http.StatusNotFound,
			fmt.Errorf("step %d out of range [0, %d)", index, h.Len()))
		return
	}

	m.writeJSON(w, http.StatusOK, m.makeStepRsp(h, index))
}

func (m *Monitor) current(w http.ResponseWriter, _ *http.Request) {
	m.writeCurrent(w)
}

func (m *Monitor) writeCurrent(w http.ResponseWriter) {
	m.writeJSON(w, http.StatusOK,
		m.makeStepRsp(m.player.History(), m.player.Current()))
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	stats := m.player.Stats()

	m.writeJSON(w, http.StatusOK, struct {
		replacement.Stats
		Total    int     `json:"total"`
		HitRatio float64 `json:"hit_ratio"`
	}{stats, stats.Total(), stats.HitRatio()})
}

func (m *Monitor) progress(w http.ResponseWriter, _ *http.Request) {
	m.progressBar.Lock()
	bytes, err := json.Marshal(m.progressBar)
	m.progressBar.Unlock()

	if err != nil {
		m.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	m.logOnErr(err)
}

type playerState struct {
	Current    int
	Length     int
	FrameCount int
	Playing    bool
	AtEnd      bool
}

func (m *Monitor) playerState(w http.ResponseWriter, _ *http.Request) {
	h := m.player.History()
	state := &playerState{
		Current:    m.player.Current(),
		Length:     h.Len(),
		FrameCount: h.FrameCount,
		Playing:    m.player.IsPlaying(),
		AtEnd:      m.player.AtEnd(),
	}

	w.Header().Set("Content-Type", "application/json")

	serializer := goseth.NewSerializer()
	serializer.SetRoot(state)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)
	m.logOnErr(err)
}

func (m *Monitor) next(w http.ResponseWriter, _ *http.Request) {
	m.player.Next()
	m.writeCurrent(w)
}

func (m *Monitor) prev(w http.ResponseWriter, _ *http.Request) {
	m.player.Prev()
	m.writeCurrent(w)
}

func (m *Monitor) reset(w http.ResponseWriter, _ *http.Request) {
	m.player.Reset()
	m.writeCurrent(w)
}

func (m *Monitor) play(w http.ResponseWriter, r *http.Request) {
	interval := m.defaultInterval

	if s := r.URL.Query().Get("interval"); s != "" {
		ms, err := strconv.Atoi(s)
		if err != nil {
			m.writeError(w, http.StatusBadRequest,
				fmt.Errorf("invalid interval %q", s))
			return
		}

		interval = time.Duration(ms) * time.Millisecond
	}

	err := m.player.Play(context.Background(), interval)
	if err != nil {
		m.writeError(w, http.StatusBadRequest, err)
		return
	}

	m.writeCurrent(w)
}

func (m *Monitor) pause(w http.ResponseWriter, _ *http.Request) {
	m.player.Pause()
	m.writeCurrent(w)
}

func (m *Monitor) load(w http.ResponseWriter, r *http.Request) {
	req := loadReq{}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		m.writeError(w, http.StatusBadRequest,
			fmt.Errorf("invalid load request: %w", err))
		return
	}

	h, err := m.compute(req)
	if err != nil {
		m.writeError(w, http.StatusBadRequest, err)
		return
	}

	m.player.Load(h)

	m.logger.WithFields(logrus.Fields{
		"steps":  h.Len(),
		"frames": h.FrameCount,
	}).Info("reference string loaded")

	m.writeCurrent(w)
}

func (m *Monitor) compute(req loadReq) (replacement.History, error) {
	refs, err := refstring.Parse(req.Refs)
	if err != nil {
		return replacement.History{}, err
	}

	err = refstring.ValidateFrameCount(req.Frames, m.maxFrames)
	if err != nil {
		return replacement.History{}, err
	}

	return m.simBuilder.
		WithFrameCount(req.Frames).
		Build("Simulator").
		Run(refs)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.writeError(w, http.StatusInternalServerError, err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		m.writeError(w, http.StatusInternalServerError, err)
		return
	}

	memoryInfo, err := proc.MemoryInfo()
	if err != nil {
		m.writeError(w, http.StatusInternalServerError, err)
		return
	}

	m.writeJSON(w, http.StatusOK, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		m.writeError(w, http.StatusConflict, err)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		m.writeError(w, http.StatusInternalServerError, err)
		return
	}

	m.writeJSON(w, http.StatusOK, prof)
}
