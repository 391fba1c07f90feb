package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/playback"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

var _ = Describe("Monitor", func() {
	var (
		player  *playback.Player
		m       *Monitor
		handler http.Handler
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		return rec
	}

	decodeStep := func(rec *httptest.ResponseRecorder) stepRsp {
		rsp := stepRsp{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())

		return rsp
	}

	BeforeEach(func() {
		h, err := replacement.ComputeHistory(
			[]replacement.Page{7, 0, 1, 2, 0, 3, 0, 4}, 3)
		Expect(err).NotTo(HaveOccurred())

		logger, _ := logtest.NewNullLogger()
		player = playback.NewPlayer(h)
		m = NewMonitor(player).WithLogger(logger)
		handler = m.Router()
	})

	AfterEach(func() {
		player.Pause()
	})

	It("should step forward and back", func() {
		rsp := decodeStep(do(http.MethodPost, "/api/next", ""))
		Expect(rsp.Index).To(Equal(0))
		Expect(rsp.Log).To(Equal("Step 1: page 7 -> FAULT, loaded into empty Frame 1"))

		do(http.MethodPost, "/api/next", "")
		rsp = decodeStep(do(http.MethodPost, "/api/prev", ""))
		Expect(rsp.Index).To(Equal(0))
		Expect(rsp.Stats.Faults).To(Equal(1))
	})

	It("should report not started", func() {
		rec := do(http.MethodGet, "/api/current", "")
		Expect(rec.Code).To(Equal(http.StatusOK))

		rsp := decodeStep(rec)
		Expect(rsp.Index).To(Equal(playback.NotStarted))
		Expect(rsp.Record).To(BeNil())
	})

	It("should read any step without moving the cursor", func() {
		rsp := decodeStep(do(http.MethodGet, "/api/step/3", ""))

		Expect(rsp.Record.ReplacedPage).To(Equal(replacement.Page(1)))
		Expect(rsp.Stats).To(Equal(replacement.Stats{Faults: 4}))
		Expect(player.Current()).To(Equal(playback.NotStarted))
	})

	It("should return 404 for steps out of range", func() {
		Expect(do(http.MethodGet, "/api/step/8", "").Code).
			To(Equal(http.StatusNotFound))
		Expect(do(http.MethodGet, "/api/step/-1", "").Code).
			To(Equal(http.StatusNotFound))
	})

	It("should load a new reference string", func() {
		player.Seek(4)

		rec := do(http.MethodPost, "/api/load", `{"refs":"1, 2 1","frames":1}`)
		Expect(rec.Code).To(Equal(http.StatusOK))

		Expect(player.Current()).To(Equal(playback.NotStarted))
		Expect(player.History().Len()).To(Equal(3))
		Expect(player.History().FrameCount).To(Equal(1))
	})

	It("should reject bad load requests", func() {
		for _, body := range []string{
			`not json`,
			`{"refs":"1 a","frames":3}`,
			`{"refs":"","frames":3}`,
			`{"refs":"1 2","frames":0}`,
			`{"refs":"1 2","frames":11}`,
		} {
			rec := do(http.MethodPost, "/api/load", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest), body)

			rsp := errorRsp{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
			Expect(rsp.Error).NotTo(BeEmpty())
		}

		Expect(player.History().Len()).To(Equal(8))
	})

	It("should accept more frames when allowed", func() {
		m.WithMaxFrames(20)

		rec := do(http.MethodPost, "/api/load", `{"refs":"1 2","frames":11}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("should play and pause", func() {
		rec := do(http.MethodPost, "/api/play?interval=1", "")
		Expect(rec.Code).To(Equal(http.StatusOK))

		Eventually(player.AtEnd).Should(BeTrue())
		Eventually(player.IsPlaying).Should(BeFalse())

		do(http.MethodPost, "/api/pause", "")
		Expect(player.Current()).To(Equal(7))
	})

	It("should reject bad intervals", func() {
		Expect(do(http.MethodPost, "/api/play?interval=abc", "").Code).
			To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/api/play?interval=0", "").Code).
			To(Equal(http.StatusBadRequest))
	})

	It("should reset", func() {
		player.Seek(5)

		rsp := decodeStep(do(http.MethodPost, "/api/reset", ""))
		Expect(rsp.Index).To(Equal(playback.NotStarted))
	})

	It("should only accept posts for control routes", func() {
		Expect(do(http.MethodGet, "/api/next", "").Code).
			To(Equal(http.StatusMethodNotAllowed))
	})

	It("should track progress", func() {
		player.Seek(3)

		bar := ProgressBar{}
		rec := do(http.MethodGet, "/api/progress", "")
		Expect(json.Unmarshal(rec.Body.Bytes(), &bar)).To(Succeed())
		Expect(bar.Total).To(Equal(uint64(8)))
		Expect(bar.Finished).To(Equal(uint64(4)))
	})

	It("should report stats up to the cursor", func() {
		player.Seek(7)

		var rsp struct {
			Hits     int     `json:"hits"`
			Faults   int     `json:"faults"`
			Total    int     `json:"total"`
			HitRatio float64 `json:"hit_ratio"`
		}
		rec := do(http.MethodGet, "/api/stats", "")
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Hits).To(Equal(2))
		Expect(rsp.Faults).To(Equal(6))
		Expect(rsp.Total).To(Equal(8))
		Expect(rsp.HitRatio).To(BeNumerically("~", 0.25))
	})

	It("should render text views", func() {
		player.Seek(4)

		rec := do(http.MethodGet, "/", "")
		Expect(rec.Body.String()).To(ContainSubstring("Step 5: page 0 -> HIT"))
		Expect(rec.Body.String()).To(ContainSubstring("Hit ratio: 20.00%"))

		rec = do(http.MethodGet, "/api/table?upto=1", "")
		Expect(rec.Body.String()).To(HavePrefix("Reference"))

		Expect(do(http.MethodGet, "/api/table?upto=x", "").Code).
			To(Equal(http.StatusBadRequest))
	})

	It("should reject a table bound below the first step", func() {
		rec := do(http.MethodGet, "/api/table?upto=-5", "")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("upto must be at least -1"))

		rec = do(http.MethodGet, "/api/table?upto=-1", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(HavePrefix("Reference"))
	})

	It("should export the history", func() {
		rec := do(http.MethodGet, "/api/history", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"frame_count": 3`))
	})

	It("should serialize the player state", func() {
		rec := do(http.MethodGet, "/api/player", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should fall back to a random port for reserved ports", func() {
		logger, hook := logtest.NewNullLogger()
		m.WithLogger(logger).WithPortNumber(80)

		Expect(m.portNumber).To(Equal(0))
		Expect(hook.LastEntry().Level).To(Equal(logrus.WarnLevel))
	})

	It("should serve and shut down", func() {
		url, err := m.StartServer()
		Expect(err).NotTo(HaveOccurred())

		_, err = m.StartServer()
		Expect(err).To(HaveOccurred())

		rsp, err := http.Get(url + "/api/current")
		Expect(err).NotTo(HaveOccurred())
		rsp.Body.Close()
		Expect(rsp.StatusCode).To(Equal(http.StatusOK))

		Expect(m.Shutdown(contextWithTimeout(time.Second))).To(Succeed())
	})
})
