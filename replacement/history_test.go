package replacement

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

var _ = Describe("History", func() {
	var h History

	BeforeEach(func() {
		var err error
		h, err = ComputeHistory(pages(7, 0, 1, 2, 0, 3, 0, 4), 3)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should count over a prefix", func() {
		Expect(h.Stats(-1)).To(Equal(Stats{}))
		Expect(h.Stats(3)).To(Equal(Stats{Faults: 4}))
		Expect(h.Stats(4)).To(Equal(Stats{Hits: 1, Faults: 4}))
		Expect(h.Stats(100)).To(Equal(h.Totals()))
	})

	It("should compute ratios", func() {
		s := h.Totals()

		Expect(s.Total()).To(Equal(8))
		Expect(s.HitRatio()).To(BeNumerically("~", 0.25))
		Expect(s.FaultRatio()).To(BeNumerically("~", 0.75))
		Expect(s.HitRatioPercent()).To(BeNumerically("~", 25.0))
	})

	It("should define the ratio of nothing as zero", func() {
		Expect(Stats{}.HitRatio()).To(Equal(0.0))
		Expect(Stats{}.FaultRatio()).To(Equal(0.0))
	})

	It("should look up steps by index", func() {
		rec, ok := h.At(1)
		Expect(ok).To(BeTrue())
		Expect(rec.Page).To(Equal(Page(0)))

		_, ok = h.At(8)
		Expect(ok).To(BeFalse())
		_, ok = h.At(-1)
		Expect(ok).To(BeFalse())
	})

	It("should encode outcomes by name", func() {
		bytes, err := json.Marshal(h.Steps[4])
		Expect(err).NotTo(HaveOccurred())
		Expect(string(bytes)).To(ContainSubstring(`"outcome":"HIT"`))

		var decoded StepRecord
		Expect(json.Unmarshal(bytes, &decoded)).To(Succeed())
		Expect(decoded).To(Equal(h.Steps[4]))
	})
})

var _ = Describe("StepLogger", func() {
	It("should log every step at debug level", func() {
		logger, hook := logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		s := MakeBuilder().
			WithFrameCount(1).
			WithHook(NewStepLogger(logger)).
			Build("Sim")

		_, err := s.Run(pages(1, 2))
		Expect(err).NotTo(HaveOccurred())

		Expect(hook.AllEntries()).To(HaveLen(2))
		last := hook.LastEntry()
		Expect(last.Level).To(Equal(logrus.DebugLevel))
		Expect(last.Data["outcome"]).To(Equal("FAULT"))
		Expect(last.Data["replaced"]).To(Equal("1"))
	})
})
