package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Render", func() {
	var h replacement.History

	BeforeEach(func() {
		var err error
		h, err = replacement.ComputeHistory(
			[]replacement.Page{7, 0, 1, 2, 0, 3, 0, 4}, 3)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should describe every kind of step", func() {
		Expect(LogLine(h.Steps[0])).
			To(Equal("Step 1: page 7 -> FAULT, loaded into empty Frame 1"))
		Expect(LogLine(h.Steps[3])).
			To(Equal("Step 4: page 2 -> FAULT, replaced page 1 in Frame 3"))
		Expect(LogLine(h.Steps[4])).
			To(Equal("Step 5: page 0 -> HIT"))
	})

	It("should write log lines up to the cursor", func() {
		buf := new(bytes.Buffer)

		Expect(Log(buf, h, 1)).To(Succeed())

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines).To(HaveLen(2))
	})

	It("should draw the table up to the cursor", func() {
		buf := new(bytes.Buffer)

		Expect(Table(buf, h, 4)).To(Succeed())

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(5))
		Expect(strings.Fields(lines[0])).
			To(Equal([]string{"Reference", "7", "0", "1", "2", "0"}))
		Expect(strings.Fields(lines[3])).
			To(Equal([]string{"Frame", "3", "-", "-", "1*", "2*", "2"}))
		Expect(strings.Fields(lines[4])).
			To(Equal([]string{"Result", "F", "F", "F", "F", "H"}))
	})

	It("should draw only headers before the first step", func() {
		buf := new(bytes.Buffer)

		Expect(Table(buf, h, -1)).To(Succeed())
		Expect(strings.Fields(buf.String())).
			To(Equal([]string{
				"Reference",
				"Frame", "1", "Frame", "2", "Frame", "3",
				"Result",
			}))
	})

	It("should treat any negative bound as before the first step", func() {
		before := new(bytes.Buffer)
		Expect(Table(before, h, -1)).To(Succeed())

		buf := new(bytes.Buffer)
		Expect(Table(buf, h, -5)).To(Succeed())
		Expect(buf.String()).To(Equal(before.String()))
	})

	It("should draw the stack top first", func() {
		view := StackView(h.Steps[7])

		Expect(strings.Split(view, "\n")[0]).To(ContainSubstring("4 | <- top"))
		Expect(view).To(ContainSubstring("7"))
		Expect(StackView(replacement.StepRecord{})).To(Equal("(empty stack)\n"))
	})

	It("should mark the new frame", func() {
		Expect(FramesView(h.Steps[3])).
			To(Equal("Frame 1: 7  Frame 2: 0  Frame 3: 2 (new)"))
		Expect(FramesView(h.Steps[4])).
			To(Equal("Frame 1: 7  Frame 2: 0  Frame 3: 2"))
	})

	It("should summarize", func() {
		Expect(Summary(h.Totals())).
			To(Equal("Hits: 2  Faults: 6  Hit ratio: 25.00%"))
		Expect(Summary(replacement.Stats{})).
			To(Equal("Hits: 0  Faults: 0  Hit ratio: 0.00%"))
	})

	It("should export JSON with totals", func() {
		buf := new(bytes.Buffer)

		Expect(WriteJSON(buf, h)).To(Succeed())

		var doc historyJSON
		Expect(json.Unmarshal(buf.Bytes(), &doc)).To(Succeed())
		Expect(doc.Steps).To(Equal(h.Steps))
		Expect(doc.Totals.Faults).To(Equal(6))
		Expect(doc.Totals.HitRatio).To(BeNumerically("~", 0.25))
	})
})
