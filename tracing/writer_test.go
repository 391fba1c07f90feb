package tracing

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/datarecording"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CSVStepWriter", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "trace")
	})

	It("should write a header and one row per step", func() {
		writer := NewCSVStepWriter(path)
		writer.Init()

		sim := replacement.MakeBuilder().WithFrameCount(3).Build("Sim")
		CollectTrace(sim, writer)

		_, err := sim.Run(classic)
		Expect(err).NotTo(HaveOccurred())
		Expect(writer.Close()).To(Succeed())

		file, err := os.Open(writer.Filename())
		Expect(err).NotTo(HaveOccurred())
		defer file.Close()

		rows, err := csv.NewReader(file).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(9))
		Expect(rows[0][0]).To(Equal("RunID"))
		Expect(rows[4][1:]).To(Equal([]string{
			"4", "2", "FAULT", "2", "1", "7 0 1", "7 0 2", "7 0 2",
		}))
	})

	It("should panic if the file exists", func() {
		writer := NewCSVStepWriter(path)
		writer.Init()
		DeferCleanup(writer.Close)

		Expect(func() { NewCSVStepWriter(path).Init() }).To(Panic())
	})
})

var _ = Describe("DBStepWriter", func() {
	var (
		ctx      context.Context
		sim      *replacement.Simulator
		recorder datarecording.DataRecorder
		reader   datarecording.DataReader
		first    replacement.History
		second   replacement.History
		third    replacement.History
	)

	BeforeEach(func() {
		ctx = context.Background()
		path := filepath.Join(GinkgoT().TempDir(), "record")

		recorder = datarecording.New(path)
		DeferCleanup(recorder.Close)

		sim = replacement.MakeBuilder().WithFrameCount(3).Build("Sim")
		CollectTrace(sim, NewDBStepWriter(recorder))

		var err error
		first, err = sim.Run(classic)
		Expect(err).NotTo(HaveOccurred())
		second, err = sim.Run([]replacement.Page{1, 1})
		Expect(err).NotTo(HaveOccurred())
		third, err = sim.Run([]replacement.Page{2})
		Expect(err).NotTo(HaveOccurred())

		reader, err = datarecording.NewReader(path + ".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(reader.Close)
	})

	It("should list runs in recording order", func() {
		runs, total, err := ListRuns(ctx, reader, 0, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(3))
		Expect(runs).To(HaveLen(3))
		Expect(runs[0].Faults).To(Equal(6))
		Expect(runs[1].Hits).To(Equal(1))
		Expect(runs[2].References).To(Equal("2"))
	})

	It("should list a page of runs", func() {
		all, _, err := ListRuns(ctx, reader, 0, 0)
		Expect(err).NotTo(HaveOccurred())

		runs, total, err := ListRuns(ctx, reader, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(3))
		Expect(runs).To(Equal(all[1:2]))

		runs, _, err = ListRuns(ctx, reader, 2, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(Equal(all[2:]))

		_, _, err = ListRuns(ctx, reader, -1, 0)
		Expect(err).To(HaveOccurred())
	})

	It("should read back every recorded history", func() {
		runs, _, err := ListRuns(ctx, reader, 0, 0)
		Expect(err).NotTo(HaveOccurred())

		for i, want := range []replacement.History{first, second, third} {
			h, err := ReadHistory(ctx, reader, runs[i].RunID)

			Expect(err).NotTo(HaveOccurred())
			Expect(h).To(Equal(want))
		}
	})

	It("should fail on an unknown run", func() {
		_, err := ReadHistory(ctx, reader, "missing")

		Expect(err).To(HaveOccurred())
	})
})
