package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Stepper", func() {
	var s *Stepper

	BeforeEach(func() {
		var err error
		s, err = New(Config{MinSize: 1, MaxSize: 1000, DiffusionCoefficient: 1e-14, BaselineSize: 10000})
		Expect(err).NotTo(HaveOccurred())
	})

	advance := func(n int) {
		for i := 0; i < n; i++ {
			s.Tick()
		}
	}

	Context("when idle", func() {
		It("starts running from index zero", func() {
			s.Start()
			Expect(s.Phase()).To(Equal(Running))
			Expect(s.Index()).To(BeZero())
		})
	})

	Context("when running", func() {
		BeforeEach(func() { s.Start() })

		It("keeps every series aligned with the cursor", func() {
			advance(33)
			series := s.Series()
			Expect(series.Radii).To(HaveLen(33))
			Expect(series.DiffusionTimes).To(HaveLen(33))
			Expect(series.ImprovementFactors).To(HaveLen(33))
			Expect(s.Index()).To(Equal(33))
		})

		It("pauses without losing data", func() {
			advance(10)
			s.Pause()
			Expect(s.Phase()).To(Equal(Paused))
			advance(5)
			Expect(s.Series().Len()).To(Equal(10))
		})

		It("completes after the last radius", func() {
			advance(101)
			Expect(s.Phase()).To(Equal(Complete))
			Expect(s.Running()).To(BeFalse())
			advance(3)
			Expect(s.Index()).To(Equal(101))
		})

		It("reports the worked example at the end of the sweep", func() {
			advance(101)
			last, ok := s.Latest()
			Expect(ok).To(BeTrue())
			Expect(last.Radius).To(BeNumerically("~", 1000, 1e-9))
			Expect(last.DiffusionTime).To(BeNumerically("~", 100, 1e-9))
			Expect(last.Improvement).To(BeNumerically("~", 100, 1e-9))
		})
	})

	DescribeTable("reset returns to idle",
		func(prepare func()) {
			prepare()
			s.Reset()
			Expect(s.Phase()).To(Equal(Idle))
			Expect(s.Index()).To(BeZero())
			Expect(s.Series().Len()).To(BeZero())
			Expect(s.Len()).To(Equal(101))
		},
		Entry("from idle", func() {}),
		Entry("from running", func() { s.Start(); advance(12) }),
		Entry("from paused", func() { s.Start(); advance(12); s.Pause() }),
		Entry("from complete", func() { s.Start(); advance(101) }),
	)
})
