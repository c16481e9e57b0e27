package validate_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cylsum/internal/validate"
)

var _ = Describe("Validator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("default configuration", func() {
		var report *validate.Report

		BeforeEach(func() {
			var err error
			report, err = validate.New(validate.DefaultConfig()).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("agrees with the power-vector reference", func() {
			Expect(report.Summation.Trials).To(Equal(validate.DefaultSystems))
			Expect(report.Summation.MaxAbs).To(BeNumerically("<", 1e-8))
			Expect(report.Summation.Passed()).To(BeTrue())
		})

		It("keeps the first-order sensitivity within tolerance", func() {
			s := report.Sensitivity
			Expect(s.Trials).To(BeNumerically(">", 0))
			Expect(s.Trials + s.Skipped).To(Equal(validate.DefaultSystems))
			Expect(s.MaxAbs).To(BeNumerically("<", 1e-3))
			Expect(s.BoundViolations).To(BeZero())
		})

		It("keeps the corollary within tolerance", func() {
			c := report.Corollary
			Expect(c.Trials).To(Equal(validate.DefaultCorollaryTrials))
			Expect(c.MaxAbs).To(BeNumerically("<", 1e-3))
			Expect(c.MaxRelative).To(BeNumerically("<", 1e-3))
			Expect(c.MaxRelative).To(BeNumerically(">", 0))
		})

		It("passes overall and prints the three maxima", func() {
			Expect(report.Passed()).To(BeTrue())
			out := report.String()
			Expect(out).To(ContainSubstring("Max Summation Error: "))
			Expect(out).To(ContainSubstring("Max Sensitivity Error: "))
			Expect(out).To(ContainSubstring("Max Corollary Error: "))
			Expect(out).To(MatchRegexp(`Max Corollary Error: \d\.\de-\d+`))
		})

		It("orders the statistics sensibly", func() {
			for _, c := range report.Checks() {
				Expect(c.MeanAbs).To(BeNumerically("<=", c.MaxAbs))
				Expect(c.P95).To(BeNumerically("<=", c.MaxAbs))
				Expect(c.RMS).To(BeNumerically("<=", c.MaxAbs))
			}
		})
	})

	Describe("working floor at 0.1", func() {
		It("stays inside the second-order bound", func() {
			cfg := validate.DefaultConfig()
			cfg.SensitivityFloor = 0.1

			report, err := validate.New(cfg).Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			// With |C| ≤ 6 and δ = 0.1°, the bound never exceeds 2.9e-3.
			Expect(report.Sensitivity.BoundViolations).To(BeZero())
			Expect(report.Sensitivity.MaxAbs).To(BeNumerically("<", 3e-3))
		})
	})

	Describe("larger perturbations", func() {
		It("degrade the first-order estimate", func() {
			small := validate.DefaultConfig()
			small.Systems = 2000
			large := small
			large.PerturbationDeg = 5

			a, err := validate.New(small).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			b, err := validate.New(large).Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.Sensitivity.MaxAbs).To(BeNumerically(">", 100*a.Sensitivity.MaxAbs))
			Expect(b.Sensitivity.BoundViolations).To(BeZero())
		})
	})

	Describe("reproducibility", func() {
		quick := func(seed int64) validate.Config {
			cfg := validate.DefaultConfig()
			cfg.Seed = seed
			cfg.Systems = 500
			cfg.CorollaryTrials = 100
			return cfg
		}

		It("returns identical statistics for the same seed", func() {
			a, err := validate.New(quick(7)).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			b, err := validate.New(quick(7)).Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Metrics()).To(Equal(b.Metrics()))
		})

		It("returns identical statistics when a validator is rerun", func() {
			v := validate.New(quick(9))
			a, err := v.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			b, err := v.Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Metrics()).To(Equal(b.Metrics()))
		})

		It("differs between seeds", func() {
			a, err := validate.New(quick(1)).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			b, err := validate.New(quick(2)).Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Corollary.MaxAbs).NotTo(Equal(b.Corollary.MaxAbs))
		})
	})

	Describe("samples and progress", func() {
		It("keeps every sample when asked", func() {
			cfg := validate.DefaultConfig()
			cfg.Systems = 300
			cfg.CorollaryTrials = 50
			cfg.KeepSamples = true

			var mu sync.Mutex
			last := map[string]validate.Progress{}
			report, err := validate.New(cfg, validate.WithProgress(func(p validate.Progress) {
				mu.Lock()
				defer mu.Unlock()
				last[p.Stage] = p
			})).Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Summation.Samples).To(HaveLen(report.Summation.Trials))
			Expect(report.Sensitivity.Samples).To(HaveLen(report.Sensitivity.Trials))
			Expect(report.Corollary.Samples).To(HaveLen(50))

			Expect(last).To(HaveKey(validate.CheckSummation))
			Expect(last[validate.CheckSummation].Done).To(Equal(300))
			Expect(last[validate.CheckCorollary].Done).To(Equal(last[validate.CheckCorollary].Total))
		})

		It("drops samples by default", func() {
			cfg := validate.DefaultConfig()
			cfg.Systems = 100
			report, err := validate.New(cfg).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Summation.Samples).To(BeEmpty())
		})
	})

	Describe("errors", func() {
		DescribeTable("rejects invalid configuration",
			func(mutate func(*validate.Config)) {
				cfg := validate.DefaultConfig()
				mutate(&cfg)
				_, err := validate.New(cfg).Run(ctx)
				Expect(err).To(MatchError(validate.ErrInvalidConfig))
			},
			Entry("no systems", func(c *validate.Config) { c.Systems = 0 }),
			Entry("inverted component range", func(c *validate.Config) { c.MinComponents, c.MaxComponents = 5, 2 }),
			Entry("zero components", func(c *validate.Config) { c.MinComponents = 0 }),
			Entry("inverted power range", func(c *validate.Config) { c.MinPower, c.MaxPower = 0, -6 }),
			Entry("floor below threshold", func(c *validate.Config) { c.SensitivityFloor = 0 }),
			Entry("zero perturbation", func(c *validate.Config) { c.PerturbationDeg = 0 }),
			Entry("non-positive phi", func(c *validate.Config) { c.CorollaryMinPhi = 0 }),
			Entry("corollary power spans zero", func(c *validate.Config) { c.CorollaryMaxPower = 1 }),
		)

		It("stops on a cancelled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := validate.New(validate.DefaultConfig()).Run(cctx)
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})

var _ = Describe("Ensemble", func() {
	It("runs consecutive seeds and keeps the worst case", func() {
		cfg := validate.DefaultConfig()
		cfg.Seed = 100
		cfg.Systems = 1000
		cfg.CorollaryTrials = 200

		res, err := validate.NewEnsemble(cfg, 4).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reports).To(HaveLen(4))

		for i, r := range res.Reports {
			Expect(r.Seed).To(Equal(int64(100 + i)))
			Expect(res.Worst.Sensitivity.MaxAbs).To(BeNumerically(">=", r.Sensitivity.MaxAbs))
			Expect(res.Worst.Corollary.MaxAbs).To(BeNumerically(">=", r.Corollary.MaxAbs))
		}
		Expect(res.Worst.Summation.Trials).To(Equal(4000))
		Expect(res.Worst.Passed()).To(BeTrue())
	})

	It("matches a standalone run for the same seed", func() {
		cfg := validate.DefaultConfig()
		cfg.Seed = 5
		cfg.Systems = 400
		cfg.CorollaryTrials = 40

		e := validate.NewEnsemble(cfg, 2)
		e.SetLimit(1)
		res, err := e.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		single, err := validate.New(cfg).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reports[0].Metrics()).To(Equal(single.Metrics()))
	})

	It("propagates configuration errors", func() {
		cfg := validate.DefaultConfig()
		cfg.Systems = 0
		_, err := validate.NewEnsemble(cfg, 2).Run(context.Background())
		Expect(err).To(MatchError(validate.ErrInvalidConfig))
	})
})
