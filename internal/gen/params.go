package gen

// Per-stage parameter structs. Each validates its own invariants before the
// pipeline draws a single sample; defaults follow the literature-grounded
// values the generator was calibrated with.

// BaselineParams are the hyper-priors for per-card duration parameters:
// mu_t ~ Normal(MuMean, MuSD), sigma_t ~ Uniform(SigmaLow, SigmaHigh),
// gamma_t ~ Uniform(GammaLow, GammaHigh).
type BaselineParams struct {
	MuMean    float64 `yaml:"mu_mean"`
	MuSD      float64 `yaml:"mu_sd"`
	SigmaLow  float64 `yaml:"sigma_low"`
	SigmaHigh float64 `yaml:"sigma_high"`
	GammaLow  float64 `yaml:"gamma_low"`
	GammaHigh float64 `yaml:"gamma_high"`
}

func DefaultBaselineParams() BaselineParams {
	return BaselineParams{
		MuMean:    3.5,
		MuSD:      0.35,
		SigmaLow:  0.20,
		SigmaHigh: 0.60,
		GammaLow:  0.0,
		GammaHigh: 10.0,
	}
}

func (p BaselineParams) Validate() error {
	if p.MuSD < 0 {
		return configErrorf("mu_sd must be >= 0, got %g", p.MuSD)
	}
	if p.SigmaLow <= 0 || p.SigmaHigh <= 0 {
		return configErrorf("sigma bounds must be > 0, got [%g, %g]", p.SigmaLow, p.SigmaHigh)
	}
	if p.SigmaLow > p.SigmaHigh {
		return configErrorf("sigma_low %g > sigma_high %g", p.SigmaLow, p.SigmaHigh)
	}
	if p.GammaLow < 0 || p.GammaHigh < 0 {
		return configErrorf("gamma bounds must be >= 0, got [%g, %g]", p.GammaLow, p.GammaHigh)
	}
	if p.GammaLow > p.GammaHigh {
		return configErrorf("gamma_low %g > gamma_high %g", p.GammaLow, p.GammaHigh)
	}
	return nil
}

// FrequencyParams control the case mix and the per-card surgeon split.
// The per-card Dirichlet concentration is
//
//	alpha_s = BaseConcentration * affinity_s / (1 + complexity_t * ComplexityScaling)
//
// so more complex cards get lower concentration and more skewed splits.
type FrequencyParams struct {
	CaseMixConcentration float64 `yaml:"case_mix_concentration"`
	BaseConcentration    float64 `yaml:"base_concentration"`
	ComplexityScaling    float64 `yaml:"complexity_scaling"`
	AffinityLow          float64 `yaml:"affinity_low"`
	AffinityHigh         float64 `yaml:"affinity_high"`
}

func DefaultFrequencyParams() FrequencyParams {
	return FrequencyParams{
		CaseMixConcentration: 1.0,
		BaseConcentration:    1.0,
		ComplexityScaling:    0.0,
		AffinityLow:          1.0,
		AffinityHigh:         1.0,
	}
}

func (p FrequencyParams) Validate() error {
	if p.CaseMixConcentration <= 0 {
		return configErrorf("case_mix_concentration must be > 0, got %g", p.CaseMixConcentration)
	}
	if p.BaseConcentration <= 0 {
		return configErrorf("base_concentration must be > 0, got %g", p.BaseConcentration)
	}
	if p.ComplexityScaling < 0 {
		return configErrorf("complexity_scaling must be >= 0, got %g", p.ComplexityScaling)
	}
	if p.AffinityLow <= 0 || p.AffinityHigh <= 0 {
		return configErrorf("affinity bounds must be > 0, got [%g, %g]", p.AffinityLow, p.AffinityHigh)
	}
	if p.AffinityLow > p.AffinityHigh {
		return configErrorf("affinity_low %g > affinity_high %g", p.AffinityLow, p.AffinityHigh)
	}
	return nil
}

// DurationParams control surgeon speed and specialization effects on the
// per-pair duration models.
type DurationParams struct {
	// SpeedSigma is the sigma of the per-surgeon lognormal speed multiplier.
	SpeedSigma float64 `yaml:"speed_sigma"`
	// TypeSkillSigma is the sigma of the per-pair lognormal multiplier.
	TypeSkillSigma float64 `yaml:"type_skill_sigma"`
	// SpecializationStrength shrinks sigma for surgeons whose assignment
	// frequency for a card is above average.
	SpecializationStrength float64 `yaml:"specialization_strength"`
	// SigmaFloor keeps the adjusted sigma strictly positive.
	SigmaFloor float64 `yaml:"sigma_floor"`
}

func DefaultDurationParams() DurationParams {
	return DurationParams{
		SpeedSigma:             0.10,
		TypeSkillSigma:         0.05,
		SpecializationStrength: 0.10,
		SigmaFloor:             1e-3,
	}
}

func (p DurationParams) Validate() error {
	if p.SpeedSigma < 0 {
		return configErrorf("speed_sigma must be >= 0, got %g", p.SpeedSigma)
	}
	if p.TypeSkillSigma < 0 {
		return configErrorf("type_skill_sigma must be >= 0, got %g", p.TypeSkillSigma)
	}
	if p.SpecializationStrength < 0 {
		return configErrorf("specialization_strength must be >= 0, got %g", p.SpecializationStrength)
	}
	if p.SigmaFloor <= 0 {
		return configErrorf("sigma_floor must be > 0, got %g", p.SigmaFloor)
	}
	return nil
}

// PriorityParams bound the linear complexity → priority mappings. Noise is
// zero-mean Normal, added before clipping.
type PriorityParams struct {
	OperateByMin   float64 `yaml:"operate_by_min"`
	OperateByMax   float64 `yaml:"operate_by_max"`
	OperateByNoise float64 `yaml:"operate_by_noise"` // Normal sigma, days
	ChangesMin     float64 `yaml:"changes_min"`
	ChangesMax     float64 `yaml:"changes_max"`
	ChangesNoise   float64 `yaml:"changes_noise"`
}

func DefaultPriorityParams() PriorityParams {
	return PriorityParams{
		OperateByMin:   14,
		OperateByMax:   90,
		OperateByNoise: 4,
		ChangesMin:     0,
		ChangesMax:     5,
		ChangesNoise:   0.5,
	}
}

func (p PriorityParams) Validate() error {
	if p.OperateByMin < 1 {
		return configErrorf("operate_by_min must be >= 1, got %g", p.OperateByMin)
	}
	if p.OperateByMin > p.OperateByMax {
		return configErrorf("operate_by_min %g > operate_by_max %g", p.OperateByMin, p.OperateByMax)
	}
	if p.ChangesMin < 0 {
		return configErrorf("changes_min must be >= 0, got %g", p.ChangesMin)
	}
	if p.ChangesMin > p.ChangesMax {
		return configErrorf("changes_min %g > changes_max %g", p.ChangesMin, p.ChangesMax)
	}
	if p.OperateByNoise < 0 || p.ChangesNoise < 0 {
		return configErrorf("noise sigmas must be >= 0")
	}
	return nil
}

// LOSParams bound one length-of-stay lognormal, each parameter linear in
// complexity with zero-mean Normal noise.
type LOSParams struct {
	MuMin      float64 `yaml:"mu_min"`
	MuMax      float64 `yaml:"mu_max"`
	MuNoise    float64 `yaml:"mu_noise"`
	SigmaMin   float64 `yaml:"sigma_min"`
	SigmaMax   float64 `yaml:"sigma_max"`
	SigmaNoise float64 `yaml:"sigma_noise"`
	GammaMin   float64 `yaml:"gamma_min"`
	GammaMax   float64 `yaml:"gamma_max"`
	GammaNoise float64 `yaml:"gamma_noise"`
}

func (p LOSParams) validate(label string) error {
	if p.SigmaMin <= 0 || p.SigmaMax <= 0 {
		return configErrorf("%s sigma bounds must be > 0, got [%g, %g]", label, p.SigmaMin, p.SigmaMax)
	}
	if p.MuMin > p.MuMax || p.SigmaMin > p.SigmaMax || p.GammaMin > p.GammaMax {
		return configErrorf("%s bounds inverted", label)
	}
	if p.GammaMin < 0 {
		return configErrorf("%s gamma_min must be >= 0, got %g", label, p.GammaMin)
	}
	if p.MuNoise < 0 || p.SigmaNoise < 0 || p.GammaNoise < 0 {
		return configErrorf("%s noise sigmas must be >= 0", label)
	}
	return nil
}

// AdmissionParams bound the postoperative admission probabilities and LOS
// lognormals. PICU and PWard are rescaled proportionally when their
// post-noise sum exceeds 1.
type AdmissionParams struct {
	PICUMin    float64   `yaml:"p_icu_min"`
	PICUMax    float64   `yaml:"p_icu_max"`
	PICUNoise  float64   `yaml:"p_icu_noise"`
	PWardMin   float64   `yaml:"p_ward_min"`
	PWardMax   float64   `yaml:"p_ward_max"`
	PWardNoise float64   `yaml:"p_ward_noise"`
	ICULOS     LOSParams `yaml:"icu_los"`
	WardLOS    LOSParams `yaml:"ward_los"`
}

func DefaultAdmissionParams() AdmissionParams {
	return AdmissionParams{
		PICUMin:    0.0,
		PICUMax:    0.30,
		PICUNoise:  0.03,
		PWardMin:   0.20,
		PWardMax:   0.85,
		PWardNoise: 0.05,
		ICULOS: LOSParams{
			MuMin: 0.0, MuMax: 1.0, MuNoise: 0.08,
			SigmaMin: 0.1, SigmaMax: 0.5, SigmaNoise: 0.03,
			GammaMin: 0.0, GammaMax: 0.5, GammaNoise: 0.05,
		},
		WardLOS: LOSParams{
			MuMin: 0.5, MuMax: 2.0, MuNoise: 0.10,
			SigmaMin: 0.2, SigmaMax: 0.6, SigmaNoise: 0.03,
			GammaMin: 0.0, GammaMax: 1.0, GammaNoise: 0.05,
		},
	}
}

func (p AdmissionParams) Validate() error {
	for _, b := range []struct {
		label    string
		min, max float64
		noise    float64
	}{
		{"p_icu", p.PICUMin, p.PICUMax, p.PICUNoise},
		{"p_ward", p.PWardMin, p.PWardMax, p.PWardNoise},
	} {
		if b.min < 0 || b.min > 1 || b.max < 0 || b.max > 1 {
			return configErrorf("%s bounds must lie in [0,1], got [%g, %g]", b.label, b.min, b.max)
		}
		if b.min > b.max {
			return configErrorf("%s_min %g > %s_max %g", b.label, b.min, b.label, b.max)
		}
		if b.noise < 0 {
			return configErrorf("%s_noise must be >= 0, got %g", b.label, b.noise)
		}
	}
	if err := p.ICULOS.validate("icu_los"); err != nil {
		return err
	}
	return p.WardLOS.validate("ward_los")
}

// ScheduleParams control the per-surgeon Dirichlet over (room, weekday)
// slots. The concentration for a surgeon is BaseConcentration times the
// surgeon's relative workload, so busier surgeons spread over more slots.
type ScheduleParams struct {
	BaseConcentration float64 `yaml:"base_concentration"`
	SparsityThreshold float64 `yaml:"sparsity_threshold"`
}

func DefaultScheduleParams() ScheduleParams {
	return ScheduleParams{
		BaseConcentration: 1.0,
		SparsityThreshold: 0.05,
	}
}

func (p ScheduleParams) Validate() error {
	if p.BaseConcentration <= 0 {
		return configErrorf("base_concentration must be > 0, got %g", p.BaseConcentration)
	}
	if p.SparsityThreshold < 0 || p.SparsityThreshold >= 1 {
		return configErrorf("sparsity_threshold must lie in [0,1), got %g", p.SparsityThreshold)
	}
	return nil
}

// WaitingListParams control the synthetic request stream.
type WaitingListParams struct {
	// HorizonDays is the registration window: request timestamps are drawn
	// uniformly from the HorizonDays before Epoch.
	HorizonDays int `yaml:"horizon_days"`
}

func DefaultWaitingListParams() WaitingListParams {
	return WaitingListParams{HorizonDays: 90}
}

func (p WaitingListParams) Validate() error {
	if p.HorizonDays <= 0 {
		return configErrorf("horizon_days must be > 0, got %d", p.HorizonDays)
	}
	return nil
}
