package bench

import "math"

// FloatStats summarizes a sample: count, minimum, maximum, mean and sample
// standard deviation.
type FloatStats struct {
	N    int
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	s.Min, s.Max = values[0], values[0]
	sum := 0.0
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(s.N)

	variance := 0.0
	if s.N >= 2 {
		for _, v := range values {
			d := v - s.Mean
			variance += d * d
		}
		variance /= float64(s.N - 1)
	}
	s.Std = math.Sqrt(variance)
	return s
}

// Summary aggregates a bench run.
type Summary struct {
	Trials         int
	WithExact      int // Trials where the exact solver produced a bin count
	ProvenOptimal  int // Trials where the exact result is proven optimal
	MatchedOptimum int // Trials where annealing hit the exact bin count
	MatchRate      float64

	Gap          FloatStats // Percent, over trials WithExact
	AnnealTimeMs FloatStats
	ExactTimeMs  FloatStats
	AnnealBins   FloatStats
	ExactBins    FloatStats
}

// Summarize computes aggregate statistics over records.
func Summarize(records []Record) Summary {
	s := Summary{Trials: len(records)}

	var gaps, annealMs, exactMs, annealBins, exactBins []float64
	for _, r := range records {
		annealMs = append(annealMs, durationMs(r.AnnealTime))
		annealBins = append(annealBins, float64(r.AnnealBins))
		if !r.HasGap {
			continue
		}
		s.WithExact++
		if r.ExactOptimal {
			s.ProvenOptimal++
		}
		if r.AnnealBins == r.ExactBins {
			s.MatchedOptimum++
		}
		gaps = append(gaps, r.GapPercent)
		exactMs = append(exactMs, durationMs(r.ExactTime))
		exactBins = append(exactBins, float64(r.ExactBins))
	}

	if s.WithExact > 0 {
		s.MatchRate = float64(s.MatchedOptimum) / float64(s.WithExact) * 100
	}
	s.Gap = CalcFloatStats(gaps)
	s.AnnealTimeMs = CalcFloatStats(annealMs)
	s.ExactTimeMs = CalcFloatStats(exactMs)
	s.AnnealBins = CalcFloatStats(annealBins)
	s.ExactBins = CalcFloatStats(exactBins)
	return s
}
