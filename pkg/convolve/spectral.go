package convolve

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"toroid/pkg/core"
)

// spectral computes a whole tick of toroidal aggregates as one circular
// cross-correlation: real FFT along rows, complex FFT along columns, a
// pointwise product with the transformed kernel, then the inverse. Only
// w/2+1 coefficients are kept per row.
type spectral struct {
	w, h, half int
	norm       float64

	rowFFT *fourier.FFT
	colFFT *fourier.CmplxFFT

	kernelFreq []complex128
	freq       []complex128
	col        []complex128
	row        []float64
	out        []float64
}

func newSpectral(k core.Kernel, w, h int) *spectral {
	half := w/2 + 1
	s := &spectral{
		w:          w,
		h:          h,
		half:       half,
		norm:       1 / float64(w*h),
		rowFFT:     fourier.NewFFT(w),
		colFFT:     fourier.NewCmplxFFT(h),
		kernelFreq: make([]complex128, h*half),
		freq:       make([]complex128, h*half),
		col:        make([]complex128, h),
		row:        make([]float64, w),
		out:        make([]float64, w*h),
	}

	// Taps are mirrored so the circular convolution reads g[p+d] rather than g[p-d].
	img := make([]float64, w*h)
	for i := 0; i < k.Len(); i++ {
		tap := k.At(i)
		fx := core.Wrap(-tap.DX, w)
		fy := core.Wrap(-tap.DY, h)
		img[fy*w+fx] += tap.Weight
	}
	s.forward(s.kernelFreq, func(y int, row []float64) {
		copy(row, img[y*w:(y+1)*w])
	})
	return s
}

func (s *spectral) forward(dst []complex128, load func(y int, row []float64)) {
	for y := 0; y < s.h; y++ {
		load(y, s.row)
		s.rowFFT.Coefficients(dst[y*s.half:(y+1)*s.half], s.row)
	}
	for x := 0; x < s.half; x++ {
		for y := 0; y < s.h; y++ {
			s.col[y] = dst[y*s.half+x]
		}
		s.colFFT.Coefficients(s.col, s.col)
		for y := 0; y < s.h; y++ {
			dst[y*s.half+x] = s.col[y]
		}
	}
}

func (s *spectral) apply(cells []uint8) {
	w := s.w
	s.forward(s.freq, func(y int, row []float64) {
		for x := range row {
			row[x] = float64(cells[y*w+x])
		}
	})

	for i := range s.freq {
		s.freq[i] *= s.kernelFreq[i]
	}

	for x := 0; x < s.half; x++ {
		for y := 0; y < s.h; y++ {
			s.col[y] = s.freq[y*s.half+x]
		}
		s.colFFT.Sequence(s.col, s.col)
		for y := 0; y < s.h; y++ {
			s.freq[y*s.half+x] = s.col[y]
		}
	}

	for y := 0; y < s.h; y++ {
		s.rowFFT.Sequence(s.row, s.freq[y*s.half:(y+1)*s.half])
		for x := 0; x < w; x++ {
			v := s.row[x] * s.norm
			if r := math.Round(v); math.Abs(v-r) < 1e-6 {
				v = r
			}
			s.out[y*w+x] = v
		}
	}
}
