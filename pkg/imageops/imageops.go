// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package imageops implements the fixed set of pixel transforms used by
// augmentation policies: affine warps (shear, translate, rotate), per-channel
// look-up-table operations (posterize, solarize, equalize, auto-contrast) and
// enhancement blends (brightness, contrast, saturation, sharpness).
//
// Every function takes any image.Image, never modifies it, and returns a new
// *image.NRGBA anchored at the origin. All operations work on the 8-bit R, G
// and B channels and pass the alpha channel through untouched.
//
// The look-up-table and enhancement operations reproduce the integer
// arithmetic of the classic imaging tool chains, so magnitudes tuned
// elsewhere (e.g. learned augmentation policies) keep their meaning here.
package imageops

import (
	"image"

	"github.com/disintegration/imaging"
)

// toNRGBA returns img as a new *image.NRGBA anchored at (0, 0). The result is
// always a copy, so callers may write to it freely.
func toNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// histogram counts the pixel values of each of the R, G and B channels.
func histogram(img *image.NRGBA) (histo [3][256]int) {
	size := img.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		pos := y * img.Stride
		for x := 0; x < size.X; x++ {
			histo[0][img.Pix[pos]]++
			histo[1][img.Pix[pos+1]]++
			histo[2][img.Pix[pos+2]]++
			pos += 4
		}
	}
	return
}

// applyLUT rewrites every R, G and B value of img in place through the same
// look-up table. Alpha is left untouched.
func applyLUT(img *image.NRGBA, lut *[256]uint8) {
	size := img.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		pos := y * img.Stride
		for x := 0; x < size.X; x++ {
			img.Pix[pos] = lut[img.Pix[pos]]
			img.Pix[pos+1] = lut[img.Pix[pos+1]]
			img.Pix[pos+2] = lut[img.Pix[pos+2]]
			pos += 4
		}
	}
}

// applyLUTs is applyLUT with one look-up table per channel.
func applyLUTs(img *image.NRGBA, luts *[3][256]uint8) {
	size := img.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		pos := y * img.Stride
		for x := 0; x < size.X; x++ {
			img.Pix[pos] = luts[0][img.Pix[pos]]
			img.Pix[pos+1] = luts[1][img.Pix[pos+1]]
			img.Pix[pos+2] = luts[2][img.Pix[pos+2]]
			pos += 4
		}
	}
}

// identityLUT fills lut with the identity mapping.
func identityLUT(lut *[256]uint8) {
	for i := range lut {
		lut[i] = uint8(i)
	}
}

// Posterize keeps only the top bits of each R, G and B channel value,
// quantizing the image to fewer tones. bits is clamped to [1, 8]; 8 bits is
// the identity.
func Posterize(img image.Image, bits int) *image.NRGBA {
	if bits < 1 {
		bits = 1
	} else if bits > 8 {
		bits = 8
	}
	mask := uint8(0xFF << (8 - bits))
	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(i) & mask
	}
	out := toNRGBA(img)
	applyLUT(out, &lut)
	return out
}

// Solarize inverts every R, G and B channel value at or above threshold.
// threshold is clamped to [0, 256]; 256 inverts nothing and 0 inverts all.
func Solarize(img image.Image, threshold int) *image.NRGBA {
	if threshold < 0 {
		threshold = 0
	} else if threshold > 256 {
		threshold = 256
	}
	var lut [256]uint8
	for i := range lut {
		if i < threshold {
			lut[i] = uint8(i)
		} else {
			lut[i] = uint8(255 - i)
		}
	}
	out := toNRGBA(img)
	applyLUT(out, &lut)
	return out
}

// Equalize flattens the histogram of each R, G and B channel independently,
// using the classic integer construction: pixels are remapped so every tone
// carries a roughly equal pixel count. Channels whose histogram occupies a
// single bin, or with too few pixels to spread over 255 tones, are left
// unchanged.
func Equalize(img image.Image) *image.NRGBA {
	out := toNRGBA(img)
	histo := histogram(out)
	var luts [3][256]uint8
	for c := 0; c < 3; c++ {
		equalizeLUT(&histo[c], &luts[c])
	}
	applyLUTs(out, &luts)
	return out
}

func equalizeLUT(h *[256]int, lut *[256]uint8) {
	total, lastNonZero, numNonZero := 0, 0, 0
	for _, count := range h {
		total += count
		if count > 0 {
			lastNonZero = count
			numNonZero++
		}
	}
	// The last occupied bin is excluded from the step so the top tone maps
	// to 255 exactly.
	step := (total - lastNonZero) / 255
	if numNonZero <= 1 || step == 0 {
		identityLUT(lut)
		return
	}
	n := step / 2
	for i := 0; i < 256; i++ {
		v := n / step
		if v > 255 {
			v = 255
		}
		lut[i] = uint8(v)
		n += h[i]
	}
}

// AutoContrast stretches each R, G and B channel linearly so that its lowest
// occupied value maps to 0 and its highest to 255. Channels that already span
// a single value are left unchanged.
func AutoContrast(img image.Image) *image.NRGBA {
	out := toNRGBA(img)
	histo := histogram(out)
	var luts [3][256]uint8
	for c := 0; c < 3; c++ {
		autoContrastLUT(&histo[c], &luts[c])
	}
	applyLUTs(out, &luts)
	return out
}

func autoContrastLUT(h *[256]int, lut *[256]uint8) {
	lo := 0
	for lo < 255 && h[lo] == 0 {
		lo++
	}
	hi := 255
	for hi > 0 && h[hi] == 0 {
		hi--
	}
	if hi <= lo {
		identityLUT(lut)
		return
	}
	scale := 255.0 / float64(hi-lo)
	offset := -float64(lo) * scale
	for i := 0; i < 256; i++ {
		v := int(float64(i)*scale + offset)
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		lut[i] = uint8(v)
	}
}
