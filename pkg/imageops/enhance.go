// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package imageops

import (
	"image"

	"github.com/disintegration/imaging"
)

// The enhancement operations interpolate between a degenerate rendition of
// the image and the original: factor 0 returns the degenerate, factor 1 the
// original, and factors beyond 1 extrapolate past it (channel values are
// clamped). What "degenerate" means depends on the operation: all black for
// brightness, a solid gray at the mean luminance for contrast, the grayscale
// for saturation and a smoothed copy for sharpness.

// blend returns degenerate + factor*(orig-degenerate) per R, G and B value,
// truncated and clamped to [0, 255]. The alpha channel is copied from orig.
// Both images must have the same dimensions.
func blend(degenerate, orig *image.NRGBA, factor float64) *image.NRGBA {
	out := image.NewNRGBA(orig.Bounds())
	size := orig.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		pos := y * orig.Stride
		for x := 0; x < size.X; x++ {
			for c := 0; c < 3; c++ {
				d := float64(degenerate.Pix[pos+c])
				v := d + factor*(float64(orig.Pix[pos+c])-d)
				if v < 0 {
					v = 0
				} else if v > 255 {
					v = 255
				}
				out.Pix[pos+c] = uint8(v)
			}
			out.Pix[pos+3] = orig.Pix[pos+3]
			pos += 4
		}
	}
	return out
}

// EnhanceBrightness scales the image brightness: factor 0 is black, 1 the
// original and values above 1 brighten.
func EnhanceBrightness(img image.Image, factor float64) *image.NRGBA {
	orig := toNRGBA(img)
	degenerate := image.NewNRGBA(orig.Bounds())
	return blend(degenerate, orig, factor)
}

// EnhanceContrast adjusts the spread of the image around its mean luminance:
// factor 0 is a solid gray, 1 the original and values above 1 increase
// contrast.
func EnhanceContrast(img image.Image, factor float64) *image.NRGBA {
	orig := toNRGBA(img)
	gray := imaging.Grayscale(orig)

	size := gray.Bounds().Size()
	numPixels := size.X * size.Y
	if numPixels == 0 {
		return orig
	}
	sum := 0
	for y := 0; y < size.Y; y++ {
		pos := y * gray.Stride
		for x := 0; x < size.X; x++ {
			sum += int(gray.Pix[pos])
			pos += 4
		}
	}
	mean := uint8(float64(sum)/float64(numPixels) + 0.5)

	degenerate := image.NewNRGBA(orig.Bounds())
	for y := 0; y < size.Y; y++ {
		pos := y * degenerate.Stride
		for x := 0; x < size.X; x++ {
			degenerate.Pix[pos] = mean
			degenerate.Pix[pos+1] = mean
			degenerate.Pix[pos+2] = mean
			pos += 4
		}
	}
	return blend(degenerate, orig, factor)
}

// EnhanceSaturation adjusts the color saturation: factor 0 is the grayscale
// image, 1 the original and values above 1 over-saturate.
func EnhanceSaturation(img image.Image, factor float64) *image.NRGBA {
	orig := toNRGBA(img)
	degenerate := imaging.Grayscale(orig)
	return blend(degenerate, orig, factor)
}

// smoothKernel is the 3x3 smoothing filter the sharpness degenerate is built
// from.
var smoothKernel = [9]float64{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

// EnhanceSharpness adjusts the image sharpness: factor 0 is a smoothed copy,
// 1 the original and values above 1 sharpen. The 1-pixel border is never
// filtered. Images smaller than the 3x3 smoothing window are returned
// unchanged.
func EnhanceSharpness(img image.Image, factor float64) *image.NRGBA {
	orig := toNRGBA(img)
	size := orig.Bounds().Size()
	if size.X < 3 || size.Y < 3 {
		return orig
	}
	degenerate := imaging.Convolve3x3(orig, smoothKernel, &imaging.ConvolveOptions{Normalize: true})

	// Restore the border from the source: the smoothing window only applies
	// to interior pixels.
	rowBytes := size.X * 4
	copy(degenerate.Pix[:rowBytes], orig.Pix[:rowBytes])
	last := (size.Y - 1) * orig.Stride
	copy(degenerate.Pix[last:last+rowBytes], orig.Pix[last:last+rowBytes])
	for y := 1; y < size.Y-1; y++ {
		pos := y * orig.Stride
		copy(degenerate.Pix[pos:pos+4], orig.Pix[pos:pos+4])
		right := pos + (size.X-1)*4
		copy(degenerate.Pix[right:right+4], orig.Pix[right:right+4])
	}
	return blend(degenerate, orig, factor)
}
