package texture

import (
	"image"

	"golang.org/x/image/draw"
)

// BuildMipChain produces the full box-filtered mip pyramid for an
// atlas region, base image first, halving each axis until either
// dimension reaches 1 texel. Levels is set to the resulting chain
// length so MipLevel's clamp has the right upper bound.
//
// Grounded on spec.md §4.6's "mip level implied by (ddx,ddy)"
// requirement; no teacher equivalent (the teacher samples GPU mip
// chains via Vulkan, never builds one on the CPU), so this reaches
// into the rest of the pack for golang.org/x/image/draw's
// CatmullRom/BiLinear scalers, using draw.BiLinear as the box-filter
// stand-in since the package exposes no literal box kernel.
func (a *AtlasMapping) BuildMipChain() {
	if a.Image == nil {
		return
	}
	chain := []*image.NRGBA{a.Image}
	src := a.Image
	for {
		b := src.Bounds()
		w, h := b.Dx()/2, b.Dy()/2
		if w < 1 || h < 1 {
			break
		}
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		chain = append(chain, dst)
		src = dst
		if w == 1 && h == 1 {
			break
		}
	}
	a.MipChain = chain
	a.Levels = len(chain)
}
