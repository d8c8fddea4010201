package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/san-kum/verletsim/internal/palette"
)

const (
	charW       = 8
	charH       = 16
	speedLevels = 15
	gifDelay    = 2
)

// gifPalette is black followed by speedLevels samples of the speed curve.
var gifPalette = func() color.Palette {
	p := color.Palette{color.Black}
	for i := range speedLevels {
		s := float64(i) / float64(speedLevels-1) * 5
		r, g, b, _ := palette.RGBA8(palette.Speed(s), 255)
		p = append(p, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return p
}()

// Recorder captures canvas frames for a GIF.
type Recorder struct {
	frames []*image.Paletted
}

func (r *Recorder) Len() int { return len(r.frames) }
func (r *Recorder) Reset()   { r.frames = nil }

// Capture rasterises the canvas, one block per Braille dot.
func (r *Recorder) Capture(c *Canvas) {
	imgW, imgH := c.Width*charW, c.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), gifPalette)
	dotW, dotH := charW/2, charH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Grid[row][col] == brailleBase {
				continue
			}
			idx := uint8(1 + speedIndex(c.Speed[row][col]))
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !c.Lit(col*2+dx, row*4+dy) {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func speedIndex(speed float64) int {
	i := int(speed / 5 * float64(speedLevels-1))
	return min(max(i, 0), speedLevels-1)
}

// Save writes the captured frames as a looping GIF.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, gifDelay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return err
	}
	return f.Close()
}
