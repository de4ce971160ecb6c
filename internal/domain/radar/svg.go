package radar

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const emptyMessage = "Complete industry setup and analysis to populate radar"

// errWriter keeps the first write error; svgo itself does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG draws a frame as a standalone SVG document.
func WriteSVG(w io.Writer, f Frame) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(px(f.Dimensions.Width), px(f.Dimensions.Height))

	if f.Empty {
		canvas.Text(px(f.Geometry.Center.X), px(f.Geometry.Center.Y), emptyMessage,
			"font:14px Inter, system-ui, sans-serif;fill:#4b5563;text-anchor:middle")
		canvas.End()
		return ew.err
	}

	gradients := map[string]string{}
	var order []string
	for _, c := range f.Commands {
		if c.Gradient == nil {
			continue
		}
		if _, ok := gradients[c.Gradient.Color]; !ok {
			gradients[c.Gradient.Color] = gradientID(c.Gradient.Color)
			order = append(order, c.Gradient.Color)
		}
	}
	if len(order) > 0 {
		canvas.Def()
		for _, color := range order {
			canvas.RadialGradient(gradients[color], 50, 50, 50, 50, 50, []svg.Offcolor{
				{Offset: 0, Color: color, Opacity: 1},
				{Offset: 100, Color: color, Opacity: gradientFade},
			})
		}
		canvas.DefEnd()
	}

	for _, c := range f.Commands {
		switch c.Kind {
		case KindRing, KindAlertRing:
			canvas.Circle(px(c.From.X), px(c.From.Y), px(c.Radius),
				fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%.3f;stroke-width:%g", c.Color, c.Opacity, c.StrokeWidth))
		case KindSpoke:
			if c.To == nil {
				continue
			}
			canvas.Line(px(c.From.X), px(c.From.Y), px(c.To.X), px(c.To.Y),
				fmt.Sprintf("stroke:%s;stroke-width:%g", c.Color, c.StrokeWidth))
		case KindRingLabel, KindLabel:
			canvas.Text(px(c.From.X), px(c.From.Y), c.Text,
				fmt.Sprintf("font:%s;fill:%s;text-anchor:middle", c.Font, c.Color))
		case KindPoint:
			fill := c.Color
			if c.Gradient != nil {
				fill = "url(#" + gradients[c.Gradient.Color] + ")"
			}
			canvas.Circle(px(c.From.X), px(c.From.Y), px(c.Radius),
				fmt.Sprintf("fill:%s", fill), fmt.Sprintf(`data-blind-spot="%s"`, c.BlindSpotID))
		}
	}

	canvas.End()
	return ew.err
}

func gradientID(color string) string {
	return "grad-" + strings.TrimPrefix(color, "#")
}

func px(v float64) int {
	return int(math.Round(v))
}
